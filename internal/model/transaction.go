package model

// Transaction types as the backend stores them.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record. Records are owned by the
// backend: the id is assigned there and edits replace the whole record.
type Transaction struct {
	ID          int64   `json:"id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Type        string  `json:"transaction_type"`
	Date        Date    `json:"date"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// IsExpense reports whether the transaction reduces the balance.
func (t Transaction) IsExpense() bool {
	return t.Type == TypeExpense
}

// TransactionFilter narrows a transaction listing. Zero values mean "no
// constraint" and are omitted from the request.
type TransactionFilter struct {
	Type      string
	Category  string
	StartDate *Date
	EndDate   *Date
}
