package model

// User is the authenticated account as returned by the backend.
type User struct {
	ID            int64   `json:"id"`
	Username      string  `json:"username"`
	Email         string  `json:"email"`
	MonthlyBudget float64 `json:"monthly_budget"`
	CreatedAt     string  `json:"created_at,omitempty"`
}
