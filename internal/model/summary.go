package model

// CategoryTotal is one entry of the summary's category breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// Summary is the backend's aggregate view of the current month. The backend
// sorts CategoryBreakdown descending by total; index 0 is the top spending
// category and consumers rely on that order. BudgetPercentage arrives
// unclamped; it is clamped to 100 at display time only, never before
// threshold checks.
type Summary struct {
	TotalIncome       float64         `json:"total_income"`
	TotalExpenses     float64         `json:"total_expenses"`
	Balance           float64         `json:"balance"`
	MonthlyBudget     float64         `json:"monthly_budget"`
	BudgetRemaining   float64         `json:"budget_remaining"`
	BudgetPercentage  float64         `json:"budget_percentage"`
	CategoryBreakdown []CategoryTotal `json:"category_breakdown"`
}

// TrendPoint is one historical period of the trend series. The series is
// chronological, oldest first.
type TrendPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// DailyPoint is one day of expense totals for the current month.
type DailyPoint struct {
	Date  Date    `json:"date"`
	Total float64 `json:"total"`
}
