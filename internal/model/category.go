package model

// ExpenseCategories and IncomeCategories are the fixed category sets the
// backend accepts, in form order.
var (
	ExpenseCategories = []string{
		"Food & Dining", "Transportation", "Shopping", "Entertainment",
		"Bills & Utilities", "Education", "Health", "Personal Care",
		"Subscriptions", "Other Expense",
	}
	IncomeCategories = []string{
		"Salary", "Part-time Job", "Freelance", "Allowance",
		"Scholarship", "Investment", "Refund", "Other Income",
	}
)

var categoryIcons = map[string]string{
	"Food & Dining":    "🍔",
	"Transportation":   "🚗",
	"Shopping":         "🛍️",
	"Entertainment":    "🎬",
	"Bills & Utilities": "💡",
	"Education":        "📚",
	"Health":           "💊",
	"Personal Care":    "✨",
	"Subscriptions":    "📱",
	"Other Expense":    "📦",
	"Salary":           "💰",
	"Part-time Job":    "⏰",
	"Freelance":        "💻",
	"Allowance":        "🎁",
	"Scholarship":      "🎓",
	"Investment":       "📈",
	"Refund":           "↩️",
	"Other Income":     "💵",
}

// CategoryIcon returns the decorative glyph for a category label. Unknown
// labels get a pin.
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return "📌"
}
