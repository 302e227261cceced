package bot

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/project-monet/monet-bot/internal/charts"
	"github.com/project-monet/monet-bot/internal/model"
	"github.com/project-monet/monet-bot/internal/service"
)

// greeting matches the message to the hour of day.
func greeting(now time.Time, username string) string {
	var salutation string
	switch hour := now.Hour(); {
	case hour < 12:
		salutation = "Good morning"
	case hour < 18:
		salutation = "Good afternoon"
	default:
		salutation = "Good evening"
	}
	if username != "" {
		return fmt.Sprintf("%s, %s! 👋", salutation, username)
	}
	return salutation + "! 👋"
}

// progressBar renders a ten-segment bar for a percentage in [0, 100].
func progressBar(percent float64) string {
	filled := int(math.Round(percent / 10))
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", 10-filled)
}

func (b *Bot) dashboardText(d service.Dashboard) string {
	format := b.coordinator.Formatter()

	var sb strings.Builder
	sb.WriteString("🏠 Dashboard\n\n")
	fmt.Fprintf(&sb, "💰 Income: %s\n", format(d.Summary.TotalIncome))
	fmt.Fprintf(&sb, "💸 Expenses: %s\n", format(d.Summary.TotalExpenses))
	fmt.Fprintf(&sb, "📈 Balance: %s\n", format(d.Summary.Balance))

	if d.Summary.MonthlyBudget > 0 {
		shown := math.Min(d.Summary.BudgetPercentage, 100)
		fmt.Fprintf(&sb, "\n🎯 Budget: %s of %s\n%s %.0f%%\n",
			format(d.Summary.TotalExpenses), format(d.Summary.MonthlyBudget),
			progressBar(shown), shown)
	}

	if len(d.Insights) > 0 {
		sb.WriteString("\n💡 Insights\n")
		for _, insight := range d.Insights {
			fmt.Fprintf(&sb, "%s %s: %s\n", insight.Glyph(), insight.Title, insight.Text)
		}
	}

	if len(d.Recent) > 0 {
		sb.WriteString("\n🕒 Recent\n")
		for _, t := range d.Recent {
			sb.WriteString(transactionLine(t, format))
		}
	}

	if len(d.Goals) > 0 {
		sb.WriteString("\n🎯 Goals\n")
		for _, g := range d.Goals {
			fmt.Fprintf(&sb, "%s: %s of %s (%.0f%%)\n",
				g.Name, format(g.CurrentAmount), format(g.TargetAmount), g.Progress()*100)
		}
	}

	return sb.String()
}

func transactionLine(t model.Transaction, format func(float64) string) string {
	sign := "+"
	if t.IsExpense() {
		sign = "-"
	}
	line := fmt.Sprintf("%s %s %s%s", model.CategoryIcon(t.Category), t.Category, sign, format(t.Amount))
	if t.Description != "" {
		line += " · " + t.Description
	}
	if !t.Date.IsZero() {
		line += " · " + t.Date.Short()
	}
	return line + "\n"
}

// filterLabel names a non-empty filter for the list header.
func filterLabel(filter model.TransactionFilter) string {
	switch {
	case filter.Category != "":
		return model.CategoryIcon(filter.Category) + " " + filter.Category
	case filter.Type == model.TypeIncome:
		return "💰 Income"
	case filter.Type == model.TypeExpense:
		return "💸 Expenses"
	default:
		return ""
	}
}

func (b *Bot) transactionsText(list []model.Transaction, filter model.TransactionFilter) string {
	label := filterLabel(filter)
	if len(list) == 0 {
		if label != "" {
			return fmt.Sprintf("📋 Transactions · %s\n\nNothing matches this filter.", label)
		}
		return "📋 Transactions\n\nNothing recorded yet. Use ➕ Add to get started."
	}
	format := b.coordinator.Formatter()

	var sb strings.Builder
	sb.WriteString("📋 Transactions")
	if label != "" {
		sb.WriteString(" · " + label)
	}
	sb.WriteString("\n\n")
	for _, t := range list {
		fmt.Fprintf(&sb, "#%d %s", t.ID, transactionLine(t, format))
	}
	sb.WriteString("\nSend /edit <id> to change one, /delete <id> to remove one.")
	return sb.String()
}

func (b *Bot) goalsText(goals []model.SavingsGoal) string {
	if len(goals) == 0 {
		return "🎯 Savings goals\n\nNo goals yet. Create one to start saving."
	}
	format := b.coordinator.Formatter()

	var sb strings.Builder
	sb.WriteString("🎯 Savings goals\n\n")
	for _, g := range goals {
		percent := g.Progress() * 100
		fmt.Fprintf(&sb, "%s\n%s %.0f%% (%s of %s)",
			g.Name, progressBar(percent), percent,
			format(g.CurrentAmount), format(g.TargetAmount))
		if !g.Deadline.IsZero() {
			fmt.Fprintf(&sb, " · by %s", g.Deadline.Long())
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// legendText lists the top spending categories under the category chart.
// Chat cannot show color swatches, so category glyphs stand in for them.
func legendText(breakdown []model.CategoryTotal, theme model.Theme, format func(float64) string) string {
	entries := charts.Legend(breakdown, charts.For(theme, charts.KindCategory))
	if len(entries) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "%s %s: %s\n", model.CategoryIcon(e.Label), e.Label, format(breakdown[i].Total))
	}
	return sb.String()
}
