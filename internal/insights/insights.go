// Package insights derives qualitative observations about financial state
// from a monthly summary and the historical trend series.
package insights

import (
	"fmt"
	"math"

	"github.com/project-monet/monet-bot/internal/model"
)

// Severity classifies an insight for presentation.
type Severity string

const (
	SeverityDefault Severity = "default"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Insight is one derived observation, rendered as a short card. Icon is the
// card's icon identifier; chat surfaces render it through Glyph.
type Insight struct {
	Icon     string
	Severity Severity
	Title    string
	Text     string
}

var glyphs = map[string]string{
	"warning":                "⚠️",
	"thumb_up":               "👍",
	"trending_up":            "📈",
	"savings":                "💰",
	"account_balance_wallet": "👛",
	"lightbulb":              "💡",
}

// Glyph returns the emoji stand-in for the insight's icon identifier.
func (i Insight) Glyph() string {
	if g, ok := glyphs[i.Icon]; ok {
		return g
	}
	return "💡"
}

// Engine turns summary and trend data into an ordered list of insights.
// Derivation is pure and deterministic: no I/O, no mutation of its inputs,
// and it never fails — absent or malformed fields simply contribute nothing.
type Engine struct {
	format func(float64) string
}

// NewEngine builds an engine that formats cited amounts with format. A nil
// format falls back to plain two-decimal output.
func NewEngine(format func(float64) string) *Engine {
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	return &Engine{format: format}
}

// Derive evaluates the insight rules in a fixed order and returns every
// insight that fired, in that order:
//
//  1. budget warning (percentage above 90, checked unclamped)
//  2. budget praise (percentage below 50, only when rule 1 did not fire)
//  3. top spending category (first breakdown entry, relying on the
//     backend's descending sort)
//  4. savings up (strictly higher than the previous period)
//  5. balance positive or negative (zero contributes nothing)
//  6. a single "start tracking" fallback when nothing else fired
func (e *Engine) Derive(summary model.Summary, trends []model.TrendPoint) []Insight {
	var out []Insight

	switch {
	case summary.BudgetPercentage > 90:
		out = append(out, Insight{
			Icon:     "warning",
			Severity: SeverityWarning,
			Title:    "Budget Alert",
			Text: fmt.Sprintf("You've used %.0f%% of your monthly budget.",
				math.Round(summary.BudgetPercentage)),
		})
	case summary.BudgetPercentage < 50:
		out = append(out, Insight{
			Icon:     "thumb_up",
			Severity: SeveritySuccess,
			Title:    "Great Progress",
			Text: fmt.Sprintf("You're on track! Only %.0f%% of budget used.",
				math.Round(summary.BudgetPercentage)),
		})
	}

	if len(summary.CategoryBreakdown) > 0 {
		top := summary.CategoryBreakdown[0]
		out = append(out, Insight{
			Icon:     "trending_up",
			Severity: SeverityDefault,
			Title:    "Top Spending",
			Text: fmt.Sprintf("%s is your highest expense at %s.",
				top.Category, e.format(top.Total)),
		})
	}

	if len(trends) >= 2 {
		last := trends[len(trends)-1]
		prev := trends[len(trends)-2]
		if last.Savings > prev.Savings {
			out = append(out, Insight{
				Icon:     "savings",
				Severity: SeveritySuccess,
				Title:    "Savings Up",
				Text:     "You saved more this month compared to last month!",
			})
		}
	}

	if summary.Balance > 0 {
		out = append(out, Insight{
			Icon:     "account_balance_wallet",
			Severity: SeveritySuccess,
			Title:    "Positive Balance",
			Text: fmt.Sprintf("You're %s in the green this month.",
				e.format(summary.Balance)),
		})
	} else if summary.Balance < 0 {
		out = append(out, Insight{
			Icon:     "warning",
			Severity: SeverityWarning,
			Title:    "Spending Alert",
			Text: fmt.Sprintf("You've spent %s more than earned.",
				e.format(math.Abs(summary.Balance))),
		})
	}

	if len(out) == 0 {
		out = append(out, Insight{
			Icon:     "lightbulb",
			Severity: SeverityDefault,
			Title:    "Start Tracking",
			Text:     "Add transactions to see personalized insights about your spending.",
		})
	}

	return out
}
