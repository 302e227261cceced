package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
)

func testEngine() *Engine {
	return NewEngine(currency.FormatterFor(currency.USD))
}

func titles(in []Insight) []string {
	out := make([]string, 0, len(in))
	for _, i := range in {
		out = append(out, i.Title)
	}
	return out
}

func TestDerive_BudgetThresholds(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		wantTitle  string
		wantNone   bool
	}{
		{name: "warning above 90", percentage: 91, wantTitle: "Budget Alert"},
		{name: "warning far above 100 stays unclamped", percentage: 250, wantTitle: "Budget Alert"},
		{name: "no insight at exactly 90", percentage: 90, wantNone: true},
		{name: "no insight in the middle band", percentage: 60, wantNone: true},
		{name: "no insight at exactly 50", percentage: 50, wantNone: true},
		{name: "praise below 50", percentage: 49.4, wantTitle: "Great Progress"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := model.Summary{BudgetPercentage: tt.percentage, Balance: 10}
			got := testEngine().Derive(summary, nil)
			require.NotEmpty(t, got)
			if tt.wantNone {
				for _, in := range got {
					assert.NotEqual(t, "Budget Alert", in.Title)
					assert.NotEqual(t, "Great Progress", in.Title)
				}
				return
			}
			assert.Equal(t, tt.wantTitle, got[0].Title)
		})
	}
}

func TestDerive_WarningBeatsPraiseEvenWhenBothWouldMatch(t *testing.T) {
	// Above 90 the warning fires and the praise branch is never evaluated,
	// whatever the other fields hold.
	summary := model.Summary{BudgetPercentage: 95.4, Balance: -3}
	got := testEngine().Derive(summary, nil)

	require.NotEmpty(t, got)
	assert.Equal(t, "Budget Alert", got[0].Title)
	assert.Equal(t, SeverityWarning, got[0].Severity)
	assert.Contains(t, got[0].Text, "95%")
	assert.NotContains(t, titles(got), "Great Progress")
}

func TestDerive_TopCategory(t *testing.T) {
	summary := model.Summary{
		BudgetPercentage: 60,
		CategoryBreakdown: []model.CategoryTotal{
			{Category: "Food & Dining", Total: 320.5},
			{Category: "Transportation", Total: 120},
		},
	}
	got := testEngine().Derive(summary, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Top Spending", got[0].Title)
	assert.Equal(t, SeverityDefault, got[0].Severity)
	assert.Contains(t, got[0].Text, "Food & Dining")
	assert.Contains(t, got[0].Text, "$320.50")
}

func TestDerive_SavingsTrend(t *testing.T) {
	tests := []struct {
		name   string
		trends []model.TrendPoint
		want   bool
	}{
		{name: "empty series", trends: nil, want: false},
		{name: "single point", trends: []model.TrendPoint{{Savings: 100}}, want: false},
		{
			name:   "equal savings needs strict increase",
			trends: []model.TrendPoint{{Savings: 100}, {Savings: 100}},
			want:   false,
		},
		{
			name:   "decreasing savings contributes nothing",
			trends: []model.TrendPoint{{Savings: 100}, {Savings: 80}},
			want:   false,
		},
		{
			name:   "savings up",
			trends: []model.TrendPoint{{Savings: 80}, {Savings: 100}},
			want:   true,
		},
		{
			name:   "only the last two points are compared",
			trends: []model.TrendPoint{{Savings: 500}, {Savings: 80}, {Savings: 100}},
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := model.Summary{BudgetPercentage: 60, Balance: 1}
			got := testEngine().Derive(summary, tt.trends)
			if tt.want {
				assert.Contains(t, titles(got), "Savings Up")
			} else {
				assert.NotContains(t, titles(got), "Savings Up")
			}
		})
	}
}

func TestDerive_Balance(t *testing.T) {
	engine := testEngine()

	got := engine.Derive(model.Summary{BudgetPercentage: 60, Balance: 150}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Positive Balance", got[0].Title)
	assert.Equal(t, SeveritySuccess, got[0].Severity)
	assert.Contains(t, got[0].Text, "$150.00")

	got = engine.Derive(model.Summary{BudgetPercentage: 60, Balance: -42.5}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Spending Alert", got[0].Title)
	assert.Equal(t, SeverityWarning, got[0].Severity)
	assert.Contains(t, got[0].Text, "$42.50")

	got = engine.Derive(model.Summary{BudgetPercentage: 60, Balance: 0}, nil)
	require.Len(t, got, 1)
	assert.NotEqual(t, "Positive Balance", got[0].Title)
	assert.NotEqual(t, "Spending Alert", got[0].Title)
}

func TestDerive_NeutralSummaryYieldsOnlyFallback(t *testing.T) {
	summary := model.Summary{BudgetPercentage: 60, Balance: 0}
	got := testEngine().Derive(summary, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "Start Tracking", got[0].Title)
	assert.Equal(t, SeverityDefault, got[0].Severity)
	assert.Equal(t, "lightbulb", got[0].Icon)
}

func TestDerive_NoFallbackWhenAnyRuleFired(t *testing.T) {
	summary := model.Summary{BudgetPercentage: 20, Balance: 0}
	got := testEngine().Derive(summary, nil)
	assert.NotContains(t, titles(got), "Start Tracking")
}

func TestDerive_OutputFollowsRuleOrder(t *testing.T) {
	summary := model.Summary{
		BudgetPercentage: 95,
		Balance:          120,
		CategoryBreakdown: []model.CategoryTotal{
			{Category: "Shopping", Total: 400},
		},
	}
	trends := []model.TrendPoint{{Savings: 10}, {Savings: 20}}

	got := testEngine().Derive(summary, trends)
	assert.Equal(t,
		[]string{"Budget Alert", "Top Spending", "Savings Up", "Positive Balance"},
		titles(got))
}

func TestDerive_NilFormatterDoesNotPanic(t *testing.T) {
	engine := NewEngine(nil)
	summary := model.Summary{
		BudgetPercentage:  10,
		Balance:           -1,
		CategoryBreakdown: []model.CategoryTotal{{Category: "Health", Total: 9.99}},
	}
	got := engine.Derive(summary, []model.TrendPoint{{}, {Savings: 1}})
	assert.Equal(t,
		[]string{"Great Progress", "Top Spending", "Savings Up", "Spending Alert"},
		titles(got))
}

func TestGlyphMapsIconIdentifiers(t *testing.T) {
	assert.Equal(t, "⚠️", Insight{Icon: "warning"}.Glyph())
	assert.Equal(t, "👍", Insight{Icon: "thumb_up"}.Glyph())
	assert.Equal(t, "📈", Insight{Icon: "trending_up"}.Glyph())
	assert.Equal(t, "💰", Insight{Icon: "savings"}.Glyph())
	assert.Equal(t, "👛", Insight{Icon: "account_balance_wallet"}.Glyph())
	assert.Equal(t, "💡", Insight{Icon: "lightbulb"}.Glyph())
	// Unknown identifiers fall back to the generic glyph.
	assert.Equal(t, "💡", Insight{Icon: "pie_chart"}.Glyph())
}

func TestDeriveIconsAllHaveGlyphs(t *testing.T) {
	summary := model.Summary{
		MonthlyBudget:     1000,
		BudgetPercentage:  95,
		Balance:           120,
		CategoryBreakdown: []model.CategoryTotal{{Category: "Housing", Total: 800}},
	}
	trends := []model.TrendPoint{{Savings: 10}, {Savings: 20}}

	for _, insight := range testEngine().Derive(summary, trends) {
		_, known := glyphs[insight.Icon]
		assert.True(t, known, "icon %q has no glyph", insight.Icon)
	}
}
