package charts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

var testBreakdown = []model.CategoryTotal{
	{Category: "Food & Dining", Total: 320},
	{Category: "Transportation", Total: 120},
	{Category: "Shopping", Total: 90},
	{Category: "Entertainment", Total: 60},
	{Category: "Education", Total: 45},
	{Category: "Health", Total: 30},
}

var testTrends = []model.TrendPoint{
	{Month: "Mar 2026", Income: 1200, Expenses: 900, Savings: 300},
	{Month: "Apr 2026", Income: 1250, Expenses: 950, Savings: 300},
	{Month: "May 2026", Income: 1100, Expenses: 1150, Savings: -50},
}

func newTestRenderer() *Renderer {
	return NewRenderer(currency.FormatterFor(currency.USD))
}

func TestPaletteFor_UnknownThemeFallsBackToLight(t *testing.T) {
	for _, kind := range []Kind{KindCategory, KindTrend, KindComparison, KindDaily, KindDistribution} {
		assert.Equal(t, For(model.ThemeLight, kind), For(model.Theme("solarized"), kind), string(kind))
	}
}

func TestPaletteFor_TenCategoricalColorsPerTheme(t *testing.T) {
	for _, theme := range model.Themes {
		pal := For(theme, KindCategory)
		assert.Len(t, pal.Series, 10, string(theme))
		assert.NotEqual(t, pal.Income, pal.Expense, string(theme))
	}
}

func TestPaletteFor_ComparisonKindBlendsAlpha(t *testing.T) {
	base := For(model.ThemeLight, KindTrend)
	comp := For(model.ThemeLight, KindComparison)
	assert.EqualValues(t, 255, base.Income.A)
	assert.EqualValues(t, 204, comp.Income.A)
	assert.EqualValues(t, 204, comp.Savings.A)
	// The categorical series is untouched for the comparison kind.
	assert.Equal(t, base.Series, comp.Series)
}

func TestCategory_RendersAndMounts(t *testing.T) {
	r := newTestRenderer()
	pal := For(model.ThemeLight, KindCategory)

	h, err := r.Category(testBreakdown, pal)
	require.NoError(t, err)
	assert.False(t, h.Empty())
	assert.NotEmpty(t, h.PNG())
	assert.Same(t, h, r.Handle(SlotCategory))
}

func TestCategory_SecondRenderDisposesFirst(t *testing.T) {
	r := newTestRenderer()
	pal := For(model.ThemeDark, KindCategory)

	first, err := r.Category(testBreakdown, pal)
	require.NoError(t, err)
	second, err := r.Category(testBreakdown, pal)
	require.NoError(t, err)

	assert.True(t, first.Disposed())
	assert.Nil(t, first.PNG())
	assert.False(t, second.Disposed())
	assert.Same(t, second, r.Handle(SlotCategory))
}

func TestCategory_EmptyBreakdownRendersPlaceholder(t *testing.T) {
	r := newTestRenderer()
	pal := For(model.ThemeLight, KindCategory)

	h, err := r.Category(nil, pal)
	require.NoError(t, err)
	assert.True(t, h.Empty())
	assert.Nil(t, h.PNG())
	assert.Equal(t, "No spending data yet", h.Placeholder())
	// The placeholder still occupies the slot so a later render disposes it.
	assert.Same(t, h, r.Handle(SlotCategory))
}

func TestCategory_ZeroTotalsTreatedAsEmpty(t *testing.T) {
	r := newTestRenderer()
	h, err := r.Category([]model.CategoryTotal{{Category: "Shopping", Total: 0}}, For(model.ThemeLight, KindCategory))
	require.NoError(t, err)
	assert.True(t, h.Empty())
}

func TestLegend_TopFiveOnly(t *testing.T) {
	pal := For(model.ThemeLight, KindCategory)
	entries := Legend(testBreakdown, pal)

	require.Len(t, entries, 5)
	assert.Equal(t, "Food & Dining", entries[0].Label)
	assert.Equal(t, "#2196F3", entries[0].Color)
	assert.Equal(t, "Education", entries[4].Label)
}

func TestLegend_ShorterBreakdownKeepsAllEntries(t *testing.T) {
	pal := For(model.ThemeLight, KindCategory)
	entries := Legend(testBreakdown[:2], pal)
	require.Len(t, entries, 2)
}

func TestTrends_RendersBothSeries(t *testing.T) {
	r := newTestRenderer()
	h, err := r.Trends(testTrends, For(model.ThemeMonet, KindTrend))
	require.NoError(t, err)
	assert.False(t, h.Empty())
	assert.Same(t, h, r.Handle(SlotTrends))
}

func TestTrends_TooFewPointsRendersPlaceholder(t *testing.T) {
	r := newTestRenderer()

	h, err := r.Trends(nil, For(model.ThemeLight, KindTrend))
	require.NoError(t, err)
	assert.True(t, h.Empty())

	h, err = r.Trends(testTrends[:1], For(model.ThemeLight, KindTrend))
	require.NoError(t, err)
	assert.True(t, h.Empty())
}

func TestComparison_RendersGroupedBars(t *testing.T) {
	r := newTestRenderer()
	h, err := r.Comparison(testTrends, For(model.ThemeOLED, KindComparison))
	require.NoError(t, err)
	assert.False(t, h.Empty())
	assert.Same(t, h, r.Handle(SlotComparison))
}

func TestDaily_RendersSeries(t *testing.T) {
	r := newTestRenderer()
	points := []model.DailyPoint{
		{Date: model.NewDate(date(2026, 5, 1)), Total: 25},
		{Date: model.NewDate(date(2026, 5, 2)), Total: 40},
		{Date: model.NewDate(date(2026, 5, 4)), Total: 12},
	}
	h, err := r.Daily(points, For(model.ThemeDark, KindDaily))
	require.NoError(t, err)
	assert.False(t, h.Empty())
	assert.Same(t, h, r.Handle(SlotDaily))
}

func TestCategoryAndDistributionAreIndependentSlots(t *testing.T) {
	r := newTestRenderer()
	pal := For(model.ThemeLight, KindCategory)

	cat, err := r.Category(testBreakdown, pal)
	require.NoError(t, err)
	dist, err := r.Distribution(testBreakdown, For(model.ThemeLight, KindDistribution))
	require.NoError(t, err)

	assert.False(t, cat.Disposed())
	assert.False(t, dist.Disposed())
	assert.NotEqual(t, cat.Slot(), dist.Slot())
}

func TestDisposeAll(t *testing.T) {
	r := newTestRenderer()
	pal := For(model.ThemeLight, KindCategory)
	h, err := r.Category(testBreakdown, pal)
	require.NoError(t, err)

	r.DisposeAll()
	assert.True(t, h.Disposed())
	assert.Nil(t, r.Handle(SlotCategory))
}
