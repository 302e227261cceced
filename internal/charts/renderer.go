// Package charts renders the dashboard and analytics visualizations as PNG
// images and resolves per-theme color palettes.
package charts

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/project-monet/monet-bot/internal/model"
)

// Renderer builds chart images. Every numeric label goes through the value
// formatter supplied at construction, so currency selection is baked into
// each render; a currency change requires a re-render, not a restyle.
//
// Renderer is not safe for concurrent use: handles are owned by the single
// flow that mounts them.
type Renderer struct {
	format func(float64) string
	slots  map[Slot]*Handle
}

// NewRenderer builds a renderer whose numeric labels are produced by format.
func NewRenderer(format func(float64) string) *Renderer {
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.2f", v) }
	}
	return &Renderer{
		format: format,
		slots:  make(map[Slot]*Handle),
	}
}

// Handle returns the live handle for a slot, or nil when nothing is mounted.
func (r *Renderer) Handle(slot Slot) *Handle {
	return r.slots[slot]
}

// DisposeAll tears down every mounted chart.
func (r *Renderer) DisposeAll() {
	for slot, h := range r.slots {
		h.Dispose()
		delete(r.slots, slot)
	}
}

// mount binds a handle to its slot, disposing whatever was there before. The
// prior handle is released synchronously, before the new one becomes
// reachable, so a slot never holds two live charts.
func (r *Renderer) mount(h *Handle) *Handle {
	if prev, ok := r.slots[h.slot]; ok {
		prev.Dispose()
	}
	r.slots[h.slot] = h
	return h
}

func (r *Renderer) emptyState(slot Slot, message string) *Handle {
	return r.mount(&Handle{slot: slot, placeholder: message})
}

func (r *Renderer) valueFormatter() chart.ValueFormatter {
	return func(v interface{}) string {
		if f, ok := v.(float64); ok {
			return r.format(f)
		}
		return ""
	}
}

// Category renders the spending breakdown as a donut. Slice labels carry the
// formatted value and the share of the rendered total, computed here from
// the slice set rather than taken from the backend.
func (r *Renderer) Category(breakdown []model.CategoryTotal, pal Palette) (*Handle, error) {
	values, ok := r.sliceValues(breakdown, pal)
	if !ok {
		return r.emptyState(SlotCategory, "No spending data yet"), nil
	}

	donut := chart.DonutChart{
		Width:  800,
		Height: 800,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: pal.Background,
		},
		Canvas: chart.Style{FillColor: pal.Background},
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render category chart: %w", err)
	}
	return r.mount(&Handle{slot: SlotCategory, png: buf.Bytes()}), nil
}

// Distribution renders the same breakdown with the radial treatment. It is an
// independent instance from the category chart and occupies its own slot.
func (r *Renderer) Distribution(breakdown []model.CategoryTotal, pal Palette) (*Handle, error) {
	values, ok := r.sliceValues(breakdown, pal)
	if !ok {
		return r.emptyState(SlotDistribution, "No spending data yet"), nil
	}

	pie := chart.PieChart{
		Width:  800,
		Height: 800,
		Background: chart.Style{
			Padding:   chart.Box{Top: 40, Left: 40, Right: 40, Bottom: 40},
			FillColor: pal.Background,
		},
		Canvas: chart.Style{FillColor: pal.Background},
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render distribution chart: %w", err)
	}
	return r.mount(&Handle{slot: SlotDistribution, png: buf.Bytes()}), nil
}

// sliceValues prepares pie/donut slices colored from the categorical palette.
// Returns ok=false when there is nothing renderable.
func (r *Renderer) sliceValues(breakdown []model.CategoryTotal, pal Palette) ([]chart.Value, bool) {
	total := 0.0
	for _, c := range breakdown {
		if c.Total > 0 {
			total += c.Total
		}
	}
	if total <= 0 {
		return nil, false
	}

	values := make([]chart.Value, 0, len(breakdown))
	for i, c := range breakdown {
		if c.Total <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: c.Total,
			Label: fmt.Sprintf("%s: %s (%.1f%%)", c.Category, r.format(c.Total), c.Total/total*100),
			Style: chart.Style{
				FillColor: pal.Series[i%len(pal.Series)],
				FontSize:  12,
				FontColor: pal.Text,
			},
		})
	}
	return values, len(values) > 0
}

// LegendEntry is one row of the textual legend shown beside the category
// chart.
type LegendEntry struct {
	Label string
	Color string
}

// Legend lists the top categories (at most five), each with the hex form of
// its slice color. The limit is independent of how many slices the chart
// renders.
func Legend(breakdown []model.CategoryTotal, pal Palette) []LegendEntry {
	entries := make([]LegendEntry, 0, 5)
	for i, c := range breakdown {
		if i == 5 {
			break
		}
		color := pal.Series[i%len(pal.Series)]
		entries = append(entries, LegendEntry{
			Label: c.Category,
			Color: fmt.Sprintf("#%02X%02X%02X", color.R, color.G, color.B),
		})
	}
	return entries
}

// Trends renders the income/expense line chart over the trend series,
// chronological left to right with filled areas.
func (r *Renderer) Trends(trends []model.TrendPoint, pal Palette) (*Handle, error) {
	if len(trends) < 2 {
		return r.emptyState(SlotTrends, "No trend data yet"), nil
	}

	xs := make([]float64, len(trends))
	income := make([]float64, len(trends))
	expenses := make([]float64, len(trends))
	ticks := make([]chart.Tick, len(trends))
	for i, t := range trends {
		xs[i] = float64(i)
		income[i] = t.Income
		expenses[i] = t.Expenses
		ticks[i] = chart.Tick{Value: float64(i), Label: t.Month}
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: pal.Background,
		},
		Canvas: chart.Style{FillColor: pal.Background},
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 12, FontColor: pal.Muted},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: 12, FontColor: pal.Muted},
			ValueFormatter: r.valueFormatter(),
			GridMajorStyle: chart.Style{StrokeColor: pal.Grid, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Income",
				XValues: xs,
				YValues: income,
				Style: chart.Style{
					StrokeColor: pal.Income,
					StrokeWidth: 2,
					FillColor:   pal.Income.WithAlpha(26),
				},
			},
			chart.ContinuousSeries{
				Name:    "Expenses",
				XValues: xs,
				YValues: expenses,
				Style: chart.Style{
					StrokeColor: pal.Expense,
					StrokeWidth: 2,
					FillColor:   pal.Expense.WithAlpha(26),
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: pal.Text,
			FillColor: pal.Background,
		}),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render trends chart: %w", err)
	}
	return r.mount(&Handle{slot: SlotTrends, png: buf.Bytes()}), nil
}

// Comparison renders income, expenses and savings as bars grouped by month,
// same ordering as the trend chart.
func (r *Renderer) Comparison(trends []model.TrendPoint, pal Palette) (*Handle, error) {
	if len(trends) == 0 {
		return r.emptyState(SlotComparison, "No trend data yet"), nil
	}

	bars := make([]chart.Value, 0, len(trends)*3)
	for _, t := range trends {
		bars = append(bars,
			chart.Value{
				Value: t.Income,
				Style: chart.Style{FillColor: pal.Income, StrokeColor: pal.Income},
			},
			chart.Value{
				Label: t.Month,
				Value: t.Expenses,
				Style: chart.Style{FillColor: pal.Expense, StrokeColor: pal.Expense, FontColor: pal.Muted, FontSize: 11},
			},
			chart.Value{
				Value: t.Savings,
				Style: chart.Style{FillColor: pal.Savings, StrokeColor: pal.Savings},
			},
		)
	}

	graph := chart.BarChart{
		Width:    1200,
		Height:   600,
		BarWidth: 40,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: pal.Background,
		},
		Canvas: chart.Style{FillColor: pal.Background},
		XAxis:  chart.Style{FontSize: 11, FontColor: pal.Muted},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: 12, FontColor: pal.Muted},
			ValueFormatter: r.valueFormatter(),
			GridMajorStyle: chart.Style{StrokeColor: pal.Grid, StrokeWidth: 1},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render comparison chart: %w", err)
	}
	return r.mount(&Handle{slot: SlotComparison, png: buf.Bytes()}), nil
}

// Daily renders the single-series daily spending line with short date labels.
func (r *Renderer) Daily(points []model.DailyPoint, pal Palette) (*Handle, error) {
	if len(points) < 2 {
		return r.emptyState(SlotDaily, "No spending data yet"), nil
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	ticks := make([]chart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Total
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Date.Short()}
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: pal.Background,
		},
		Canvas: chart.Style{FillColor: pal.Background},
		XAxis: chart.XAxis{
			Style: chart.Style{FontSize: 12, FontColor: pal.Muted},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Style:          chart.Style{FontSize: 12, FontColor: pal.Muted},
			ValueFormatter: r.valueFormatter(),
			GridMajorStyle: chart.Style{StrokeColor: pal.Grid, StrokeWidth: 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Daily Spending",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: pal.Accent,
					StrokeWidth: 2,
					FillColor:   pal.Accent.WithAlpha(51),
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render daily chart: %w", err)
	}
	return r.mount(&Handle{slot: SlotDaily, png: buf.Bytes()}), nil
}
