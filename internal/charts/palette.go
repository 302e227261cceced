package charts

import (
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/project-monet/monet-bot/internal/model"
)

// Kind identifies a chart type for palette resolution.
type Kind string

const (
	KindCategory     Kind = "category"
	KindTrend        Kind = "trend"
	KindComparison   Kind = "comparison"
	KindDaily        Kind = "daily"
	KindDistribution Kind = "distribution"
)

// Palette is the full set of colors a renderer needs for one theme.
type Palette struct {
	// Series is the 10-color categorical palette; slice N of a category
	// chart takes Series[N].
	Series []drawing.Color

	Income  drawing.Color
	Expense drawing.Color
	Savings drawing.Color

	// Accent is the single-series color of the daily chart.
	Accent drawing.Color

	Text       drawing.Color
	Muted      drawing.Color
	Grid       drawing.Color
	Background drawing.Color
}

type themeColors struct {
	series     []string
	income     string
	expense    string
	savings    string
	accent     string
	background string
}

var palettes = map[model.Theme]themeColors{
	model.ThemeLight: {
		series: []string{
			"2196F3", "00897B", "FFB300", "E91E63", "4CAF50",
			"FF5722", "9C27B0", "795548", "607D8B", "6750A4",
		},
		income:     "00897B",
		expense:    "BA1A1A",
		savings:    "6750A4",
		accent:     "FFB300",
		background: "FFFFFF",
	},
	model.ThemeDark: {
		series: []string{
			"64B5F6", "A0CFCB", "FFD980", "FF8A95", "A5D6A7",
			"FFAB91", "CE93D8", "BCAAA4", "B0BEC5", "D0BCFF",
		},
		income:     "A0CFCB",
		expense:    "FFB4AB",
		savings:    "D0BCFF",
		accent:     "FFD980",
		background: "141218",
	},
	model.ThemeMonet: {
		series: []string{
			"5DADE2", "E8A87C", "7EB8E5", "D66060", "6AAF6A",
			"F0B27A", "85C1E9", "BB8FCE", "AEB6BF", "D4AC0D",
		},
		income:     "6AAF6A",
		expense:    "D66060",
		savings:    "9C6FBF",
		accent:     "E8A87C",
		background: "FBF8F2",
	},
	model.ThemeOLED: {
		series: []string{
			"64B5F6", "03DAC6", "FFB74D", "CF6679", "4CAF50",
			"FFD54F", "BA68C8", "90A4AE", "FFAB40", "BB86FC",
		},
		income:     "03DAC6",
		expense:    "CF6679",
		savings:    "BB86FC",
		accent:     "FFB74D",
		background: "000000",
	},
}

// For resolves the palette for a theme and chart kind. Unknown themes fall
// back to light silently; the comparison and distribution kinds return their
// colors pre-blended with the 0.8 alpha the bar and polar renders use.
func For(theme model.Theme, kind Kind) Palette {
	tc, ok := palettes[theme]
	if !ok {
		theme = model.ThemeLight
		tc = palettes[theme]
	}

	series := make([]drawing.Color, len(tc.series))
	for i, hex := range tc.series {
		series[i] = drawing.ColorFromHex(hex)
	}

	p := Palette{
		Series:     series,
		Income:     drawing.ColorFromHex(tc.income),
		Expense:    drawing.ColorFromHex(tc.expense),
		Savings:    drawing.ColorFromHex(tc.savings),
		Accent:     drawing.ColorFromHex(tc.accent),
		Background: drawing.ColorFromHex(tc.background),
	}

	if theme.Dark() {
		p.Text = drawing.ColorFromHex("E6E0E9")
		p.Muted = drawing.ColorFromHex("CAC4D0")
		p.Grid = drawing.ColorWhite.WithAlpha(26)
	} else {
		p.Text = drawing.ColorFromHex("1D1B20")
		p.Muted = drawing.ColorFromHex("49454F")
		p.Grid = drawing.ColorBlack.WithAlpha(26)
	}

	switch kind {
	case KindComparison:
		p.Income = p.Income.WithAlpha(204)
		p.Expense = p.Expense.WithAlpha(204)
		p.Savings = p.Savings.WithAlpha(204)
	case KindDistribution:
		for i, c := range p.Series {
			p.Series[i] = c.WithAlpha(204)
		}
	}

	return p
}
