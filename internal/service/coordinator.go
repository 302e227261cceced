package service

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/project-monet/monet-bot/internal/charts"
	"github.com/project-monet/monet-bot/internal/currency"
	"github.com/project-monet/monet-bot/internal/model"
	"github.com/project-monet/monet-bot/internal/prefs"
)

// Selector is a surface that displays the active theme, like the settings
// keyboard. Coordinator pushes the selection to every registered selector so
// they never disagree; selectors only display, they never call back.
type Selector interface {
	ShowSelected(model.Theme)
}

// Coordinator owns the persisted theme and currency choices. On a theme
// switch it re-renders every chart that is currently mounted from the data
// it last saw, so the views restyle without another backend round trip.
type Coordinator struct {
	mu        sync.Mutex
	prefs     *prefs.Store
	renderer  *charts.Renderer
	selectors []Selector
	last      *Analytics
}

func NewCoordinator(store *prefs.Store, renderer *charts.Renderer) *Coordinator {
	return &Coordinator{prefs: store, renderer: renderer}
}

// RegisterSelector adds a theme display surface and immediately syncs it.
func (c *Coordinator) RegisterSelector(sel Selector) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selectors = append(c.selectors, sel)
	sel.ShowSelected(c.prefs.Theme())
}

// Theme returns the active theme.
func (c *Coordinator) Theme() model.Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs.Theme()
}

// Currency returns the active currency.
func (c *Coordinator) Currency() currency.Code {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs.Currency()
}

// Formatter returns a formatter that reads the active currency on every
// call, so holders pick up a currency switch without being rebuilt.
func (c *Coordinator) Formatter() func(float64) string {
	return func(amount float64) string {
		return currency.Format(c.Currency(), amount)
	}
}

// Remember stores the analytics snapshot the charts were last rendered
// from. SetTheme replays from this snapshot.
func (c *Coordinator) Remember(a Analytics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &a
}

// SetTheme persists the choice, restyles every mounted chart and syncs all
// selectors. Re-selecting the active theme is a harmless no-op replay.
func (c *Coordinator) SetTheme(t model.Theme) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.prefs.SetTheme(t); err != nil {
		return err
	}
	c.replayLocked()
	for _, sel := range c.selectors {
		sel.ShowSelected(t)
	}
	return nil
}

// SetCurrency persists the choice. Amounts are formatted at view-assembly
// time, so the caller refreshes its views to show the new currency.
func (c *Coordinator) SetCurrency(code currency.Code) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prefs.SetCurrency(code)
}

// replayLocked re-renders each slot that currently holds a handle, using
// the palette of the active theme. A slot that was never mounted stays
// untouched.
func (c *Coordinator) replayLocked() {
	if c.last == nil {
		return
	}
	theme := c.prefs.Theme()
	a := c.last

	renders := map[charts.Slot]func() (*charts.Handle, error){
		charts.SlotCategory: func() (*charts.Handle, error) {
			return c.renderer.Category(a.Summary.CategoryBreakdown, charts.For(theme, charts.KindCategory))
		},
		charts.SlotDistribution: func() (*charts.Handle, error) {
			return c.renderer.Distribution(a.Summary.CategoryBreakdown, charts.For(theme, charts.KindDistribution))
		},
		charts.SlotTrends: func() (*charts.Handle, error) {
			return c.renderer.Trends(a.Trends, charts.For(theme, charts.KindTrend))
		},
		charts.SlotComparison: func() (*charts.Handle, error) {
			return c.renderer.Comparison(a.Trends, charts.For(theme, charts.KindComparison))
		},
		charts.SlotDaily: func() (*charts.Handle, error) {
			return c.renderer.Daily(a.Daily, charts.For(theme, charts.KindDaily))
		},
	}

	for slot, render := range renders {
		if c.renderer.Handle(slot) == nil {
			continue
		}
		if _, err := render(); err != nil {
			log.Warnf("failed to restyle %s chart: %v", slot, err)
		}
	}
}
