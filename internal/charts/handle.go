package charts

// Slot identifies a chart's mount location. Each slot owns at most one live
// handle; mounting a new chart into a slot disposes the previous one.
type Slot string

const (
	SlotCategory     Slot = "category"
	SlotTrends       Slot = "trends"
	SlotComparison   Slot = "comparison"
	SlotDaily        Slot = "daily"
	SlotDistribution Slot = "distribution"
)

// Handle is one rendered chart bound to a slot. An empty-state handle has no
// image, only a placeholder message.
type Handle struct {
	slot        Slot
	png         []byte
	placeholder string
	disposed    bool
}

// Slot returns the mount location the handle is bound to.
func (h *Handle) Slot() Slot { return h.slot }

// PNG returns the rendered image, or nil for an empty-state or disposed
// handle.
func (h *Handle) PNG() []byte {
	if h.disposed {
		return nil
	}
	return h.png
}

// Empty reports whether the handle is an empty-state placeholder rather than
// a rendered chart.
func (h *Handle) Empty() bool { return h.png == nil }

// Placeholder returns the empty-state message, or "" for a rendered chart.
func (h *Handle) Placeholder() string { return h.placeholder }

// Disposed reports whether the handle has been released.
func (h *Handle) Disposed() bool { return h.disposed }

// Dispose releases the handle's image. It is safe to call more than once.
func (h *Handle) Dispose() {
	h.disposed = true
	h.png = nil
}
