package linear

import (
	"slices"

	"github.com/storiny/web-sub003/internal/geom"
)

// Session is the state of one linear element under edit. It is a plain
// value the caller may persist or inspect between events.
type Session struct {
	ID        string `json:"id"`
	ElementID string `json:"elementId"`
	// OriginShift is how far the element origin moved when the session
	// normalized the first point onto it.
	OriginShift geom.Point `json:"originShift"`

	Selected      []int      `json:"selected"`
	LastClicked   int        `json:"lastClicked"`
	Dragging      bool       `json:"dragging"`
	PointerOffset geom.Point `json:"pointerOffset"`

	// Pending is a proposed last point shown while Alt is held. It lives
	// only here until an Alt press commits it to the element.
	Pending *geom.Point `json:"pending,omitempty"`

	HoverPoint      int       `json:"hoverPoint"`
	HoveredMidpoint *Midpoint `json:"hoveredMidpoint,omitempty"`

	// Suggested lists the elements the dragged endpoints would bind to.
	Suggested []string `json:"suggested,omitempty"`

	down      *pointerDown
	midpoints midpointCache
}

// Midpoint is a segment midpoint handle in scene space.
type Midpoint struct {
	Segment int        `json:"segment"`
	Point   geom.Point `json:"point"`
	Version int        `json:"version"`
}

type pointerDown struct {
	origin       geom.Point
	prevSelected []int
	hit          int
}

type midpointCache struct {
	valid   bool
	version int
	zoom    float64
	points  []*geom.Point
}

// NormalizeSelected drops out-of-range indices, sorts and dedupes. An empty
// result is nil.
func NormalizeSelected(indices []int, n int) []int {
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i >= 0 && i < n {
			out = append(out, i)
		}
	}
	if len(out) == 0 {
		return nil
	}
	slices.Sort(out)
	return slices.Compact(out)
}
