package linear

import (
	"math"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/geom"
)

type Options struct {
	// PointHandleSize is the on-screen radius of a point handle.
	PointHandleSize float64
	// LineConfirmThreshold is the on-screen distance under which the two
	// ends of a path snap together into a loop.
	LineConfirmThreshold float64
	// DragThreshold is the on-screen distance the pointer must travel
	// before a press on a handle becomes a drag.
	DragThreshold float64
	// ShiftLockingAngle is the angle step, in radians, used when Shift
	// constrains a segment.
	ShiftLockingAngle float64
	// DuplicateNudge offsets a duplicated final point so the new trailing
	// segment is not zero length.
	DuplicateNudge float64
}

// DefaultOptions returns the standard handle sizes and thresholds.
func DefaultOptions() Options {
	return Options{
		PointHandleSize:      10,
		LineConfirmThreshold: 8,
		DragThreshold:        10,
		ShiftLockingAngle:    math.Pi / 12,
		DuplicateNudge:       30,
	}
}

// Pointer is a pointer event in scene coordinates with its modifier keys.
type Pointer struct {
	Point geom.Point `json:"point"`
	Shift bool       `json:"shift"`
	Alt   bool       `json:"alt"`
	Ctrl  bool       `json:"ctrl"`
}

// Viewport carries the view state pointer handling depends on.
type Viewport struct {
	Zoom     float64 `json:"zoom"`
	GridSize float64 `json:"gridSize"`
}

func (v Viewport) zoom() float64 {
	if v.Zoom <= 0 {
		return 1
	}
	return v.Zoom
}

// grid returns the snapping step for p. Ctrl suspends the grid.
func (v Viewport) grid(p Pointer) float64 {
	if p.Ctrl {
		return 0
	}
	return v.GridSize
}

// Store is the part of the scene the editor reads and writes.
type Store interface {
	binding.Store
	Delete(id string) error
}
