package engine

import (
	"math"

	"github.com/storiny/web-sub003/internal/binding"
	"github.com/storiny/web-sub003/internal/config"
	"github.com/storiny/web-sub003/internal/linear"
)

type Options struct {
	Linear   linear.Options
	Binding  binding.Options
	GridSize float64
}

// DefaultOptions returns the editor and binding defaults with the grid off.
func DefaultOptions() Options {
	return Options{
		Linear:  linear.DefaultOptions(),
		Binding: binding.DefaultOptions(),
	}
}

// OptionsFromConfig maps the editor configuration group onto engine options.
func OptionsFromConfig(cfg config.Editor) Options {
	opts := DefaultOptions()
	opts.GridSize = cfg.GridSize
	opts.Linear.PointHandleSize = cfg.PointHandleSize
	opts.Linear.LineConfirmThreshold = cfg.LineConfirmThreshold
	opts.Linear.DragThreshold = cfg.DragThreshold
	opts.Linear.ShiftLockingAngle = cfg.ShiftLockingAngle * math.Pi / 180
	opts.Linear.DuplicateNudge = cfg.DuplicateNudge
	opts.Binding.Enabled = cfg.BindingEnabled
	return opts
}
