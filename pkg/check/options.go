package check

import "github.com/joshuapare/slabcheck/slab"

// DefaultProgressInterval is how many lines pass between progress callbacks.
const DefaultProgressInterval = 100000

// Options controls a validation run.
type Options struct {
	// Geometry is the page and slot layout to check against.
	// Zero value means slab.DefaultGeometry().
	Geometry slab.Geometry

	// ProgressInterval is the number of lines between Progress calls.
	// 0 disables progress reporting.
	ProgressInterval int

	// Progress, if set, is called with the current line count every
	// ProgressInterval lines. It has no effect on the verdict.
	Progress func(lines int)
}

// DefaultOptions returns options for the 4 KiB page / 64-byte slot layout
// with progress every DefaultProgressInterval lines.
func DefaultOptions() Options {
	return Options{
		Geometry:         slab.DefaultGeometry(),
		ProgressInterval: DefaultProgressInterval,
	}
}

func (o Options) geometry() slab.Geometry {
	if o.Geometry == (slab.Geometry{}) {
		return slab.DefaultGeometry()
	}
	return o.Geometry
}
