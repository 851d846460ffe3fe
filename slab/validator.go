package slab

import "fmt"

// Validator checks allocator events against the fixed-slot page discipline.
// It is not safe for concurrent use; events must be applied in trace order.
type Validator struct {
	geom  Geometry
	state *State

	allocs int
	frees  int
}

// NewValidator returns a Validator with empty state for the given geometry.
func NewValidator(geom Geometry) (*Validator, error) {
	if err := geom.Validate(); err != nil {
		return nil, err
	}
	return &Validator{geom: geom, state: NewState()}, nil
}

// Geometry returns the page and slot sizes v checks against.
func (v *Validator) Geometry() Geometry { return v.geom }

// State returns the live-allocation state accumulated so far.
func (v *Validator) State() *State { return v.state }

// Allocs returns the number of accepted allocation events.
func (v *Validator) Allocs() int { return v.allocs }

// Frees returns the number of accepted free events.
func (v *Validator) Frees() int { return v.frees }

// Apply checks ev against the accumulated state and commits it when every
// invariant holds. On failure the state is left untouched and a
// *ViolationError is returned.
func (v *Validator) Apply(ev Event) error {
	switch ev.Kind {
	case Alloc:
		return v.alloc(ev)
	case Free:
		return v.free(ev)
	default:
		return &ViolationError{
			Kind:    UnknownEventKind,
			Line:    ev.Line,
			Addr:    ev.Addr,
			Message: fmt.Sprintf("unknown event kind %d", ev.Kind),
		}
	}
}

func (v *Validator) alloc(ev Event) error {
	addr := ev.Addr
	page := v.geom.PageOf(addr)

	if !v.geom.SlotFits(addr) {
		return &ViolationError{
			Kind:    CrossPageAllocation,
			Line:    ev.Line,
			Addr:    addr,
			Message: fmt.Sprintf("allocation %#x crosses a page boundary", addr),
		}
	}

	if v.state.IsLive(addr) {
		return &ViolationError{
			Kind:    DoubleAllocation,
			Line:    ev.Line,
			Addr:    addr,
			Message: fmt.Sprintf("allocation %#x returned twice without being freed", addr),
		}
	}

	for _, other := range v.state.OnPage(page) {
		diff := distance(addr, other)
		if diff < v.geom.AllocSize {
			return &ViolationError{
				Kind:     OverlapTooClose,
				Line:     ev.Line,
				Addr:     addr,
				Other:    other,
				Distance: diff,
				Message: fmt.Sprintf("allocations %#x and %#x are closer than %d bytes",
					addr, other, v.geom.AllocSize),
			}
		}
		if diff%v.geom.AllocSize != 0 {
			return &ViolationError{
				Kind:     OverlapMisaligned,
				Line:     ev.Line,
				Addr:     addr,
				Other:    other,
				Distance: diff,
				Message: fmt.Sprintf("allocations %#x and %#x are separated by %d bytes (not a multiple of %d)",
					addr, other, diff, v.geom.AllocSize),
			}
		}
	}

	v.state.insert(page, addr)
	v.allocs++
	return nil
}

func (v *Validator) free(ev Event) error {
	addr := ev.Addr
	if !v.state.IsLive(addr) {
		return &ViolationError{
			Kind:    UnknownFree,
			Line:    ev.Line,
			Addr:    addr,
			Message: fmt.Sprintf("free of %#x which is not allocated", addr),
		}
	}

	v.state.remove(v.geom.PageOf(addr), addr)
	v.frees++
	return nil
}
