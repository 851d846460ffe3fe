package slab

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTrace indicates a line with fewer than two fields or a non-hex address.
	ErrMalformedTrace = errors.New("slab: malformed trace")
	// ErrUnknownEventKind indicates a kind token other than "a" or "f".
	ErrUnknownEventKind = errors.New("slab: unknown event kind")
	// ErrCrossPageAllocation indicates a slot spanning a page boundary.
	ErrCrossPageAllocation = errors.New("slab: allocation crosses a page boundary")
	// ErrDoubleAllocation indicates an address allocated while already live.
	ErrDoubleAllocation = errors.New("slab: address allocated twice")
	// ErrOverlapTooClose indicates two live same-page slots closer than AllocSize.
	ErrOverlapTooClose = errors.New("slab: allocations too close")
	// ErrOverlapMisaligned indicates two live same-page slots off a common lattice.
	ErrOverlapMisaligned = errors.New("slab: allocations misaligned")
	// ErrUnknownFree indicates a free of an address that is not live.
	ErrUnknownFree = errors.New("slab: free of unknown address")
)

// ErrorKind names the invariant a trace violated.
type ErrorKind int

const (
	MalformedTrace ErrorKind = iota + 1
	UnknownEventKind
	CrossPageAllocation
	DoubleAllocation
	OverlapTooClose
	OverlapMisaligned
	UnknownFree
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedTrace:
		return "MalformedTrace"
	case UnknownEventKind:
		return "UnknownEventKind"
	case CrossPageAllocation:
		return "CrossPageAllocation"
	case DoubleAllocation:
		return "DoubleAllocation"
	case OverlapTooClose:
		return "OverlapTooClose"
	case OverlapMisaligned:
		return "OverlapMisaligned"
	case UnknownFree:
		return "UnknownFree"
	default:
		return "Unknown"
	}
}

// MarshalText renders the kind by name in JSON reports.
func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedTrace:
		return ErrMalformedTrace
	case UnknownEventKind:
		return ErrUnknownEventKind
	case CrossPageAllocation:
		return ErrCrossPageAllocation
	case DoubleAllocation:
		return ErrDoubleAllocation
	case OverlapTooClose:
		return ErrOverlapTooClose
	case OverlapMisaligned:
		return ErrOverlapMisaligned
	case UnknownFree:
		return ErrUnknownFree
	default:
		return nil
	}
}

// ViolationError describes the first inconsistency found in a trace.
type ViolationError struct {
	Kind ErrorKind `json:"kind"`
	// Line is the 1-based trace line, or 0 when the event did not come from a file.
	Line int `json:"line,omitempty"`
	// Addr is the address of the offending event.
	Addr uint64 `json:"addr"`
	// Other is the live address Addr collided with (overlap kinds only).
	Other uint64 `json:"other,omitempty"`
	// Distance is |Addr - Other| for overlap kinds.
	Distance uint64 `json:"distance,omitempty"`
	Message  string `json:"message"`
}

func (e *ViolationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the sentinel for e.Kind to errors.Is.
func (e *ViolationError) Unwrap() error {
	return e.Kind.sentinel()
}

// IsViolation reports whether err carries a *ViolationError.
func IsViolation(err error) bool {
	var verr *ViolationError
	return errors.As(err, &verr)
}

// AsViolation extracts the *ViolationError from err, if any.
func AsViolation(err error) (*ViolationError, bool) {
	var verr *ViolationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
