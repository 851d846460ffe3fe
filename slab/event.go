package slab

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// AllocMarker is the kind token of an allocation event.
	AllocMarker = "a"
	// FreeMarker is the kind token of a free event.
	FreeMarker = "f"

	// minFields is the kind token plus the address token.
	minFields = 2
)

// EventKind distinguishes allocation events from free events.
type EventKind uint8

const (
	Alloc EventKind = iota + 1 // "a"
	Free                       // "f"
)

func (k EventKind) String() string {
	switch k {
	case Alloc:
		return AllocMarker
	case Free:
		return FreeMarker
	default:
		return "?"
	}
}

// Event is one parsed trace line.
type Event struct {
	Kind EventKind
	Addr uint64
	Line int // 1-based; 0 if not read from a trace
}

func (e Event) String() string {
	return fmt.Sprintf("%s %#x", e.Kind, e.Addr)
}

// ParseEvent parses a trace line of the form "<kind> <hex-address> [ignored...]".
// The address may carry a 0x prefix. line is recorded in the event and in any
// returned *ViolationError.
func ParseEvent(text string, line int) (Event, error) {
	fields := strings.Fields(text)
	if len(fields) < minFields {
		return Event{}, &ViolationError{
			Kind:    MalformedTrace,
			Line:    line,
			Message: fmt.Sprintf("expected at least %d fields, got %d", minFields, len(fields)),
		}
	}

	addr, err := parseHex(fields[1])
	if err != nil {
		return Event{}, &ViolationError{
			Kind:    MalformedTrace,
			Line:    line,
			Message: fmt.Sprintf("invalid address %q: %v", fields[1], err),
		}
	}

	var kind EventKind
	switch fields[0] {
	case AllocMarker:
		kind = Alloc
	case FreeMarker:
		kind = Free
	default:
		return Event{}, &ViolationError{
			Kind:    UnknownEventKind,
			Line:    line,
			Addr:    addr,
			Message: fmt.Sprintf("unknown prefix: %s", fields[0]),
		}
	}

	return Event{Kind: kind, Addr: addr, Line: line}, nil
}

// parseHex parses a base-16 unsigned integer with an optional 0x/0X prefix.
func parseHex(s string) (uint64, error) {
	digits := s
	if len(digits) > 2 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		digits = digits[2:]
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) {
			return 0, ne.Err
		}
		return 0, err
	}
	return v, nil
}
