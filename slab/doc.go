// Package slab checks fixed-size-slot allocator traces for structural consistency.
//
// # Overview
//
// A trace is an ordered log of allocation ("a") and free ("f") events, one per
// line, each naming a hexadecimal address:
//
//	a 7f3a1000
//	a 7f3a1040
//	f 7f3a1000
//
// The Validator replays those events against a model of a page-segmented
// allocator that hands out AllocSize-byte slots from PageSize-aligned pages,
// and reports the first event that a correct allocator could not have produced.
//
// # Invariants
//
// For every accepted allocation of address x:
//   - The slot [x, x+AllocSize) lies within the page PageOf(x)
//   - x is not already live
//   - Every other live address y on the same page satisfies
//     |x-y| >= AllocSize and |x-y| mod AllocSize == 0
//
// For every accepted free of address x, x is live immediately before the event.
//
// # Quick Start
//
//	v, err := slab.NewValidator(slab.DefaultGeometry())
//	if err != nil {
//	    return err
//	}
//	ev, err := slab.ParseEvent("a 1000", 1)
//	if err != nil {
//	    return err
//	}
//	if err := v.Apply(ev); err != nil {
//	    if errors.Is(err, slab.ErrDoubleAllocation) {
//	        // ...
//	    }
//	}
//
// # Errors
//
// Every failure is a *ViolationError carrying the ErrorKind, trace line and
// the implicated address(es). ViolationError unwraps to one of the package
// sentinels (ErrMalformedTrace, ErrUnknownEventKind, ErrCrossPageAllocation,
// ErrDoubleAllocation, ErrOverlapTooClose, ErrOverlapMisaligned,
// ErrUnknownFree), so callers can use errors.Is.
//
// # State
//
// State keeps the live set as a hash set and a page index mapping each page
// base to the ascending list of live addresses on it. The overlap checks only
// look at the bucket for the allocated page, and empty buckets are dropped on
// free, so memory is proportional to the peak number of live allocations.
//
// # Thread Safety
//
// A Validator and its State are owned by a single run and are not safe for
// concurrent use.
package slab
