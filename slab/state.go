package slab

import "slices"

// State holds the live allocations of a trace, indexed both by address and
// by containing page. Every live address appears in exactly one page bucket.
type State struct {
	live  map[uint64]struct{}
	pages map[uint64][]uint64 // page base -> live addresses on that page, ascending

	peakLive  int
	peakPages int
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		live:  make(map[uint64]struct{}),
		pages: make(map[uint64][]uint64),
	}
}

// IsLive reports whether addr is currently allocated.
func (s *State) IsLive(addr uint64) bool {
	_, ok := s.live[addr]
	return ok
}

// Live returns the number of live allocations.
func (s *State) Live() int { return len(s.live) }

// Pages returns the number of pages holding at least one live allocation.
func (s *State) Pages() int { return len(s.pages) }

// PeakLive returns the largest number of simultaneously live allocations seen.
func (s *State) PeakLive() int { return s.peakLive }

// PeakPages returns the largest number of simultaneously occupied pages seen.
func (s *State) PeakPages() int { return s.peakPages }

// OnPage returns the live addresses on the page with the given base, ascending.
// The returned slice must not be modified.
func (s *State) OnPage(page uint64) []uint64 {
	return s.pages[page]
}

// LiveAddrs returns all live addresses in ascending order.
func (s *State) LiveAddrs() []uint64 {
	out := make([]uint64, 0, len(s.live))
	for addr := range s.live {
		out = append(out, addr)
	}
	slices.Sort(out)
	return out
}

func (s *State) insert(page, addr uint64) {
	s.live[addr] = struct{}{}

	bucket := s.pages[page]
	i, _ := slices.BinarySearch(bucket, addr)
	s.pages[page] = slices.Insert(bucket, i, addr)

	s.peakLive = max(s.peakLive, len(s.live))
	s.peakPages = max(s.peakPages, len(s.pages))
}

func (s *State) remove(page, addr uint64) {
	delete(s.live, addr)

	bucket := s.pages[page]
	i, found := slices.BinarySearch(bucket, addr)
	if !found {
		return
	}
	bucket = slices.Delete(bucket, i, i+1)
	if len(bucket) == 0 {
		// Drop empty buckets so memory tracks the live set, not trace history.
		delete(s.pages, page)
		return
	}
	s.pages[page] = bucket
}
