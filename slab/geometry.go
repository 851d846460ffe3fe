package slab

import "fmt"

const (
	// PageSize is the page alignment granularity of the checked allocator.
	PageSize = 4096

	// AllocSize is the fixed slot size every allocation is assumed to occupy.
	AllocSize = 64
)

// Geometry describes the page and slot sizes a trace is checked against.
type Geometry struct {
	PageSize  uint64 `json:"page_size"`
	AllocSize uint64 `json:"alloc_size"`
}

// DefaultGeometry returns the 4 KiB page / 64-byte slot layout.
func DefaultGeometry() Geometry {
	return Geometry{PageSize: PageSize, AllocSize: AllocSize}
}

// Validate reports whether g can be used to check a trace.
func (g Geometry) Validate() error {
	if g.PageSize == 0 || g.PageSize&(g.PageSize-1) != 0 {
		return fmt.Errorf("slab: page size %d is not a power of two", g.PageSize)
	}
	if g.AllocSize == 0 {
		return fmt.Errorf("slab: alloc size must be positive")
	}
	if g.AllocSize > g.PageSize {
		return fmt.Errorf("slab: alloc size %d exceeds page size %d", g.AllocSize, g.PageSize)
	}
	return nil
}

// PageOf returns the base of the page containing addr.
func (g Geometry) PageOf(addr uint64) uint64 {
	return addr &^ (g.PageSize - 1)
}

// SlotFits reports whether the slot [addr, addr+AllocSize) lies within a single page.
// A slot whose end wraps past the top of the address space never fits.
func (g Geometry) SlotFits(addr uint64) bool {
	last := addr + g.AllocSize - 1
	if last < addr {
		return false
	}
	return g.PageOf(last) == g.PageOf(addr)
}

// PageOf returns the base of the 4 KiB page containing addr.
func PageOf(addr uint64) uint64 {
	return addr &^ (PageSize - 1)
}

// distance returns |a - b| without overflowing.
func distance(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}
