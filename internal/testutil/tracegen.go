package testutil

import (
	"bytes"
	"fmt"
	"math/rand/v2"
)

// Profile defines the shape of a generated allocator trace.
type Profile struct {
	// Rounds is the number of allocation events before the final drain.
	Rounds int

	// MaxLive caps the number of simultaneously live allocations. When the cap
	// is hit a random-sized batch of the most recent allocations is freed.
	// 0 = use default (2048)
	MaxLive int

	// PageSize and AllocSize describe the slot lattice.
	// 0 = use defaults (4096 / 64)
	PageSize  uint64
	AllocSize uint64

	// BaseAddr is the address of the first page. Must be page aligned.
	// 0 = use default (0x7f0000000000)
	BaseAddr uint64

	// HexPrefix writes addresses as 0x... like printf("%p").
	HexPrefix bool

	// Seed for reproducibility
	Seed uint64
}

// GenerateTrace produces a trace that satisfies every slot invariant: slots
// are handed out from the lowest page with room, and the live set is drained
// in LIFO batches whenever it reaches MaxLive. All allocations are freed at
// the end.
func GenerateTrace(profile Profile) []byte {
	if profile.MaxLive == 0 {
		profile.MaxLive = 2048
	}
	if profile.PageSize == 0 {
		profile.PageSize = 4096
	}
	if profile.AllocSize == 0 {
		profile.AllocSize = 64
	}
	if profile.BaseAddr == 0 {
		profile.BaseAddr = 0x7f0000000000
	}

	rng := rand.New(rand.NewPCG(profile.Seed, profile.Seed))
	pool := newSlotPool(profile.BaseAddr, profile.PageSize, profile.AllocSize)
	format := "%s %x\n"
	if profile.HexPrefix {
		format = "%s %#x\n"
	}

	var buf bytes.Buffer
	live := make([]uint64, 0, profile.MaxLive)

	for range profile.Rounds {
		addr := pool.take()
		fmt.Fprintf(&buf, format, "a", addr)
		live = append(live, addr)

		if len(live) == profile.MaxLive {
			n := rng.IntN(profile.MaxLive) + 1
			for range n {
				last := live[len(live)-1]
				live = live[:len(live)-1]
				fmt.Fprintf(&buf, format, "f", last)
				pool.give(last)
			}
		}
	}

	for _, addr := range live {
		fmt.Fprintf(&buf, format, "f", addr)
	}

	return buf.Bytes()
}

// slotPool hands out slots from contiguous pages, lowest page first.
type slotPool struct {
	base      uint64
	pageSize  uint64
	allocSize uint64

	free       [][]uint64 // per page, stack of free slot addresses
	lowestFree int
}

func newSlotPool(base, pageSize, allocSize uint64) *slotPool {
	return &slotPool{base: base, pageSize: pageSize, allocSize: allocSize}
}

func (p *slotPool) take() uint64 {
	for p.lowestFree < len(p.free) && len(p.free[p.lowestFree]) == 0 {
		p.lowestFree++
	}
	if p.lowestFree == len(p.free) {
		p.free = append(p.free, p.newPage(uint64(len(p.free))))
	}

	slots := p.free[p.lowestFree]
	addr := slots[len(slots)-1]
	p.free[p.lowestFree] = slots[:len(slots)-1]
	return addr
}

func (p *slotPool) give(addr uint64) {
	idx := int((addr - p.base) / p.pageSize)
	p.free[idx] = append(p.free[idx], addr)
	p.lowestFree = min(p.lowestFree, idx)
}

func (p *slotPool) newPage(idx uint64) []uint64 {
	page := p.base + idx*p.pageSize
	n := p.pageSize / p.allocSize
	slots := make([]uint64, 0, n)
	// Pushed high to low so the lowest slot is handed out first.
	for i := n; i > 0; i-- {
		slots = append(slots, page+(i-1)*p.allocSize)
	}
	return slots
}
