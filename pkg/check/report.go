package check

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/joshuapare/slabcheck/slab"
)

// Report summarizes one validation run.
type Report struct {
	// Metadata
	FilePath string        `json:"file_path,omitempty"`
	Geometry slab.Geometry `json:"geometry"`
	ScanTime time.Duration `json:"scan_time"`

	// Verdict
	Valid     bool                 `json:"valid"`
	Violation *slab.ViolationError `json:"violation,omitempty"`

	// Statistics
	Lines     int `json:"lines"`       // lines consumed, including a failing one
	Allocs    int `json:"allocs"`      // accepted allocation events
	Frees     int `json:"frees"`       // accepted free events
	PeakLive  int `json:"peak_live"`   // most simultaneously live allocations
	PeakPages int `json:"peak_pages"`  // most simultaneously occupied pages
	LiveAtEnd int `json:"live_at_end"` // allocations never freed
}

func (r *Report) fail(err error) {
	r.Valid = false
	if verr, ok := slab.AsViolation(err); ok {
		r.Violation = verr
	}
}

// FormatJSON returns the report as formatted JSON (2-space indentation)
func (r *Report) FormatJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// FormatText returns a human-readable text report
func (r *Report) FormatText() string {
	var b strings.Builder

	b.WriteString(strings.Repeat("=", 79) + "\n")
	b.WriteString("Allocator Trace Check\n")
	b.WriteString(strings.Repeat("=", 79) + "\n\n")

	if r.FilePath != "" {
		fmt.Fprintf(&b, "File:      %s\n", r.FilePath)
	}
	fmt.Fprintf(&b, "Geometry:  %d-byte pages, %d-byte slots\n", r.Geometry.PageSize, r.Geometry.AllocSize)
	fmt.Fprintf(&b, "Scan time: %v\n\n", r.ScanTime)

	b.WriteString("SUMMARY\n")
	b.WriteString(strings.Repeat("-", 79) + "\n")
	fmt.Fprintf(&b, "  Lines:       %d\n", r.Lines)
	fmt.Fprintf(&b, "  Allocations: %d\n", r.Allocs)
	fmt.Fprintf(&b, "  Frees:       %d\n", r.Frees)
	fmt.Fprintf(&b, "  Peak live:   %d (on %d pages)\n", r.PeakLive, r.PeakPages)
	fmt.Fprintf(&b, "  Live at end: %d\n\n", r.LiveAtEnd)

	if r.Valid {
		b.WriteString("Result: VALID\n")
		return b.String()
	}

	b.WriteString("Result: INVALID\n")
	if v := r.Violation; v != nil {
		fmt.Fprintf(&b, "  Invariant: %s\n", v.Kind)
		if v.Line > 0 {
			fmt.Fprintf(&b, "  Line:      %d\n", v.Line)
		}
		fmt.Fprintf(&b, "  Address:   %#x\n", v.Addr)
		if v.Kind == slab.OverlapTooClose || v.Kind == slab.OverlapMisaligned {
			fmt.Fprintf(&b, "  Conflicts: %#x (%d bytes apart)\n", v.Other, v.Distance)
		}
		fmt.Fprintf(&b, "  Detail:    %s\n", v.Message)
	}
	return b.String()
}
