package check

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/joshuapare/slabcheck/internal/tracefile"
	"github.com/joshuapare/slabcheck/slab"
)

// RunFile validates the trace stored at path.
//
// Example:
//
//	report, err := check.RunFile("trace.txt", check.DefaultOptions())
//	if verr, ok := slab.AsViolation(err); ok {
//	    fmt.Printf("line %d: %s\n", verr.Line, verr.Message)
//	}
func RunFile(path string, opts Options) (*Report, error) {
	f, err := tracefile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace %s: %w", path, err)
	}
	defer f.Close()

	report, err := Run(f, opts)
	if report != nil {
		report.FilePath = path
	}
	return report, err
}

// RunString validates a trace held in memory.
func RunString(trace string, opts Options) (*Report, error) {
	return Run(strings.NewReader(trace), opts)
}

// Run validates the trace read from r, one line at a time in order, and stops
// at the first violation. The returned report is never nil once the geometry
// has been accepted; on a violation it is marked invalid and the error is the
// *slab.ViolationError that was found.
func Run(r io.Reader, opts Options) (*Report, error) {
	start := time.Now()

	v, err := slab.NewValidator(opts.geometry())
	if err != nil {
		return nil, err
	}

	report := &Report{Geometry: v.Geometry()}
	defer func() {
		st := v.State()
		report.Allocs = v.Allocs()
		report.Frees = v.Frees()
		report.PeakLive = st.PeakLive()
		report.PeakPages = st.PeakPages()
		report.LiveAtEnd = st.Live()
		report.ScanTime = time.Since(start)
	}()

	sc := tracefile.NewScanner(r)
	for sc.Scan() {
		report.Lines = sc.Line()
		if opts.Progress != nil && opts.ProgressInterval > 0 && report.Lines%opts.ProgressInterval == 0 {
			opts.Progress(report.Lines)
		}

		ev, err := slab.ParseEvent(sc.Text(), sc.Line())
		if err == nil {
			err = v.Apply(ev)
		}
		if err != nil {
			report.fail(err)
			return report, err
		}
	}
	if err := sc.Err(); err != nil {
		return report, fmt.Errorf("failed to read trace after line %d: %w", report.Lines, err)
	}

	report.Valid = true
	return report, nil
}
