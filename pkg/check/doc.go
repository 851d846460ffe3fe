// Package check runs a whole allocator trace through a slab.Validator.
//
// Run, RunFile and RunString read the trace line by line, apply each event
// in order and stop at the first violation. The result is a Report with the
// verdict and a few statistics about the trace (events, peak live set, pages
// touched, allocations left live at the end).
//
//	report, err := check.RunFile("trace.txt", check.DefaultOptions())
//	switch {
//	case err == nil:
//	    fmt.Println("ok")
//	case slab.IsViolation(err):
//	    fmt.Print(report.FormatText())
//	default:
//	    return err // I/O problem
//	}
//
// Progress can be observed through Options.Progress, which is called every
// Options.ProgressInterval lines and never affects the verdict.
package check
