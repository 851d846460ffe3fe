package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/slabcheck/cmd/slabcheck/logger"
	"github.com/joshuapare/slabcheck/pkg/check"
	"github.com/joshuapare/slabcheck/slab"
)

const (
	exitError     = 1 // usage or I/O failure
	exitViolation = 2 // trace broke an allocator invariant
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logFile string

	// Check flags
	pageSize         uint64
	allocSize        uint64
	progressInterval int
)

var rootCmd = &cobra.Command{
	Use:   "slabcheck <trace-file>",
	Short: "Validate a fixed-size-slot allocator trace",
	Long: `slabcheck replays an allocator trace ("a <hex-addr>" / "f <hex-addr>" lines)
and checks that every reported address is consistent with an allocator that
hands out fixed-size slots from page-aligned pages:

  - a slot never crosses a page boundary
  - an address is not returned twice without being freed
  - only live addresses are freed
  - live slots on the same page do not overlap and share a common lattice

The check stops at the first violation.`,
	Example: `  slabcheck trace.txt
  slabcheck --alloc-size 32 trace.txt
  slabcheck --json trace.txt`,
	Args:          cobra.ExactArgs(1),
	RunE:          runCheck,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = versionString()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output the report in JSON format")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Append JSON log records to this file")

	rootCmd.Flags().Uint64Var(&pageSize, "page-size", slab.PageSize, "Page size in bytes (power of two)")
	rootCmd.Flags().Uint64Var(&allocSize, "alloc-size", slab.AllocSize, "Slot size in bytes")
	rootCmd.Flags().IntVar(&progressInterval, "progress-interval", check.DefaultProgressInterval,
		"Print the line count every N lines (0 disables)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if slab.IsViolation(err) {
		return exitViolation
	}
	return exitError
}

func runCheck(cmd *cobra.Command, args []string) error {
	// Argument errors above print usage; failures from here on do not.
	cmd.SilenceUsage = true
	tracePath := args[0]

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	closeLog, err := logger.Init(logger.Options{Enabled: verbose, File: logFile, Level: level})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	opts := check.DefaultOptions()
	opts.Geometry = slab.Geometry{PageSize: pageSize, AllocSize: allocSize}
	opts.ProgressInterval = progressInterval

	progressShown := false
	if !quiet && !jsonOut {
		opts.Progress = func(lines int) {
			progressShown = true
			fmt.Fprintf(os.Stdout, "\r%d", lines)
		}
	}

	logger.Info("check started", "trace", tracePath,
		"page_size", pageSize, "alloc_size", allocSize)

	report, err := check.RunFile(tracePath, opts)
	if progressShown {
		fmt.Fprintln(os.Stdout)
	}
	if report == nil {
		return err
	}

	logger.Info("check finished",
		"valid", report.Valid,
		"lines", report.Lines,
		"allocs", report.Allocs,
		"frees", report.Frees,
		"peak_live", report.PeakLive,
		"peak_pages", report.PeakPages,
		"duration", report.ScanTime)
	if verr, ok := slab.AsViolation(err); ok {
		logger.Error("violation", "kind", verr.Kind.String(), "line", verr.Line,
			"addr", fmt.Sprintf("%#x", verr.Addr))
	}
	if report.Valid && report.LiveAtEnd > 0 {
		logger.Warn("allocations left live at end of trace", "live", report.LiveAtEnd)
	}

	if jsonOut {
		if jerr := printJSON(report); jerr != nil {
			return jerr
		}
		return err
	}

	if err != nil {
		return err
	}

	if verbose {
		printVerbose("%s\n", report.FormatText())
	}
	printInfo("ok\n")
	return nil
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
