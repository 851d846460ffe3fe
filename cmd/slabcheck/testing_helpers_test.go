package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/joshuapare/slabcheck/pkg/check"
	"github.com/joshuapare/slabcheck/slab"
)

// resetFlags restores every flag variable to its default between runs.
func resetFlags() {
	verbose = false
	quiet = false
	jsonOut = false
	logFile = ""
	pageSize = slab.PageSize
	allocSize = slab.AllocSize
	progressInterval = check.DefaultProgressInterval
	rootCmd.SilenceUsage = false
}

// captureOutput captures stdout and stderr while running a function
func captureOutput(t *testing.T, fn func() error) (string, string, error) {
	t.Helper()

	origStdout, origStderr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout, os.Stderr = outW, errW

	drain := func(r io.Reader) <-chan string {
		ch := make(chan string, 1)
		go func() {
			var buf bytes.Buffer
			_, _ = buf.ReadFrom(r)
			ch <- buf.String()
		}()
		return ch
	}
	outCh, errCh := drain(outR), drain(errR)

	fnErr := fn()

	outW.Close()
	errW.Close()
	os.Stdout, os.Stderr = origStdout, origStderr

	return <-outCh, <-errCh, fnErr
}

// runCLI executes the root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	// A nil slice makes cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return captureOutput(t, rootCmd.Execute)
}
