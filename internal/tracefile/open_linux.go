//go:build linux

package tracefile

import (
	"os"

	"golang.org/x/sys/unix"
)

// Open opens the trace at path for a single sequential pass.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Advisory only; a filesystem that rejects it is still readable.
	_ = unix.Fadvise(int(f.Fd()), 0, 0, unix.FADV_SEQUENTIAL)
	return f, nil
}
