//go:build !linux

package tracefile

import "os"

// Open opens the trace at path for reading.
func Open(path string) (*os.File, error) {
	return os.Open(path)
}
