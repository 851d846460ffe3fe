package tracefile

import (
	"bufio"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	// ScannerInitialBufferSize is the initial line buffer size.
	ScannerInitialBufferSize = 64 * 1024

	// ScannerMaxLineSize bounds a single trace line, ignored trailing fields included.
	ScannerMaxLineSize = 1024 * 1024
)

// Scanner yields trace lines with trailing whitespace removed, counting
// lines from 1.
type Scanner struct {
	sc   *bufio.Scanner
	line int
	text string
}

// NewScanner returns a Scanner reading from r. Input is UTF-8 unless it
// starts with a UTF-8 or UTF-16 byte-order mark.
func NewScanner(r io.Reader) *Scanner {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, decoder))

	buf := make([]byte, 0, ScannerInitialBufferSize)
	sc.Buffer(buf, ScannerMaxLineSize)

	return &Scanner{sc: sc}
}

// Scan advances to the next line.
func (s *Scanner) Scan() bool {
	if !s.sc.Scan() {
		return false
	}
	s.line++
	s.text = strings.TrimRight(s.sc.Text(), " \t\r\n\v\f")
	return true
}

// Text returns the current line.
func (s *Scanner) Text() string { return s.text }

// Line returns the 1-based number of the current line.
func (s *Scanner) Line() int { return s.line }

// Err returns the first read error, if any.
func (s *Scanner) Err() error { return s.sc.Err() }
