package candidate

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"unicode/utf8"
)

// Dictionary streams candidate passwords from the lines of a UTF-8 text
// file. Lines are trimmed of a trailing '\n' and an optional preceding '\r';
// lines that are not valid UTF-8 are skipped silently. The reader is
// single-pass and not restartable.
type Dictionary struct {
	path    string
	f       *os.File
	scanner *bufio.Scanner
	total   uint64
}

// NewDictionary opens path for streaming and pre-counts its lines (a
// byte-level count of '\n' delimiters, no decoding) for progress reporting.
func NewDictionary(path string) (*Dictionary, error) {
	total, err := countLines(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDictionaryRead, path, err)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Dictionary{path: path, f: f, scanner: scanner, total: total}, nil
}

// Next returns the next valid UTF-8 line, skipping any invalid ones.
func (d *Dictionary) Next() (string, bool) {
	for d.scanner.Scan() {
		line := d.scanner.Text()

		line = trimLineEndings(line)
		if !utf8.ValidString(line) {
			continue
		}

		return line, true
	}

	return "", false
}

// Count returns the pre-computed line count.
func (d *Dictionary) Count() (uint64, error) {
	return d.total, nil
}

// Close releases the underlying file handle.
func (d *Dictionary) Close() error {
	return d.f.Close()
}

func trimLineEndings(line string) string {
	if n := len(line); n > 0 && line[n-1] == '\r' {
		return line[:n-1]
	}

	return line
}

// countLines does a byte-level pre-pass counting '\n' delimiters, without
// decoding or validating UTF-8 — the count is purely for progress reporting
// and must tolerate the same files the streaming reader will later skip
// invalid lines from.
func countLines(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrDictionaryRead, path, err)
	}
	defer f.Close()

	var (
		count uint64
		buf   = make([]byte, 64*1024)
		last  byte
	)

	for {
		n, readErr := f.Read(buf)

		for i := 0; i < n; i++ {
			if buf[i] == '\n' {
				count++
			}
		}

		if n > 0 {
			last = buf[n-1]
		}

		if readErr == io.EOF {
			break
		}

		if readErr != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrDictionaryRead, path, readErr)
		}
	}

	// A final line with no trailing newline still counts as a record.
	if last != '\n' && last != 0 {
		count++
	}

	return count, nil
}

var _ Source = (*Generator)(nil)
var _ Source = (*Dictionary)(nil)
