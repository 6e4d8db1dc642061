// Package runid generates short, collision-resistant identifiers used to
// correlate a run's log lines with its checkpoint file.
package runid

import "github.com/sixafter/nanoid"

// Length is the number of characters in a generated run ID — short enough to
// read comfortably in a log line or filename, long enough that two
// concurrent runs on the same machine won't collide in practice.
const Length = 10

// New returns a fresh CSPRNG-backed run ID.
func New() (string, error) {
	return nanoid.NewWithLength(Length)
}

// Must is like New but panics on error, for call sites (CLI startup) where a
// failure here means the process cannot continue meaningfully anyway.
func Must() string {
	return nanoid.MustWithLength(Length)
}
