// Package engine implements the worker pool that tests password candidates
// against a classified ZIP entry: one goroutine per shard of the candidate
// space, coordinated through a single stop flag and a single-capacity result
// channel, with no other synchronization between workers.
package engine

import "sync/atomic"

// StopFlag is a process-wide cancellation signal. It starts false and is set
// at most meaningfully once — by the coordinator on a found password, by an
// OS interrupt handler, or by a caller-supplied timeout — though the
// underlying transition is idempotent and safe to call more than once.
// Workers poll it with relaxed (atomic, unordered) reads.
type StopFlag struct {
	flag atomic.Bool
}

// Set transitions the flag to true. Safe to call concurrently and more than
// once.
func (s *StopFlag) Set() {
	s.flag.Store(true)
}

// IsSet reports the current value.
func (s *StopFlag) IsSet() bool {
	return s.flag.Load()
}

// Result is the outcome of a full coordinator run.
type Result struct {
	// Password is the matching candidate, if any.
	Password string

	// Found reports whether Password is valid. A run can complete with
	// Found == false either because the candidate space was exhausted or
	// because it was cancelled before a match.
	Found bool
}
