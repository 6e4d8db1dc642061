package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/briandowns/spinner"
)

// Progress tracks how many candidates have been tried against a known total.
// Only worker index 1 ever calls Add, per spec §4.6 step 3 — batching the
// count through a single writer avoids contending an atomic across every
// worker on every candidate.
type Progress struct {
	done  atomic.Uint64
	total uint64
}

// NewProgress creates a counter against total known candidates. total may be
// zero when the size is unknown; the spinner's suffix then shows the count and
// rate without a completion percentage.
func NewProgress(total uint64) *Progress {
	return &Progress{total: total}
}

// Add increments the counter by delta.
func (p *Progress) Add(delta uint64) {
	p.done.Add(delta)
}

// Done returns the current count.
func (p *Progress) Done() uint64 {
	return p.done.Load()
}

// Total returns the known candidate space size.
func (p *Progress) Total() uint64 {
	return p.total
}

// Spinner wraps a terminal spinner showing a live rate, reusing the
// briandowns/spinner character set and update cadence. Rendering a full
// progress bar is out of scope (spec §1); this is the minimal live indicator
// the CLI needs.
type Spinner struct {
	s        *spinner.Spinner
	progress *Progress
	started  time.Time
}

// NewSpinner creates a spinner that refreshes every refreshRate, updating its
// suffix with the current rate and (when Total is known) completion
// fraction.
func NewSpinner(progress *Progress, refreshRate time.Duration) *Spinner {
	s := spinner.New(spinner.CharSets[9], refreshRate)
	sp := &Spinner{s: s, progress: progress, started: time.Now()}

	s.PreUpdate = func(s *spinner.Spinner) {
		s.Suffix = sp.suffix()
	}

	return sp
}

// Start begins rendering the spinner to the spinner library's default writer
// (stdout).
func (sp *Spinner) Start() {
	sp.s.Start()
}

// Stop halts rendering and clears the line.
func (sp *Spinner) Stop() {
	sp.s.Stop()
}

func (sp *Spinner) suffix() string {
	done := sp.progress.Done()
	elapsed := time.Since(sp.started).Seconds()

	rate := float64(0)
	if elapsed > 0 {
		rate = float64(done) / elapsed
	}

	if total := sp.progress.Total(); total > 0 {
		pct := float64(done) / float64(total) * 100
		return fmt.Sprintf(" %d/%d candidates (%.1f%%, %.0f/s)", done, total, pct, rate)
	}

	return fmt.Sprintf(" %d candidates (%.0f/s)", done, rate)
}

// Elapsed returns how long the spinner has been tracking progress, whether or
// not it is still rendering. Safe to call after Stop.
func (sp *Spinner) Elapsed() time.Duration {
	return time.Since(sp.started)
}

// Summary formats a final, one-line elapsed-time/throughput report once the
// search has finished, independent of the live spinner suffix that Stop
// clears from the terminal.
func (sp *Spinner) Summary() string {
	done := sp.progress.Done()
	elapsed := sp.Elapsed()

	rate := float64(0)
	if secs := elapsed.Seconds(); secs > 0 {
		rate = float64(done) / secs
	}

	return fmt.Sprintf("tried %d candidates in %s (%.0f/s)", done, elapsed.Round(10*time.Millisecond), rate)
}
