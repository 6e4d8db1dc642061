package candidate

import (
	"fmt"
)

// Generator enumerates, in order, all strings over a charset of length
// minLen, minLen+1, …, up to maxLen. Within each length, strings are produced
// in odometer order treating the rightmost position as least significant.
//
// A Generator is not safe for concurrent use. Workers clone the resolved
// charset and length range into their own [Generator] instance (cheap: no
// shared state beyond the immutable charset slice).
type Generator struct {
	charset []rune
	indexOf map[rune]int
	minLen  int
	maxLen  int

	current []int // indices into charset, one per position
	started bool

	generated uint64
	total     uint64
}

// NewGenerator builds a generator over charset for lengths [minLen, maxLen],
// starting at the lexicographically first candidate.
func NewGenerator(charset []rune, minLen, maxLen int) (*Generator, error) {
	if len(charset) == 0 {
		return nil, ErrEmptyCharsetForGenerator
	}

	if minLen < 1 || minLen > maxLen {
		return nil, ErrInvalidLengthRange
	}

	total, err := Count(len(charset), minLen, maxLen)
	if err != nil {
		return nil, err
	}

	return &Generator{
		charset: charset,
		indexOf: buildIndexOf(charset),
		minLen:  minLen,
		maxLen:  maxLen,
		current: make([]int, minLen),
		total:   total,
	}, nil
}

// NewGeneratorFrom builds a generator that starts emitting at start
// (inclusive), as if every lexicographically smaller candidate had already
// been emitted. Fails if start contains a character outside charset or its
// length falls outside [minLen, maxLen].
func NewGeneratorFrom(charset []rune, minLen, maxLen int, start string) (*Generator, error) {
	g, err := NewGenerator(charset, minLen, maxLen)
	if err != nil {
		return nil, err
	}

	indices, skip, err := skipFor(charset, g.indexOf, minLen, maxLen, start)
	if err != nil {
		return nil, err
	}

	g.current = indices
	g.total -= skip

	return g, nil
}

// CountSkipped returns the 1-based ordinal position of start within the full
// lexicographic enumeration over charset starting at minLen — i.e. how many
// candidates (including start itself) have been accounted for once the
// generator's cursor reaches start. This is the quantity spec seed tests 3
// and 4 assert.
func CountSkipped(charset []rune, minLen, maxLen int, start string) (uint64, error) {
	_, skip, err := skipFor(charset, buildIndexOf(charset), minLen, maxLen, start)
	if err != nil {
		return 0, err
	}

	return skip + 1, nil
}

// skipFor computes the charset-index representation of start and the number
// of candidates strictly preceding it in the enumeration (the spec's `skip`).
func skipFor(charset []rune, indexOf map[rune]int, minLen, maxLen int, start string) ([]int, uint64, error) {
	startRunes := []rune(start)
	l := len(startRunes)

	if l < minLen || l > maxLen {
		return nil, 0, fmt.Errorf("%w: len=%d range=[%d,%d]", ErrStartLengthOutOfRange, l, minLen, maxLen)
	}

	indices := make([]int, l)

	for i, r := range startRunes {
		idx, ok := indexOf[r]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrStartNotInCharset, r)
		}

		indices[i] = idx
	}

	k := uint64(len(charset))

	var skip uint64

	for length := minLen; length < l; length++ {
		skip += pow(k, uint64(length))
	}

	for i, idx := range indices {
		skip += uint64(idx) * pow(k, uint64(l-1-i))
	}

	return indices, skip, nil
}

// Next returns the next candidate in lexicographic order, or ("", false)
// once the space described by [minLen, maxLen] is exhausted.
func (g *Generator) Next() (string, bool) {
	if !g.started {
		g.started = true
		g.generated = 1

		return g.currentString(), true
	}

	if g.generated == g.total {
		return "", false
	}

	g.advance()
	g.generated++

	return g.currentString(), true
}

// Count returns the total number of candidates this generator emits over its
// lifetime (for [NewGeneratorFrom], excluding the skipped prefix). It does not
// decrease as candidates are emitted; see [Generator.SizeHint] for that.
func (g *Generator) Count() (uint64, error) {
	return g.total, nil
}

// SizeHint returns (remaining, remaining): the generator always knows its
// exact remaining count.
func (g *Generator) SizeHint() (uint64, uint64) {
	remaining := g.total - g.generated
	if !g.started {
		remaining = g.total
	}

	return remaining, remaining
}

func (g *Generator) advance() {
	lastIdx := len(g.charset) - 1

	allLast := true

	for _, idx := range g.current {
		if idx != lastIdx {
			allLast = false
			break
		}
	}

	if allLast && len(g.current) < g.maxLen {
		g.current = make([]int, len(g.current)+1)
		return
	}

	for i := len(g.current) - 1; i >= 0; i-- {
		if g.current[i] != lastIdx {
			g.current[i]++

			for j := i + 1; j < len(g.current); j++ {
				g.current[j] = 0
			}

			return
		}
	}
}

func (g *Generator) currentString() string {
	runes := make([]rune, len(g.current))
	for i, idx := range g.current {
		runes[i] = g.charset[idx]
	}

	return string(runes)
}

func buildIndexOf(charset []rune) map[rune]int {
	m := make(map[rune]int, len(charset))
	for i, r := range charset {
		m[r] = i
	}

	return m
}

// Count computes total(minLen, maxLen, k) = Σ k^ℓ for ℓ in [minLen, maxLen].
func Count(k, minLen, maxLen int) (uint64, error) {
	if minLen < 1 || minLen > maxLen {
		return 0, ErrInvalidLengthRange
	}

	var total uint64

	kk := uint64(k)

	for length := minLen; length <= maxLen; length++ {
		total += pow(kk, uint64(length))
	}

	return total, nil
}

func pow(base, exp uint64) uint64 {
	result := uint64(1)

	for i := uint64(0); i < exp; i++ {
		result *= base
	}

	return result
}
