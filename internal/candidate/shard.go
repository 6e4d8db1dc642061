package candidate

// Shard partitions a [Source] across N workers by position modulus: worker i
// (1-based) sees S[j] iff j mod N == i-1. With N == 1 the sequence passes
// through unchanged. Shards are disjoint and their concatenation in original
// order reconstructs the underlying sequence exactly.
type Shard struct {
	src   Source
	n     int
	index int // 0-based
	pos   uint64
}

// NewShard wraps src so that Next only returns every n-th candidate starting
// at the (1-based) index-th position.
func NewShard(src Source, index, n int) *Shard {
	return &Shard{src: src, n: n, index: index - 1}
}

// Next returns this shard's next candidate, advancing the underlying source
// past any candidates belonging to other shards.
func (s *Shard) Next() (string, bool) {
	for {
		v, ok := s.src.Next()
		if !ok {
			return "", false
		}

		mine := int(s.pos%uint64(s.n)) == s.index
		s.pos++

		if mine {
			return v, true
		}
	}
}

// Count delegates to the underlying source's total candidate count (the
// global total, not this shard's share of it — used for overall progress).
func (s *Shard) Count() (uint64, error) {
	return s.src.Count()
}

var _ Source = (*Shard)(nil)
