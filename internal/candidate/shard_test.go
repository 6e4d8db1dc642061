package candidate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sliceSource is a minimal in-memory [Source] used to test shard coverage
// without depending on Generator's own emission logic.
type sliceSource struct {
	values []string
	i      int
}

func (s *sliceSource) Next() (string, bool) {
	if s.i >= len(s.values) {
		return "", false
	}

	v := s.values[s.i]
	s.i++

	return v, true
}

func (s *sliceSource) Count() (uint64, error) {
	return uint64(len(s.values)), nil
}

func TestShard_ConcatenationReconstructsOriginal(t *testing.T) {
	values := make([]string, 37)
	for i := range values {
		values[i] = string(rune('a' + i%26))
	}

	for _, n := range []int{1, 2, 3, 5, 7, 37} {
		// shardOutputs[i] holds shard (i+1)'s full output, in its own order.
		shardOutputs := make([][]string, n)

		for idx := 1; idx <= n; idx++ {
			shard := NewShard(&sliceSource{values: values}, idx, n)

			for {
				v, ok := shard.Next()
				if !ok {
					break
				}

				shardOutputs[idx-1] = append(shardOutputs[idx-1], v)
			}
		}

		// Position j in the original sequence belongs to shard (j mod n)+1,
		// at local offset j/n within that shard's own output.
		reconstructed := make([]string, len(values))

		for j := range values {
			reconstructed[j] = shardOutputs[j%n][j/n]
		}

		require.Equal(t, values, reconstructed, "n=%d", n)
	}
}

func TestShard_Disjoint(t *testing.T) {
	values := make([]string, 20)
	for i := range values {
		values[i] = string(rune('a' + i))
	}

	n := 4
	seen := make(map[string]int)

	for idx := 1; idx <= n; idx++ {
		shard := NewShard(&sliceSource{values: values}, idx, n)

		for {
			v, ok := shard.Next()
			if !ok {
				break
			}

			seen[v]++
		}
	}

	for v, count := range seen {
		require.Equal(t, 1, count, "value %q seen more than once across shards", v)
	}
}

func TestShard_SingleWorkerPassesThroughUnchanged(t *testing.T) {
	values := []string{"a", "b", "c"}
	shard := NewShard(&sliceSource{values: values}, 1, 1)

	var got []string
	for {
		v, ok := shard.Next()
		if !ok {
			break
		}

		got = append(got, v)
	}

	require.Equal(t, values, got)
}
