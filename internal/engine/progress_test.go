package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpinner_Summary_ReportsCandidatesTriedAndElapsed(t *testing.T) {
	progress := NewProgress(1000)
	progress.Add(250)

	spin := NewSpinner(progress, 0)

	summary := spin.Summary()
	require.Contains(t, summary, "tried 250 candidates in")
	require.Contains(t, summary, "/s)")
}

func TestSpinner_Elapsed_IsNonNegative(t *testing.T) {
	progress := NewProgress(0)
	spin := NewSpinner(progress, 0)

	require.GreaterOrEqual(t, spin.Elapsed().Nanoseconds(), int64(0))
}
