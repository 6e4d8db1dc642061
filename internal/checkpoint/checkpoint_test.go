package checkpoint_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agourlay/zipcrack/internal/checkpoint"
)

func TestStore_SaveThenLoad_RoundTrips(t *testing.T) {
	store := checkpoint.NewStore(t.TempDir())

	state := checkpoint.State{
		RunID:        "run123abc",
		ArchivePath:  "/tmp/secret.zip",
		EntryIndex:   0,
		Charset:      "abcdefghijklmnopqrstuvwxyz",
		MinLen:       1,
		MaxLen:       8,
		LastPassword: "fghk",
		SavedAt:      time.Unix(1000, 0).UTC(),
	}

	require.NoError(t, store.Save(state))

	loaded, err := store.Load(store.Path(state.RunID))
	require.NoError(t, err)
	require.Equal(t, state.RunID, loaded.RunID)
	require.Equal(t, state.LastPassword, loaded.LastPassword)
	require.Equal(t, state.Charset, loaded.Charset)
	require.Equal(t, state.MinLen, loaded.MinLen)
	require.Equal(t, state.MaxLen, loaded.MaxLen)
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := checkpoint.NewStore(t.TempDir())

	_, err := store.Load(store.Path("does-not-exist"))
	require.ErrorIs(t, err, checkpoint.ErrCheckpointRead)
}

func TestStore_Save_OverwritesPreviousCheckpointForSameRun(t *testing.T) {
	store := checkpoint.NewStore(t.TempDir())

	require.NoError(t, store.Save(checkpoint.State{RunID: "r1", LastPassword: "aaa"}))
	require.NoError(t, store.Save(checkpoint.State{RunID: "r1", LastPassword: "zzz"}))

	loaded, err := store.Load(store.Path("r1"))
	require.NoError(t, err)
	require.Equal(t, "zzz", loaded.LastPassword)
}
