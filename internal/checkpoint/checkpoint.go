// Package checkpoint persists and restores the generator strategy's search
// position, a supplemental feature beyond spec.md's explicit restart-from-
// password mechanism: it lets a long-running search survive a process
// restart by writing {last candidate, charset, length range, entry index} to
// disk every N*5000 candidates (see [github.com/agourlay/zipcrack/internal/engine]'s
// worker checkpoint cadence).
//
// Dictionary strategies have no meaningful restart semantics (an open
// question spec.md leaves unresolved) and are never checkpointed.
package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/agourlay/zipcrack/internal/fs"
)

// ErrCheckpointWrite and ErrCheckpointRead wrap I/O and decode failures.
// Write failures are ignored by the worker that saves checkpoints, so they
// never stop a search; a read failure aborts a `--resume` run before it starts.
var (
	ErrCheckpointWrite = errors.New("checkpoint write failed")
	ErrCheckpointRead  = errors.New("checkpoint read failed")
)

// State is what gets persisted: enough to reconstruct a
// [github.com/agourlay/zipcrack/internal/candidate.NewGeneratorFrom] call
// that resumes at the last password tried by worker 1 (that password is
// tried again, since the restart point is inclusive).
type State struct {
	RunID        string    `json:"run_id"`
	ArchivePath  string    `json:"archive_path"`
	EntryIndex   int       `json:"entry_index"`
	Charset      string    `json:"charset"`
	MinLen       int       `json:"min_len"`
	MaxLen       int       `json:"max_len"`
	LastPassword string    `json:"last_password"`
	SavedAt      time.Time `json:"saved_at"`
}

// Store writes and reads checkpoint files under a directory, guarding writes
// with a per-run flock so two runs sharing a checkpoint directory never tear
// each other's file.
type Store struct {
	fsys   fs.FS
	locker *fs.Locker
	dir    string
}

// NewStore returns a Store rooted at dir, which is created lazily on first
// Save.
func NewStore(dir string) *Store {
	real := fs.NewReal()
	return &Store{fsys: real, locker: fs.NewLocker(real), dir: dir}
}

// Path returns the checkpoint file path for a given run ID.
func (s *Store) Path(runID string) string {
	return filepath.Join(s.dir, fmt.Sprintf("zipcrack-%s.checkpoint.json", runID))
}

func (s *Store) lockPath(runID string) string {
	return s.Path(runID) + ".lock"
}

// Save atomically persists state, holding an exclusive lock on a per-run
// lock file for the duration of the write.
func (s *Store) Save(state State) error {
	if err := s.fsys.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}

	lock, err := s.locker.Lock(s.lockPath(state.RunID))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}
	defer lock.Close()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}

	if err := s.fsys.WriteFileAtomic(s.Path(state.RunID), data, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckpointWrite, err)
	}

	return nil
}

// Load reads and decodes a checkpoint file from an explicit path, as passed
// to a `--resume <checkpoint>` invocation.
func (s *Store) Load(path string) (State, error) {
	data, err := s.fsys.ReadFile(path)
	if err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrCheckpointRead, err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrCheckpointRead, err)
	}

	return state, nil
}
