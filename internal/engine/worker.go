package engine

import (
	"fmt"

	"github.com/agourlay/zipcrack/internal/archive"
	"github.com/agourlay/zipcrack/internal/candidate"
	"github.com/agourlay/zipcrack/internal/pbkdf2key"
)

// pollBatch is the per-worker candidate count that, multiplied by worker
// count N, defines the batching interval for progress reporting and stop
// flag checks (spec §4.6 step 3: "every N*500 candidates").
const pollBatch = 500

// checkpointMultiplier sets the checkpoint cadence at N*5000 candidates, a
// supplemental feature beyond spec §4.6 that reuses the same worker-1-only
// batching technique at a coarser interval so writes stay rare.
const checkpointMultiplier = 10

// WorkerConfig bundles everything one worker needs. NewSource must return a
// fresh, independently-owned [candidate.Source] each time it's called — the
// coordinator calls it once per worker so that no two workers ever share
// mutable iterator state.
type WorkerConfig struct {
	Index          int // 1-based
	N              int
	ArchivePath    string
	EntryIndex     int
	Classification archive.Classification
	NewSource      func() (candidate.Source, error)
	Stop           *StopFlag
	Result         chan<- string
	Progress       *Progress

	// Checkpoint, if set, is invoked by worker 1 only, every N*5000
	// candidates, with the most recently tried password. It is best-effort:
	// the worker does not treat a non-nil return as fatal.
	Checkpoint func(lastPassword string) error
}

// RunWorker drives one shard of the candidate space against the archive
// entry until a password matches, the shard is exhausted, or the stop flag
// is observed. A non-nil return is always an unexpected container failure;
// "invalid password" never surfaces as an error.
func RunWorker(cfg WorkerConfig) error {
	src, err := cfg.NewSource()
	if err != nil {
		return fmt.Errorf("worker %d: new source: %w", cfg.Index, err)
	}

	shard := candidate.NewShard(src, cfg.Index, cfg.N)

	dec, err := archive.OpenDecryptor(cfg.ArchivePath, cfg.EntryIndex)
	if err != nil {
		return fmt.Errorf("worker %d: open archive: %w", cfg.Index, err)
	}
	defer dec.Close()

	buf := make([]byte, dec.UncompressedSize())

	batchSize := uint64(cfg.N) * pollBatch
	checkpointSize := batchSize * checkpointMultiplier

	var sinceCheck, sinceCheckpoint uint64

	for {
		password, ok := shard.Next()
		if !ok {
			return nil
		}

		if cfg.Classification.Mode == archive.ModeAES {
			if !pbkdf2key.Matches(password, cfg.Classification.Salt, cfg.Classification.KeyLen, cfg.Classification.Verification) {
				if shouldStop(cfg, &sinceCheck, &sinceCheckpoint, batchSize, checkpointSize, password) {
					return nil
				}

				continue
			}
		}

		matched, err := dec.TryPassword(password, buf)
		if err != nil {
			return fmt.Errorf("worker %d: %w", cfg.Index, err)
		}

		if matched {
			publish(cfg.Result, password)
			return nil
		}

		if shouldStop(cfg, &sinceCheck, &sinceCheckpoint, batchSize, checkpointSize, password) {
			return nil
		}
	}
}

// shouldStop increments the candidate tally and, once batchSize is reached,
// reports progress for all N workers (worker 1 only), writes a checkpoint on the coarser
// checkpointSize cadence, and checks the stop flag.
func shouldStop(cfg WorkerConfig, sinceCheck, sinceCheckpoint *uint64, batchSize, checkpointSize uint64, lastPassword string) bool {
	*sinceCheck++
	*sinceCheckpoint++

	if cfg.Index == 1 && cfg.Checkpoint != nil && *sinceCheckpoint >= checkpointSize {
		*sinceCheckpoint = 0
		_ = cfg.Checkpoint(lastPassword)
	}

	if *sinceCheck < batchSize {
		return false
	}

	*sinceCheck = 0

	// While worker 1 tried its own batchSize candidates, each of the N
	// workers tried about as many, so the global count grew by batchSize*N.
	if cfg.Index == 1 && cfg.Progress != nil {
		cfg.Progress.Add(batchSize * uint64(cfg.N))
	}

	return cfg.Stop.IsSet()
}

// publish attempts a non-blocking send. The result channel has capacity one,
// so at most one worker's send ever succeeds; every other worker either
// never reaches this point (stop flag already set) or loses the race here
// and simply continues draining.
func publish(result chan<- string, password string) {
	select {
	case result <- password:
	default:
	}
}
