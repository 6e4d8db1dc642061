package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/agourlay/zipcrack/internal/archive"
	"github.com/agourlay/zipcrack/internal/candidate"
)

// ErrInvalidWorkerCount guards against a misconfigured coordinator; the CLI
// layer is expected to reject this before ever reaching here, per spec §7's
// "configuration-time errors abort the run before any worker is spawned".
var ErrInvalidWorkerCount = errors.New("worker count must be positive")

// CoordinatorConfig describes one search run.
type CoordinatorConfig struct {
	ArchivePath    string
	EntryIndex     int
	Workers        int
	Classification archive.Classification

	// NewSource returns a fresh, independently-owned candidate source. It is
	// called once per worker — never shared between goroutines.
	NewSource func() (candidate.Source, error)

	Progress *Progress

	// Checkpoint, if set, is passed to every worker but only invoked by
	// worker 1; see [WorkerConfig.Checkpoint].
	Checkpoint func(lastPassword string) error

	// Stop lets a caller wire an external cancellation source (interrupt
	// signal, timeout) into the same flag workers poll. A fresh one is
	// created if nil.
	Stop *StopFlag
}

// Run spawns Workers goroutines against the classified entry, blocks until
// either one reports a match or all of them exhaust their shard, and returns
// the outcome. A non-nil error means at least one worker hit an unexpected
// container failure (spec §4.7 point 7); "password not found" is reported
// through Result.Found, never as an error.
func Run(cfg CoordinatorConfig) (Result, error) {
	if cfg.Workers < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidWorkerCount, cfg.Workers)
	}

	stop := cfg.Stop
	if stop == nil {
		stop = &StopFlag{}
	}

	result := make(chan string, 1)

	g := new(errgroup.Group)

	var (
		mu       sync.Mutex
		failures *multierror.Error
	)

	for i := 1; i <= cfg.Workers; i++ {
		idx := i

		g.Go(func() error {
			err := RunWorker(WorkerConfig{
				Index:          idx,
				N:              cfg.Workers,
				ArchivePath:    cfg.ArchivePath,
				EntryIndex:     cfg.EntryIndex,
				Classification: cfg.Classification,
				NewSource:      cfg.NewSource,
				Stop:           stop,
				Result:         result,
				Progress:       cfg.Progress,
				Checkpoint:     cfg.Checkpoint,
			})
			if err != nil {
				mu.Lock()
				failures = multierror.Append(failures, err)
				mu.Unlock()
			}

			return err
		})
	}

	// errgroup has no direct notion of a sender handle to drop; closing done
	// once every worker has returned is the Go-idiomatic equivalent of spec
	// §4.7 point 5's "receiver observes disconnection".
	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case password := <-result:
		stop.Set()
		<-done // join all workers before returning

		return Result{Password: password, Found: true}, nil
	case <-done:
		mu.Lock()
		defer mu.Unlock()

		return Result{}, failures.ErrorOrNil()
	}
}
