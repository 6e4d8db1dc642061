package cli

import (
	"context"
	"fmt"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/agourlay/zipcrack/internal/archive"
	"github.com/agourlay/zipcrack/internal/candidate"
	"github.com/agourlay/zipcrack/internal/charset"
	"github.com/agourlay/zipcrack/internal/checkpoint"
	"github.com/agourlay/zipcrack/internal/config"
	"github.com/agourlay/zipcrack/internal/engine"
	"github.com/agourlay/zipcrack/internal/runid"
	"github.com/agourlay/zipcrack/internal/telemetry"
)

// SearchCmd returns the search command: the primary entry point that drives
// [engine.Run] against an archive with either a generated or dictionary
// candidate source.
func SearchCmd(cfg config.Config, log telemetry.Logger) *Command {
	flags := flag.NewFlagSet("search", flag.ContinueOnError)

	workers := flags.IntP("workers", "w", cfg.DefaultWorkers, "Number of parallel workers")
	dict := flags.StringP("dict", "d", "", "Dictionary file path (one candidate per line)")
	preset := flags.StringP("charset", "p", cfg.DefaultCharsetPreset, "Charset preset: a letter-code combining l,u,d,s,h,H, or one of basic,easy,medium,hard")
	charsetFile := flags.String("charset-file", "", "Charset file path (overrides --charset)")
	minLen := flags.Int("min-len", cfg.DefaultMinLen, "Minimum candidate length")
	maxLen := flags.Int("max-len", cfg.DefaultMaxLen, "Maximum candidate length")
	entryIndex := flags.IntP("entry-index", "e", 0, "Index of the archive entry to attack")
	start := flags.String("start", "", "Resume generation from this exact password (forbidden with --dict)")
	checkpointDir := flags.String("checkpoint-dir", cfg.CheckpointDir, "Directory to periodically persist generator progress to")
	resume := flags.String("resume", "", "Resume from a checkpoint file written by a previous run")
	interactive := flags.Bool("interactive", false, "Prompt for the archive path if not given as an argument")

	return &Command{
		Flags: flags,
		Usage: "search <archive>",
		Short: "Search for the password protecting an archive entry",
		Long:  "Classifies the target entry, then dispatches workers across a generated or dictionary candidate space until a match is found or the space is exhausted.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execSearch(ctx, o, log, searchParams{
				args:          args,
				workers:       *workers,
				dict:          *dict,
				preset:        *preset,
				charsetFile:   *charsetFile,
				minLen:        *minLen,
				maxLen:        *maxLen,
				entryIndex:    *entryIndex,
				start:         *start,
				checkpointDir: *checkpointDir,
				resume:        *resume,
				interactive:   *interactive,
			})
		},
	}
}

type searchParams struct {
	args          []string
	workers       int
	dict          string
	preset        string
	charsetFile   string
	minLen        int
	maxLen        int
	entryIndex    int
	start         string
	checkpointDir string
	resume        string
	interactive   bool
}

func execSearch(ctx context.Context, o *IO, log telemetry.Logger, p searchParams) error {
	if len(p.args) == 0 && p.resume == "" && p.interactive {
		path, start, err := promptForArchive(o)
		if err != nil {
			return err
		}

		p.args = []string{path}
		if start != "" {
			p.start = start
		}
	}

	if len(p.args) == 0 && p.resume == "" {
		return ErrMissingArchive
	}

	if p.start != "" && p.dict != "" {
		return ErrStartWithDictionary
	}

	if p.workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrWorkersNonPositive, p.workers)
	}

	if p.minLen > p.maxLen {
		return fmt.Errorf("%w: %d > %d", ErrMinGreaterThanMax, p.minLen, p.maxLen)
	}

	var store *checkpoint.Store
	if p.checkpointDir != "" {
		store = checkpoint.NewStore(p.checkpointDir)
	}

	archivePath := ""
	if len(p.args) > 0 {
		archivePath = p.args[0]
	}

	var charsetRunes []rune

	if p.resume != "" {
		if store == nil {
			store = checkpoint.NewStore(".")
		}

		state, err := store.Load(p.resume)
		if err != nil {
			return err
		}

		archivePath = state.ArchivePath
		p.entryIndex = state.EntryIndex
		p.minLen = state.MinLen
		p.maxLen = state.MaxLen
		p.start = state.LastPassword
		charsetRunes = []rune(state.Charset)

		log.Infow("resuming from checkpoint", "run_id", state.RunID, "last_password", state.LastPassword)
	} else if p.dict == "" {
		var err error

		if p.charsetFile != "" {
			charsetRunes, err = charset.FromFile(p.charsetFile)
		} else {
			charsetRunes, err = charset.Resolve(resolvePresetAlias(p.preset))
		}

		if err != nil {
			return err
		}
	}

	if archivePath == "" {
		return ErrMissingArchive
	}

	classification, err := archive.Classify(archivePath, p.entryIndex)
	if err != nil {
		return err
	}

	log.Infow("classified archive entry",
		"entry", classification.EntryName,
		"mode", classificationModeName(classification.Mode),
	)

	newSource, total, err := buildSource(p, charsetRunes)
	if err != nil {
		return err
	}

	progress := engine.NewProgress(total)
	spin := engine.NewSpinner(progress, 120*time.Millisecond)
	spin.Start()
	defer spin.Stop()

	stop := &engine.StopFlag{}

	go func() {
		<-ctx.Done()
		stop.Set()
	}()

	var checkpointFn func(string) error

	if store != nil && p.dict == "" {
		runID, runErr := runid.New()
		if runErr != nil {
			runID = runid.Must()
		}

		checkpointFn = func(lastPassword string) error {
			return store.Save(checkpoint.State{
				RunID:        runID,
				ArchivePath:  archivePath,
				EntryIndex:   p.entryIndex,
				Charset:      string(charsetRunes),
				MinLen:       p.minLen,
				MaxLen:       p.maxLen,
				LastPassword: lastPassword,
				SavedAt:      time.Now(),
			})
		}
	}

	result, err := engine.Run(engine.CoordinatorConfig{
		ArchivePath:    archivePath,
		EntryIndex:     p.entryIndex,
		Workers:        p.workers,
		Classification: classification,
		NewSource:      newSource,
		Progress:       progress,
		Checkpoint:     checkpointFn,
		Stop:           stop,
	})

	spin.Stop()

	summary := spin.Summary()

	if err != nil {
		return err
	}

	if result.Found {
		o.Println("password found:", result.Password)
	} else {
		o.Println("password not found")
	}

	o.Println(summary)

	return nil
}

func buildSource(p searchParams, charsetRunes []rune) (func() (candidate.Source, error), uint64, error) {
	if p.dict != "" {
		d, err := candidate.NewDictionary(p.dict)
		if err != nil {
			return nil, 0, err
		}

		total, err := d.Count()
		if err != nil {
			return nil, 0, err
		}

		_ = d.Close()

		return func() (candidate.Source, error) {
			return candidate.NewDictionary(p.dict)
		}, total, nil
	}

	total, err := candidate.Count(len(charsetRunes), p.minLen, p.maxLen)
	if err != nil {
		return nil, 0, err
	}

	if p.start == "" {
		return func() (candidate.Source, error) {
			return candidate.NewGenerator(charsetRunes, p.minLen, p.maxLen)
		}, total, nil
	}

	return func() (candidate.Source, error) {
		return candidate.NewGeneratorFrom(charsetRunes, p.minLen, p.maxLen, p.start)
	}, total, nil
}

// promptForArchive asks interactively for the archive path and, optionally,
// a starting password to resume generation from. Only used when --interactive
// is set and no archive was given as a positional argument.
func promptForArchive(o *IO) (string, string, error) {
	prompter := NewPrompter()
	defer func() { _ = prompter.Close() }()

	path, err := prompter.Prompt("archive path: ")
	if err != nil {
		return "", "", fmt.Errorf("%w: %w", ErrMissingArchive, err)
	}

	if path == "" {
		return "", "", ErrMissingArchive
	}

	start, err := prompter.Prompt("resume from password (leave blank to start fresh): ")
	if err != nil {
		return "", "", err
	}

	o.Println("starting search against", path)

	return path, start, nil
}

// presetAliases maps the named convenience presets to the letter-code string
// internal/charset.Resolve actually understands. Naming presets is out of
// scope for the charset resolver itself; this sugar lives entirely in the
// CLI layer, same as the original tool's named presets.
var presetAliases = map[string]string{
	"basic":  "l",
	"easy":   "ld",
	"medium": "lud",
	"hard":   "luds",
}

// resolvePresetAlias translates a named preset (basic/easy/medium/hard) to
// its letter-code equivalent. Any other input, including a raw letter-code
// string, passes through unchanged.
func resolvePresetAlias(preset string) string {
	if code, ok := presetAliases[preset]; ok {
		return code
	}

	return preset
}

func classificationModeName(mode archive.Mode) string {
	if mode == archive.ModeAES {
		return "aes"
	}

	return "zipcrypto"
}
