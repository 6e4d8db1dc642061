package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/agourlay/zipcrack/internal/config"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective default configuration and which files it was loaded from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			return execPrintConfig(o, cfg)
		},
	}
}

func execPrintConfig(o *IO, cfg config.Config) error {
	o.Println("default_workers=" + fmt.Sprint(cfg.DefaultWorkers))
	o.Println("default_charset_preset=" + cfg.DefaultCharsetPreset)
	o.Println("default_min_len=" + fmt.Sprint(cfg.DefaultMinLen))
	o.Println("default_max_len=" + fmt.Sprint(cfg.DefaultMaxLen))

	if cfg.CheckpointDir != "" {
		o.Println("checkpoint_dir=" + cfg.CheckpointDir)
	}

	o.Println("")
	o.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			o.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			o.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
