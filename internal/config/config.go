// Package config loads zipcrack's defaults from a layered JSONC
// configuration, following the same global/project/explicit/CLI precedence
// chain the rest of the ambient tooling in this codebase uses.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/tailscale/hujson"
)

// Config holds defaults the CLI falls back to when a flag isn't given.
type Config struct {
	// From config files (serialized)
	DefaultWorkers       int    `json:"default_workers,omitempty"`
	DefaultCharsetPreset string `json:"default_charset_preset,omitempty"`
	DefaultMinLen        int    `json:"default_min_len,omitempty"`
	DefaultMaxLen        int    `json:"default_max_len,omitempty"`
	CheckpointDir        string `json:"checkpoint_dir,omitempty"`

	// Sources tracks which config files were loaded, for `print-config`
	// diagnostics.
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string
	Project string
}

// DefaultConfig returns zipcrack's built-in defaults, matching spec §6's CLI
// defaults (charset preset "lud", min length 1, max length 10).
func DefaultConfig() Config {
	return Config{
		DefaultWorkers:       runtime.NumCPU(),
		DefaultCharsetPreset: "lud",
		DefaultMinLen:        1,
		DefaultMaxLen:        10,
		CheckpointDir:        "",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".zipcrack.json"

func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "zipcrack", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "zipcrack", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath      string            // -c/--config flag value
	Env             map[string]string // environment variables

	WorkersOverride int    // --workers flag value; 0 means no override
	PresetOverride  string // --charset flag value; "" means no override
	MinLenOverride  int    // --min-len flag value; 0 means no override
	MaxLenOverride  int    // --max-len flag value; 0 means no override
}

// LoadConfig loads configuration with the following precedence (highest
// wins):
//  1. Built-in defaults
//  2. Global user config ($XDG_CONFIG_HOME/zipcrack/config.json or
//     ~/.config/zipcrack/config.json)
//  3. Project config: the explicit file at ConfigPath if non-empty (it must
//     exist), otherwise .zipcrack.json in the working directory if present.
//     An explicit file replaces .zipcrack.json; the two are not layered.
//  4. CLI flag overrides
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.WorkersOverride != 0 {
		cfg.DefaultWorkers = input.WorkersOverride
	}

	if input.PresetOverride != "" {
		cfg.DefaultCharsetPreset = input.PresetOverride
	}

	if input.MinLenOverride != 0 {
		cfg.DefaultMinLen = input.MinLenOverride
	}

	if input.MaxLenOverride != 0 {
		cfg.DefaultMaxLen = input.MaxLenOverride
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var cfgFile string

	var mustExist bool

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		if _, err := os.Stat(cfgFile); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	cfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, cfgFile, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.DefaultWorkers != 0 {
		base.DefaultWorkers = overlay.DefaultWorkers
	}

	if overlay.DefaultCharsetPreset != "" {
		base.DefaultCharsetPreset = overlay.DefaultCharsetPreset
	}

	if overlay.DefaultMinLen != 0 {
		base.DefaultMinLen = overlay.DefaultMinLen
	}

	if overlay.DefaultMaxLen != 0 {
		base.DefaultMaxLen = overlay.DefaultMaxLen
	}

	if overlay.CheckpointDir != "" {
		base.CheckpointDir = overlay.CheckpointDir
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.DefaultWorkers <= 0 {
		return ErrWorkersNonPositive
	}

	if cfg.DefaultMinLen > cfg.DefaultMaxLen {
		return ErrMinGreaterThanMax
	}

	return nil
}
