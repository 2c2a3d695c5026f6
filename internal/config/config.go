// Package config loads the shared toolkit configuration.
//
// Precedence, lowest to highest: built-in defaults, the global user config
// ($XDG_CONFIG_HOME/aggutils/config.json or ~/.config/aggutils/config.json),
// the project config (.aggutils.json in the working directory), then
// per-command flags. Config files are HuJSON, so comments and trailing
// commas are fine.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Config holds the defaults shared by all tools. Individual commands expose
// the relevant subset as flags.
type Config struct {
	OutputTemplate    string `json:"output_template"`
	Exported          int    `json:"exported"`
	AddProbability    int    `json:"add_probability"`
	DeleteProbability int    `json:"delete_probability"`
	MutateProbability int    `json:"mutate_probability"`
	Salt              string `json:"salt,omitempty"`
	MetricsURL        string `json:"metrics_url,omitempty"`

	// Sources tracks which config files were loaded (diagnostics only).
	Sources Sources `json:"-"`
}

// Sources records the config files that contributed to a Config.
type Sources struct {
	Global  string
	Project string
}

// FileName is the project config file name.
const FileName = ".aggutils.json"

var (
	ErrRead             = errors.New("cannot read config file")
	ErrInvalid          = errors.New("invalid config file")
	ErrProbabilityRange = errors.New("probability must be between 0 and 100")
	ErrNegativeExported = errors.New("exported count cannot be negative")
	ErrBadTemplate      = errors.New("output_template must contain {}")
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputTemplate:    "out_{}.json",
		Exported:          10,
		AddProbability:    10,
		DeleteProbability: 10,
		MutateProbability: 20,
		MetricsURL:        "http://localhost:8080/api/v1/metrics",
	}
}

// Load merges defaults with the global and project config files.
func Load(workDir string, env map[string]string) (Config, error) {
	cfg := Default()

	if path := globalPath(env); path != "" {
		loaded, found, err := loadFile(path)
		if err != nil {
			return Config{}, err
		}

		if found {
			cfg = merge(cfg, loaded)
			cfg.Sources.Global = path
		}
	}

	projectPath := filepath.Join(workDir, FileName)

	loaded, found, err := loadFile(projectPath)
	if err != nil {
		return Config{}, err
	}

	if found {
		cfg = merge(cfg, loaded)
		cfg.Sources.Project = projectPath
	}

	validateErr := validate(cfg)
	if validateErr != nil {
		return Config{}, validateErr
	}

	return cfg, nil
}

// globalPath returns the global config location, or empty when no home
// directory can be determined.
func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "aggutils", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "aggutils", "config.json")
	}

	return ""
}

// fileConfig uses pointers so an explicit zero (e.g. a probability of 0) is
// distinguishable from an absent key.
type fileConfig struct {
	OutputTemplate    *string `json:"output_template"`
	Exported          *int    `json:"exported"`
	AddProbability    *int    `json:"add_probability"`
	DeleteProbability *int    `json:"delete_probability"`
	MutateProbability *int    `json:"mutate_probability"`
	Salt              *string `json:"salt"`
	MetricsURL        *string `json:"metrics_url"`
}

func loadFile(path string) (fileConfig, bool, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fileConfig{}, false, nil
	}

	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w: %s: %v", ErrRead, path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	var fc fileConfig

	err = json.Unmarshal(standardized, &fc)
	if err != nil {
		return fileConfig{}, false, fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}

	return fc, true, nil
}

func merge(cfg Config, fc fileConfig) Config {
	if fc.OutputTemplate != nil {
		cfg.OutputTemplate = *fc.OutputTemplate
	}

	if fc.Exported != nil {
		cfg.Exported = *fc.Exported
	}

	if fc.AddProbability != nil {
		cfg.AddProbability = *fc.AddProbability
	}

	if fc.DeleteProbability != nil {
		cfg.DeleteProbability = *fc.DeleteProbability
	}

	if fc.MutateProbability != nil {
		cfg.MutateProbability = *fc.MutateProbability
	}

	if fc.Salt != nil {
		cfg.Salt = *fc.Salt
	}

	if fc.MetricsURL != nil {
		cfg.MetricsURL = *fc.MetricsURL
	}

	return cfg
}

func validate(cfg Config) error {
	for _, p := range []struct {
		name  string
		value int
	}{
		{"add_probability", cfg.AddProbability},
		{"delete_probability", cfg.DeleteProbability},
		{"mutate_probability", cfg.MutateProbability},
	} {
		if p.value < 0 || p.value > 100 {
			return fmt.Errorf("%w: %s=%d", ErrProbabilityRange, p.name, p.value)
		}
	}

	if cfg.Exported < 0 {
		return fmt.Errorf("%w: exported=%d", ErrNegativeExported, cfg.Exported)
	}

	if !strings.Contains(cfg.OutputTemplate, "{}") {
		return fmt.Errorf("%w: %s", ErrBadTemplate, cfg.OutputTemplate)
	}

	return nil
}
