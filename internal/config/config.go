package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

// Limits bounds the numbered ADC input slots probed for each target.
type Limits struct {
	MaxPots    int `yaml:"max_pots"`
	MaxSliders int `yaml:"max_sliders"`
	MaxExts    int `yaml:"max_exts"`
}

type Config struct {
	LogLevel string `yaml:"log_level"`
	Format   string `yaml:"format"`
	Store    string `yaml:"store"`
	Limits   Limits `yaml:"limits"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Format:   string(hwdef.FormatJSON),
		Limits: Limits{
			MaxPots:    hwdef.DefaultMaxPots,
			MaxSliders: hwdef.DefaultMaxSliders,
			MaxExts:    hwdef.DefaultMaxExts,
		},
	}
}

// Load reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ResolveOptions converts the limits into resolver options.
func (cfg Config) ResolveOptions() hwdef.Options {
	return hwdef.Options{
		MaxPots:    cfg.Limits.MaxPots,
		MaxSliders: cfg.Limits.MaxSliders,
		MaxExts:    cfg.Limits.MaxExts,
	}
}

func (cfg *Config) validate() error {
	var problems []string

	limits := map[string]int{
		"limits.max_pots":    cfg.Limits.MaxPots,
		"limits.max_sliders": cfg.Limits.MaxSliders,
		"limits.max_exts":    cfg.Limits.MaxExts,
	}
	for _, name := range []string{"limits.max_pots", "limits.max_sliders", "limits.max_exts"} {
		if v := limits[name]; v < 1 || v > 99 {
			problems = append(problems, fmt.Sprintf("%s must be between 1 and 99, got %d", name, v))
		}
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("log_level %q is not one of debug, info, warn, error", cfg.LogLevel))
	}

	if _, err := hwdef.ParseFormat(cfg.Format); err != nil {
		problems = append(problems, "format: "+err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
