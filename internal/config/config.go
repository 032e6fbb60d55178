// Package config provides configuration loading and structs for the homefax server and CLI.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hyperjump/homefax/internal/models"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Scoring ScoringConfig `yaml:"scoring"`
	Search  SearchConfig  `yaml:"search"`
	Export  ExportConfig  `yaml:"export"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host        string   `yaml:"host" validate:"required"`
	Port        int      `yaml:"port" validate:"min=1,max=65535"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// DataConfig says where homes come from.
// HomesPath may be a .json, .yaml/.yml or .db/.sqlite file. When it is empty
// or missing, GenerateCount demo homes are built instead.
type DataConfig struct {
	HomesPath     string `yaml:"homes_path"`
	DatabasePath  string `yaml:"database_path"`
	GenerateCount int    `yaml:"generate_count" validate:"min=0"`
	Watch         *bool  `yaml:"watch"`
}

// WatchOrDefault returns whether to reload HomesPath on change; defaults to true when unset.
func (d *DataConfig) WatchOrDefault() bool {
	if d.Watch != nil {
		return *d.Watch
	}
	return true
}

// ScoringConfig holds the default system weights.
type ScoringConfig struct {
	Weights models.Weights `yaml:"weights" validate:"dive,gte=0"`
}

// SearchConfig holds filtering and suggestion settings.
type SearchConfig struct {
	SuggestLimit int  `yaml:"suggest_limit" validate:"min=0"`
	Fuzziness    *int `yaml:"fuzziness" validate:"omitempty,min=0,max=2"`
	YearMin      int  `yaml:"year_min" validate:"min=0"`
}

// FuzzinessOrDefault returns the configured edit distance, or 1 when unset.
func (s *SearchConfig) FuzzinessOrDefault() int {
	if s.Fuzziness != nil {
		return *s.Fuzziness
	}
	return 1
}

// ExportConfig holds file export settings.
type ExportConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Load reads and parses the config file at path, expands paths, applies defaults
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	if cfg.Data.HomesPath != "" {
		cfg.Data.HomesPath = expandPath(cfg.Data.HomesPath, configDir)
	}
	cfg.Data.DatabasePath = expandPath(cfg.Data.DatabasePath, configDir)
	cfg.Export.OutputDir = expandPath(cfg.Export.OutputDir, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that defaults cannot repair.
func (c *Config) Validate() error {
	for _, k := range models.SystemKeys {
		if w := c.Scoring.Weights[k]; math.IsNaN(w) || math.IsInf(w, 0) {
			return fmt.Errorf("invalid config: scoring.weights.%s must be a finite number", k)
		}
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
