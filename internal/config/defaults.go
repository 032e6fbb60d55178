package config

import (
	"github.com/hyperjump/homefax/internal/fixture"
	"github.com/hyperjump/homefax/internal/models"
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.CORSOrigins == nil {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Data.DatabasePath == "" {
		cfg.Data.DatabasePath = "/usr/local/var/homefax/data/homes.db"
	}
	if cfg.Data.GenerateCount == 0 {
		cfg.Data.GenerateCount = fixture.DefaultCount
	}
	// All-zero weights would score every home 0; fall back to the baseline.
	if cfg.Scoring.Weights.Sum() == 0 {
		cfg.Scoring.Weights = models.DefaultWeights()
	}
	if cfg.Search.SuggestLimit == 0 {
		cfg.Search.SuggestLimit = 5
	}
	if cfg.Search.YearMin == 0 {
		cfg.Search.YearMin = models.DefaultYearMin
	}
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "."
	}
}
