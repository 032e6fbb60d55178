package main

import (
	"flag"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hyperjump/homefax/internal/config"
	"github.com/hyperjump/homefax/internal/models"
)

// filterFlags are the criteria flags shared by list and export.
type filterFlags struct {
	minScore *int
	minBeds  *int
	minBaths *float64
	yearMin  *int
	yearMax  *int
	weights  *string
}

func addFilterFlags(fs *flag.FlagSet) *filterFlags {
	return &filterFlags{
		minScore: fs.Int("min-score", 0, "minimum health score (0-100)"),
		minBeds:  fs.Int("min-beds", 0, "minimum bedrooms (0 = any)"),
		minBaths: fs.Float64("min-baths", 0, "minimum bathrooms (0 = any)"),
		yearMin:  fs.Int("year-min", 0, "earliest year built (default: search.year_min)"),
		yearMax:  fs.Int("year-max", 0, "latest year built (default: current year)"),
		weights:  fs.String("weights", "", "system weights, e.g. roof=0.4,hvac=0.2 (unset systems keep config values)"),
	}
}

// resolve turns the parsed flags into criteria and weights. Year bounds left
// at 0 fall back to the configured floor and currentYear.
func (f *filterFlags) resolve(cfg *config.Config, currentYear int, text string) (models.FilterCriteria, models.Weights, error) {
	criteria := models.FilterCriteria{
		MinScore:   *f.minScore,
		MinBeds:    *f.minBeds,
		MinBaths:   *f.minBaths,
		YearMin:    models.IntPtr(cfg.Search.YearMin),
		YearMax:    models.IntPtr(currentYear),
		SearchText: text,
	}
	if *f.yearMin != 0 {
		criteria.YearMin = models.IntPtr(*f.yearMin)
	}
	if *f.yearMax != 0 {
		criteria.YearMax = models.IntPtr(*f.yearMax)
	}
	weights, err := parseWeightsFlag(*f.weights, cfg.Scoring.Weights)
	return criteria, weights, err
}

// parseWeightsFlag overrides defaults with "system=value" pairs separated by
// commas. Keys are the wire keys (roof, hvac, plumbing, electrical, waterHeater).
func parseWeightsFlag(spec string, defaults models.Weights) (models.Weights, error) {
	w := defaults
	if strings.TrimSpace(spec) == "" {
		return w, nil
	}
	for _, pair := range strings.Split(spec, ",") {
		key, raw, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return w, fmt.Errorf("invalid weight %q: want system=value", pair)
		}
		k, known := models.ParseSystemKey(strings.TrimSpace(key))
		if !known {
			return w, fmt.Errorf("unknown system %q", key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return w, fmt.Errorf("invalid weight for %s: %q", key, raw)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return w, fmt.Errorf("weight for %s must be a finite number", key)
		}
		if v < 0 {
			return w, fmt.Errorf("weight for %s must not be negative", key)
		}
		w[k] = v
	}
	return w, nil
}
