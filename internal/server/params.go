package server

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/hyperjump/homefax/internal/models"
)

// weightParams maps query parameters to the system they weight.
var weightParams = [models.NumSystems]string{
	models.Roof:        "w_roof",
	models.HVAC:        "w_hvac",
	models.Plumbing:    "w_plumbing",
	models.Electrical:  "w_electrical",
	models.WaterHeater: "w_water_heater",
}

// parseCriteria reads filter parameters. Absent year bounds fall back to
// yearMin and currentYear, the demo's initial slider positions.
func parseCriteria(q url.Values, yearMin, currentYear int) (models.FilterCriteria, error) {
	c := models.FilterCriteria{
		SearchText: q.Get("q"),
		YearMin:    models.IntPtr(yearMin),
		YearMax:    models.IntPtr(currentYear),
	}
	var err error
	if c.MinScore, err = intParam(q, "min_score", 0); err != nil {
		return c, err
	}
	if c.MinBeds, err = intParam(q, "min_beds", 0); err != nil {
		return c, err
	}
	if v := q.Get("min_baths"); v != "" {
		if c.MinBaths, err = strconv.ParseFloat(v, 64); err != nil {
			return c, fmt.Errorf("invalid min_baths %q", v)
		}
	}
	if v := q.Get("year_min"); v != "" {
		n, err := intParam(q, "year_min", 0)
		if err != nil {
			return c, err
		}
		c.YearMin = &n
	}
	if v := q.Get("year_max"); v != "" {
		n, err := intParam(q, "year_max", 0)
		if err != nil {
			return c, err
		}
		c.YearMax = &n
	}
	return c, nil
}

// parseWeights overrides defaults with any w_* parameters. Weights must be
// finite and non-negative.
func parseWeights(q url.Values, defaults models.Weights) (models.Weights, error) {
	w := defaults
	for _, k := range models.SystemKeys {
		name := weightParams[k]
		v := q.Get(name)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return w, fmt.Errorf("invalid %s %q", name, v)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return w, fmt.Errorf("%s must be a finite number", name)
		}
		if f < 0 {
			return w, fmt.Errorf("%s must not be negative", name)
		}
		w[k] = f
	}
	return w, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}
