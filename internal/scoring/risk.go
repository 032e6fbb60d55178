package scoring

import "github.com/hyperjump/homefax/internal/models"

// Risk tag labels, in the order they are reported.
const (
	TagRoofAging          = "Roof aging"
	TagHVACAging          = "HVAC aging"
	TagPlumbingRisk       = "Plumbing risk"
	TagOlderElectrical    = "Older electrical standards"
	roofAgingThreshold    = 18
	hvacAgingThreshold    = 12
	plumbingRiskThreshold = 20
	electricalCodeYear    = 1980
)

// RiskTags returns the qualitative risk labels for home. Systems with an
// unknown age never produce a tag, nor does a missing build year.
// The result is never nil.
func (e *Engine) RiskTags(home *models.Home) []string {
	tags := make([]string, 0, 4)
	if age := e.Age(home, models.Roof); age.Known && age.Years > roofAgingThreshold {
		tags = append(tags, TagRoofAging)
	}
	if age := e.Age(home, models.HVAC); age.Known && age.Years > hvacAgingThreshold {
		tags = append(tags, TagHVACAging)
	}
	if age := e.Age(home, models.Plumbing); age.Known && age.Years > plumbingRiskThreshold {
		tags = append(tags, TagPlumbingRisk)
	}
	if home.YearBuilt > 0 && home.YearBuilt < electricalCodeYear {
		tags = append(tags, TagOlderElectrical)
	}
	return tags
}

// Score scores home and tags it in one pass.
func (e *Engine) Score(home models.Home, weights models.Weights) models.ScoredHome {
	return models.ScoredHome{
		Home:     home,
		Score:    e.HealthScore(&home, weights),
		RiskTags: e.RiskTags(&home),
	}
}
