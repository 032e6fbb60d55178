// Package scoring computes system ages, condition sub-scores, weighted health scores, and risk tags.
package scoring

import "github.com/hyperjump/homefax/internal/models"

// NeutralScore is the sub-score used for a system whose age is unknown.
const NeutralScore = 60

// Age is a system age in whole years, or unknown.
type Age struct {
	Years int
	Known bool
}

// Unknown is the zero Age: no installation year on record.
var Unknown = Age{}

// KnownAge returns a known Age of the given years.
func KnownAge(years int) Age {
	return Age{Years: years, Known: true}
}

// SubScore is the 0-100 condition rating of one system.
// Known is false when it was derived from an unknown age.
type SubScore struct {
	Value int
	Known bool
}

// Resolve returns the score value, or NeutralScore when unknown.
func (s SubScore) Resolve() int {
	if !s.Known {
		return NeutralScore
	}
	return s.Value
}

// SystemScore is one line of a score breakdown.
type SystemScore struct {
	Key          models.SystemKey `json:"-"`
	System       string           `json:"system"`
	Age          *int             `json:"age,omitempty"`
	SubScore     int              `json:"sub_score"`
	Known        bool             `json:"known"`
	Weight       float64          `json:"weight"`
	Contribution float64          `json:"contribution"`
}

// Breakdown provides detailed scoring information for one home.
type Breakdown struct {
	Systems     []SystemScore `json:"systems"`
	WeightSum   float64       `json:"weight_sum"`
	WeightedSum float64       `json:"weighted_sum"`
	Score       int           `json:"score"`
}
