package models

import "strings"

// DefaultYearMin is the lower build-year bound the demo starts with.
const DefaultYearMin = 1900

// FilterCriteria narrows a home collection. All fields are combined with AND.
// The zero value imposes no constraint.
type FilterCriteria struct {
	MinScore   int     `json:"min_score,omitempty"`
	MinBeds    int     `json:"min_beds,omitempty"`
	MinBaths   float64 `json:"min_baths,omitempty"`
	YearMin    *int    `json:"year_min,omitempty"`
	YearMax    *int    `json:"year_max,omitempty"`
	SearchText string  `json:"search_text,omitempty"`
}

// DefaultCriteria returns the initial criteria: any score, any size, built 1900..currentYear.
func DefaultCriteria(currentYear int) FilterCriteria {
	return FilterCriteria{
		YearMin: IntPtr(DefaultYearMin),
		YearMax: IntPtr(currentYear),
	}
}

// NormalizedSearchText returns the trimmed, lower-cased search text.
func (c FilterCriteria) NormalizedSearchText() string {
	return strings.ToLower(strings.TrimSpace(c.SearchText))
}

// HasSearchText reports whether a non-blank search text is set.
func (c FilterCriteria) HasSearchText() bool {
	return c.NormalizedSearchText() != ""
}
