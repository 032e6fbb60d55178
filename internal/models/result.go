package models

// ScoredHome is a home together with the values derived for it during a query.
type ScoredHome struct {
	Home     Home     `json:"home"`
	Score    int      `json:"score"`
	RiskTags []string `json:"risk_tags"`
}

// Suggestion is a "did you mean" address hit from the address index.
type Suggestion struct {
	ID      string  `json:"id"`
	Address string  `json:"address"`
	Score   float64 `json:"score"`
}

// SearchResponse is the response for a filtered listing request.
type SearchResponse struct {
	Results   []ScoredHome   `json:"results"`
	Total     int            `json:"total"`
	Available int            `json:"available"`
	Criteria  FilterCriteria `json:"criteria"`
	Weights   Weights        `json:"weights"`
	QueryTime int64          `json:"query_time_ms"`
	// Suggestions is only populated when the search text matched no home.
	Suggestions []Suggestion `json:"suggestions,omitempty"`
	// CorrectedText is the search text with unknown terms spelled as indexed.
	CorrectedText string `json:"corrected_text,omitempty"`
}
