// Package export renders homes as reports, tables and raw dumps.
package export

import (
	"math"
	"time"

	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
)

// Placeholders shown when a report section has nothing to list.
const (
	NoRisksPlaceholder       = "None significant detected"
	NoPermitsPlaceholder     = "None on file"
	NoMaintenancePlaceholder = "None recorded"
	EmptyPlaceholder         = "—"
)

// agingHorizon is the age, in years, at which an age bar is full.
const agingHorizon = 30

// unknownProportion is the bar width used when a system's age is unknown.
const unknownProportion = 50

// SystemBar is one per-system age bar.
type SystemBar struct {
	Label      string  `json:"label"`
	Year       *int    `json:"year"`
	Age        *int    `json:"age"`
	Proportion float64 `json:"proportion"`
}

// ReportEntry is one dated line of the permits or maintenance sections.
type ReportEntry struct {
	Date   string `json:"date"`
	Text   string `json:"text"`
	Detail string `json:"detail,omitempty"`
}

// Report is the structured single-home report.
type Report struct {
	GeneratedAt   time.Time     `json:"generated_at"`
	ID            string        `json:"id"`
	Address       string        `json:"address"`
	YearBuilt     int           `json:"year_built"`
	SqFt          int           `json:"sq_ft"`
	LotSqFt       int           `json:"lot_sq_ft"`
	Beds          int           `json:"beds"`
	Baths         float64       `json:"baths"`
	LastSoldDate  string        `json:"last_sold_date"`
	LastSoldPrice float64       `json:"last_sold_price"`
	Score         int           `json:"score"`
	RiskTags      []string      `json:"risk_tags"`
	Systems       []SystemBar   `json:"systems"`
	Permits       []ReportEntry `json:"permits"`
	Maintenance   []ReportEntry `json:"maintenance"`
	Disclosures   []string      `json:"disclosures"`
	Notes         string        `json:"notes"`
}

// BuildReport assembles the report for home. The score is computed by scorer
// with the same weights used for filtering, normalized here.
func BuildReport(scorer *scoring.Engine, home models.Home, weights models.Weights, generatedAt time.Time) Report {
	r := Report{
		GeneratedAt: generatedAt,
		ID:          home.ID,
		Address:     home.Address,
		YearBuilt:   home.YearBuilt,
		SqFt:        home.SqFt,
		LotSqFt:     home.LotSqFt,
		Beds:        home.Beds,
		Baths:       home.Baths,
		Score:       scorer.HealthScore(&home, weights.Normalize()),
		RiskTags:    scorer.RiskTags(&home),
		Notes:       home.Notes,
	}
	if home.LastSold != nil {
		r.LastSoldDate = home.LastSold.Date
		r.LastSoldPrice = home.LastSold.Price
	}
	if len(r.RiskTags) == 0 {
		r.RiskTags = []string{NoRisksPlaceholder}
	}

	r.Systems = make([]SystemBar, 0, models.NumSystems)
	for _, k := range models.SystemKeys {
		r.Systems = append(r.Systems, systemBar(scorer, &home, k))
	}

	r.Permits = make([]ReportEntry, 0, len(home.Permits))
	for _, p := range home.Permits {
		r.Permits = append(r.Permits, ReportEntry{Date: p.Date, Text: p.Type, Detail: p.Contractor})
	}
	if len(r.Permits) == 0 {
		r.Permits = append(r.Permits, ReportEntry{Date: EmptyPlaceholder, Text: NoPermitsPlaceholder})
	}

	r.Maintenance = make([]ReportEntry, 0, len(home.Maintenance))
	for _, m := range home.Maintenance {
		r.Maintenance = append(r.Maintenance, ReportEntry{Date: m.Date, Text: m.Item, Detail: m.Provider})
	}
	if len(r.Maintenance) == 0 {
		r.Maintenance = append(r.Maintenance, ReportEntry{Date: EmptyPlaceholder, Text: NoMaintenancePlaceholder})
	}

	r.Disclosures = append([]string(nil), home.Disclosures...)
	if len(r.Disclosures) == 0 {
		r.Disclosures = []string{EmptyPlaceholder}
	}
	return r
}

func systemBar(scorer *scoring.Engine, home *models.Home, k models.SystemKey) SystemBar {
	bar := SystemBar{Label: k.Label(), Proportion: unknownProportion}
	age := scorer.Age(home, k)
	if !age.Known {
		return bar
	}
	year := *home.Systems.Year(k)
	years := age.Years
	bar.Year = &year
	bar.Age = &years
	bar.Proportion = AgeProportion(years)
	return bar
}

// AgeProportion maps an age to a 0-100 bar width, full at agingHorizon years.
func AgeProportion(ageYears int) float64 {
	return math.Min(100, float64(ageYears)/agingHorizon*100)
}
