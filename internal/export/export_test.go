package export

import (
	"time"

	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
)

const testYear = 2026

var generatedAt = time.Date(testYear, time.May, 4, 9, 30, 0, 0, time.UTC)

func testScorer() *scoring.Engine {
	return scoring.NewEngine(scoring.WithClock(func() time.Time { return generatedAt }))
}

func fullHome() models.Home {
	return models.Home{
		ID:        "AUS-007",
		Address:   `123 O'Brien, "Austin"`,
		YearBuilt: 1975,
		SqFt:      2459,
		Beds:      3,
		Baths:     2.5,
		LotSqFt:   12345,
		LastSold:  &models.LastSold{Date: "2019-04-12", Price: 455000},
		Systems: &models.Systems{
			Roof:        &models.HomeSystem{Year: models.IntPtr(testYear - 20), Type: "Metal"},
			HVAC:        &models.HomeSystem{Year: models.IntPtr(testYear - 5), Type: "Heat Pump"},
			Plumbing:    &models.HomeSystem{Year: models.IntPtr(testYear - 25), Type: "Copper"},
			Electrical:  &models.HomeSystem{Year: models.IntPtr(testYear - 3), Type: "200A Panel"},
			WaterHeater: &models.HomeSystem{Type: "Tank"},
		},
		Permits: []models.Permit{
			{ID: "P-1007", Date: "2020-05-10", Type: "Roof Replacement", Contractor: "ATX Roofing Co."},
		},
		Maintenance: []models.MaintenanceRecord{
			{Date: "2022-10-12", Item: "HVAC tune-up", Provider: "Cool Breeze LLC"},
		},
		Disclosures: []string{"Older construction standards"},
		Notes:       "Backs to greenbelt; <good> drainage.",
	}
}

func bareHome() models.Home {
	return models.Home{
		ID:          "AUS-008",
		Address:     "1 Elm St",
		YearBuilt:   2020,
		Permits:     []models.Permit{},
		Maintenance: []models.MaintenanceRecord{},
		Disclosures: []string{},
	}
}

func scored(h models.Home, score int) models.ScoredHome {
	return models.ScoredHome{Home: h, Score: score, RiskTags: []string{}}
}
