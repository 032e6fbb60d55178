// Package fixture generates deterministic mock homes for demos and tests.
package fixture

import (
	"fmt"

	"github.com/hyperjump/homefax/internal/models"
)

// DefaultCount is the number of homes the demo starts with.
const DefaultCount = 50

// Streets are cycled through to build addresses.
var Streets = []string{
	"Maple", "Oak", "Pine", "Cedar", "Elm", "Willow", "Birch", "Walnut", "Chestnut", "Sycamore",
	"Laurel", "Holly", "Juniper", "Spruce", "Poplar", "Magnolia", "Ash", "Cypress", "Redbud", "Live Oak",
}

// BuildHomes returns n mock Austin homes, ids AUS-001 through AUS-n. System
// years never exceed currentYear. The same inputs always give the same homes.
func BuildHomes(n, currentYear int) []models.Home {
	homes := make([]models.Home, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		homes = append(homes, buildHome(i, currentYear))
	}
	return homes
}

func buildHome(i, currentYear int) models.Home {
	odd := i%2 == 1
	suffix := "Ave"
	if odd {
		suffix = "St"
	}
	address := fmt.Sprintf("%d %s %s, Austin, TX %d", 100+i*7, Streets[i%len(Streets)], suffix, 78701+i%60)

	yearBuilt := 1975 + i%45
	baths := 2.5
	if odd {
		baths = float64(2 + i%3)
	}

	roofYear := min(currentYear-i%3, yearBuilt+10+i%18)
	hvacYear := min(currentYear-i%2, yearBuilt+8+i%15)
	plumbingYear := min(currentYear-i%4, yearBuilt+5+i%28)
	electricalYear := min(currentYear-i%5, yearBuilt+3+i%22)
	waterHeaterYear := min(currentYear-i%2, yearBuilt+12+i%10)

	permits := make([]models.Permit, 0, 3)
	if i%2 == 0 {
		permits = append(permits, models.Permit{
			ID:         fmt.Sprintf("P-%d", 1000+i),
			Date:       date(roofYear, i%12+1, i%27+1),
			Type:       "Roof Replacement",
			Contractor: "ATX Roofing Co.",
		})
	}
	if i%3 == 0 {
		permits = append(permits, models.Permit{
			ID:         fmt.Sprintf("P-%d", 2000+i),
			Date:       date(hvacYear, (i+3)%12+1, (i+5)%27+1),
			Type:       "HVAC Replacement",
			Contractor: "Cool Breeze LLC",
		})
	}
	if i%5 == 0 {
		permits = append(permits, models.Permit{
			ID:         fmt.Sprintf("P-%d", 3000+i),
			Date:       date(electricalYear, (i+6)%12+1, (i+9)%27+1),
			Type:       "Electrical Panel Upgrade",
			Contractor: "SparkRight Electric",
		})
	}

	maintenance := []models.MaintenanceRecord{{
		Date:     date(2022-i%2, (i+2)%12+1, (i+4)%27+1),
		Item:     "HVAC tune-up",
		Provider: "Cool Breeze LLC",
	}}
	if i%4 == 0 {
		maintenance = append(maintenance, models.MaintenanceRecord{
			Date:     date(2023, (i+5)%12+1, (i+7)%27+1),
			Item:     "Gutter cleaning",
			Provider: "LeafAway",
		})
	}

	disclosures := make([]string, 0, 3)
	if yearBuilt < 1985 {
		disclosures = append(disclosures, "Older construction standards")
	}
	if i%7 == 0 {
		disclosures = append(disclosures, "Minor foundation shim (stable)")
	}
	if i%9 == 0 {
		disclosures = append(disclosures, "Previous roof leak repaired")
	}

	notes := "Backs to greenbelt; good drainage."
	if odd {
		notes = "Owner reports good energy efficiency."
	}

	return models.Home{
		ID:        fmt.Sprintf("AUS-%03d", i),
		Address:   address,
		YearBuilt: yearBuilt,
		SqFt:      1200 + (i*37)%2500,
		Beds:      2 + i%4,
		Baths:     baths,
		LotSqFt:   4000 + (i*97)%12000,
		LastSold: &models.LastSold{
			Date:  date(2016+i%8, 1+i%12, 1+i%27),
			Price: float64(350000 + (i*15000)%700000),
		},
		Systems: &models.Systems{
			Roof:        system(roofYear, pick(odd, "Architectural Shingle", "Metal")),
			HVAC:        system(hvacYear, pick(i%3 != 0, "Heat Pump", "Gas Furnace + AC")),
			Plumbing:    system(plumbingYear, pick(odd, "PEX", "Copper")),
			Electrical:  system(electricalYear, pick(odd, "200A Panel", "150A Panel")),
			WaterHeater: system(waterHeaterYear, pick(odd, "Tankless", "Tank")),
		},
		Permits:     permits,
		Maintenance: maintenance,
		Disclosures: disclosures,
		Notes:       notes,
	}
}

func date(year, month, day int) string {
	return fmt.Sprintf("%d-%02d-%02d", year, month, day)
}

func system(year int, typ string) *models.HomeSystem {
	return &models.HomeSystem{Year: models.IntPtr(year), Type: typ}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
