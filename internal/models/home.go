// Package models defines core data structures for homes, weights, filter criteria, and results.
package models

// SystemKey identifies one of the five tracked home systems.
type SystemKey int

const (
	// Roof is the roof covering.
	Roof SystemKey = iota
	// HVAC is heating, ventilation and air conditioning.
	HVAC
	// Plumbing is supply and drain piping.
	Plumbing
	// Electrical is the panel and wiring.
	Electrical
	// WaterHeater is the tank or tankless water heater.
	WaterHeater
)

// NumSystems is the number of tracked systems.
const NumSystems = 5

// SystemKeys lists every SystemKey in canonical order.
var SystemKeys = [NumSystems]SystemKey{Roof, HVAC, Plumbing, Electrical, WaterHeater}

var systemWireKeys = [NumSystems]string{"roof", "hvac", "plumbing", "electrical", "waterHeater"}

var systemLabels = [NumSystems]string{"Roof", "HVAC", "Plumbing", "Electrical", "Water Heater"}

// String returns the wire key used in JSON and YAML (e.g. "waterHeater").
func (k SystemKey) String() string {
	if k < 0 || int(k) >= NumSystems {
		return "unknown"
	}
	return systemWireKeys[k]
}

// Label returns the human-readable system name (e.g. "Water Heater").
func (k SystemKey) Label() string {
	if k < 0 || int(k) >= NumSystems {
		return "Unknown"
	}
	return systemLabels[k]
}

// ParseSystemKey maps a wire key back to its SystemKey.
func ParseSystemKey(s string) (SystemKey, bool) {
	for i, key := range systemWireKeys {
		if key == s {
			return SystemKey(i), true
		}
	}
	return 0, false
}

// HomeSystem is one mechanical or structural subsystem of a home.
// A nil Year means the installation year is unknown.
type HomeSystem struct {
	Year *int   `json:"year,omitempty" yaml:"year,omitempty"`
	Type string `json:"type" yaml:"type"`
}

// Systems holds the per-system records of a home. Any entry may be absent.
type Systems struct {
	Roof        *HomeSystem `json:"roof,omitempty" yaml:"roof,omitempty"`
	HVAC        *HomeSystem `json:"hvac,omitempty" yaml:"hvac,omitempty"`
	Plumbing    *HomeSystem `json:"plumbing,omitempty" yaml:"plumbing,omitempty"`
	Electrical  *HomeSystem `json:"electrical,omitempty" yaml:"electrical,omitempty"`
	WaterHeater *HomeSystem `json:"waterHeater,omitempty" yaml:"waterHeater,omitempty"`
}

// Get returns the system record for k, or nil when absent.
// It is safe to call on a nil *Systems.
func (s *Systems) Get(k SystemKey) *HomeSystem {
	if s == nil {
		return nil
	}
	switch k {
	case Roof:
		return s.Roof
	case HVAC:
		return s.HVAC
	case Plumbing:
		return s.Plumbing
	case Electrical:
		return s.Electrical
	case WaterHeater:
		return s.WaterHeater
	default:
		return nil
	}
}

// Set stores sys as the record for k.
func (s *Systems) Set(k SystemKey, sys *HomeSystem) {
	switch k {
	case Roof:
		s.Roof = sys
	case HVAC:
		s.HVAC = sys
	case Plumbing:
		s.Plumbing = sys
	case Electrical:
		s.Electrical = sys
	case WaterHeater:
		s.WaterHeater = sys
	}
}

// Year returns the installation year for k, or nil when the system or its year is absent.
func (s *Systems) Year(k SystemKey) *int {
	sys := s.Get(k)
	if sys == nil {
		return nil
	}
	return sys.Year
}

// LastSold is the most recent sale of a home.
type LastSold struct {
	Date  string  `json:"date" yaml:"date"`
	Price float64 `json:"price" yaml:"price"`
}

// Permit is a building permit on file for a home.
type Permit struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Date       string `json:"date" yaml:"date"`
	Type       string `json:"type" yaml:"type"`
	Contractor string `json:"contractor,omitempty" yaml:"contractor,omitempty"`
}

// MaintenanceRecord is a maintenance visit recorded for a home.
type MaintenanceRecord struct {
	Date     string `json:"date" yaml:"date"`
	Item     string `json:"item" yaml:"item"`
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty"`
}

// Home is a single listing with its systems and history.
// Homes are immutable except for Notes.
type Home struct {
	ID          string              `json:"id" yaml:"id"`
	Address     string              `json:"address" yaml:"address"`
	YearBuilt   int                 `json:"yearBuilt" yaml:"yearBuilt"`
	SqFt        int                 `json:"sqFt" yaml:"sqFt"`
	Beds        int                 `json:"beds" yaml:"beds"`
	Baths       float64             `json:"baths" yaml:"baths"`
	LotSqFt     int                 `json:"lotSqFt" yaml:"lotSqFt"`
	LastSold    *LastSold           `json:"lastSold,omitempty" yaml:"lastSold,omitempty"`
	Systems     *Systems            `json:"systems,omitempty" yaml:"systems,omitempty"`
	Permits     []Permit            `json:"permits" yaml:"permits"`
	Maintenance []MaintenanceRecord `json:"maintenance" yaml:"maintenance"`
	Disclosures []string            `json:"disclosures" yaml:"disclosures"`
	Notes       string              `json:"notes" yaml:"notes"`
}

// IntPtr returns a pointer to v. Handy for building optional years.
func IntPtr(v int) *int {
	return &v
}
