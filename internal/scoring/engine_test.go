package scoring

import (
	"testing"
	"time"

	"github.com/hyperjump/homefax/internal/models"
)

const testYear = 2026

func fixedEngine() *Engine {
	return NewEngine(WithClock(func() time.Time {
		return time.Date(testYear, time.June, 1, 12, 0, 0, 0, time.UTC)
	}))
}

func sys(yearsAgo int) *models.HomeSystem {
	return &models.HomeSystem{Year: models.IntPtr(testYear - yearsAgo)}
}

func TestEngine_CurrentYear(t *testing.T) {
	if got := fixedEngine().CurrentYear(); got != testYear {
		t.Errorf("CurrentYear() = %d", got)
	}
	if got := NewEngine().CurrentYear(); got != time.Now().Year() {
		t.Errorf("default clock CurrentYear() = %d", got)
	}
}

func TestEngine_HealthScore_EndToEndExample(t *testing.T) {
	e := fixedEngine()
	home := models.Home{
		YearBuilt: 1975,
		Systems: &models.Systems{
			Roof:        sys(20),
			HVAC:        sys(5),
			Plumbing:    sys(25),
			Electrical:  sys(3),
			WaterHeater: sys(2),
		},
	}
	b := e.Breakdown(&home, models.DefaultWeights().Normalize())
	wantSubs := []int{35, 90, 35, 90, 100}
	for i, line := range b.Systems {
		if line.SubScore != wantSubs[i] {
			t.Errorf("%s sub-score = %d, want %d", line.System, line.SubScore, wantSubs[i])
		}
	}
	// 35*.25 + 90*.25 + 35*.2 + 90*.15 + 100*.15 = 8.75 + 22.5 + 7 + 13.5 + 15 = 66.75
	if b.Score != 67 {
		t.Errorf("Score = %d, want 67", b.Score)
	}
}

func TestEngine_HealthScore_RoundsHalfUp(t *testing.T) {
	e := fixedEngine()
	// Sub-scores 20 and 65 with equal weights average to 42.5.
	home := models.Home{Systems: &models.Systems{Roof: sys(30), HVAC: sys(10)}}
	w := models.Weights{models.Roof: 1, models.HVAC: 1}
	if got := e.HealthScore(&home, w); got != 43 {
		t.Errorf("HealthScore() = %d, want 43", got)
	}
	if got := e.HealthScore(&home, w.Normalize()); got != 43 {
		t.Errorf("HealthScore(normalized) = %d, want 43", got)
	}
}

func TestEngine_HealthScore_MissingData(t *testing.T) {
	e := fixedEngine()
	tests := []struct {
		name string
		home models.Home
		want int
	}{
		{"no systems at all", models.Home{}, NeutralScore},
		{"empty systems", models.Home{Systems: &models.Systems{}}, NeutralScore},
		{"system without year", models.Home{Systems: &models.Systems{Roof: &models.HomeSystem{Type: "Metal"}}}, NeutralScore},
		{
			"mixed known and unknown",
			models.Home{Systems: &models.Systems{Roof: sys(0), HVAC: sys(0)}},
			// 100*.25 + 100*.25 + 60*.5 = 80
			80,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.HealthScore(&tt.home, models.DefaultWeights().Normalize())
			if got != tt.want {
				t.Errorf("HealthScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestEngine_HealthScore_ZeroWeights(t *testing.T) {
	e := fixedEngine()
	home := models.Home{Systems: &models.Systems{Roof: sys(1)}}
	if got := e.HealthScore(&home, models.Weights{}); got != 0 {
		t.Errorf("HealthScore(zero weights) = %d, want 0", got)
	}
	if got := e.HealthScore(&home, models.Weights{}.Normalize()); got != 0 {
		t.Errorf("HealthScore(normalized zero weights) = %d, want 0", got)
	}
}

func TestEngine_HealthScore_SingleWeight(t *testing.T) {
	e := fixedEngine()
	home := models.Home{Systems: &models.Systems{Roof: sys(30), HVAC: sys(0)}}
	w := models.Weights{models.HVAC: 5}
	if got := e.HealthScore(&home, w.Normalize()); got != 100 {
		t.Errorf("HealthScore(hvac only) = %d, want 100", got)
	}
}

func TestEngine_Breakdown_Lines(t *testing.T) {
	e := fixedEngine()
	home := models.Home{Systems: &models.Systems{Roof: sys(10)}}
	b := e.Breakdown(&home, models.DefaultWeights())
	if len(b.Systems) != models.NumSystems {
		t.Fatalf("got %d lines", len(b.Systems))
	}
	roof := b.Systems[0]
	if roof.System != "roof" || roof.Age == nil || *roof.Age != 10 || !roof.Known || roof.SubScore != 65 {
		t.Errorf("roof line = %+v", roof)
	}
	hvac := b.Systems[1]
	if hvac.Known || hvac.Age != nil || hvac.SubScore != NeutralScore {
		t.Errorf("hvac line = %+v", hvac)
	}
}
