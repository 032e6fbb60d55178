package scoring

import (
	"time"

	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/pkg/utils"
)

// Engine derives scores and tags from homes relative to the current year.
type Engine struct {
	now func() time.Time
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithClock overrides the time source used to compute ages.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a scoring engine. The clock defaults to time.Now.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentYear returns the year ages are measured against.
func (e *Engine) CurrentYear() int {
	return e.now().Year()
}

// Age returns the age of system k of home.
func (e *Engine) Age(home *models.Home, k models.SystemKey) Age {
	return AgeYears(home.Systems.Year(k), e.CurrentYear())
}

// HealthScore returns the weighted 0-100 health score of home.
func (e *Engine) HealthScore(home *models.Home, weights models.Weights) int {
	return e.Breakdown(home, weights).Score
}

// Breakdown scores each system and combines them with weights.
// Unknown ages use NeutralScore; a zero weight sum divides by 1.
func (e *Engine) Breakdown(home *models.Home, weights models.Weights) Breakdown {
	year := e.CurrentYear()
	b := Breakdown{Systems: make([]SystemScore, 0, models.NumSystems)}
	for _, k := range models.SystemKeys {
		age := AgeYears(home.Systems.Year(k), year)
		sub := SubScoreFor(age)
		w := weights[k]
		line := SystemScore{
			Key:          k,
			System:       k.String(),
			SubScore:     sub.Resolve(),
			Known:        sub.Known,
			Weight:       w,
			Contribution: float64(sub.Resolve()) * w,
		}
		if age.Known {
			years := age.Years
			line.Age = &years
		}
		b.Systems = append(b.Systems, line)
		b.WeightedSum += line.Contribution
		b.WeightSum += w
	}
	denom := b.WeightSum
	if denom == 0 {
		denom = 1
	}
	b.Score = utils.RoundHalfUp(b.WeightedSum / denom)
	return b
}
