// Package search filters home collections and assembles listing responses.
package search

import (
	"context"
	"strings"
	"time"

	"github.com/hyperjump/homefax/internal/keyword"
	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
	"github.com/hyperjump/homefax/pkg/utils"
	"go.uber.org/zap"
)

const (
	defaultSuggestLimit = 5
	defaultFuzziness    = 2
)

// Engine filters homes by score, size, build year and address text.
type Engine struct {
	scorer       *scoring.Engine
	addressIndex keyword.AddressIndex
	speller      *keyword.SpellChecker
	suggestLimit int
	fuzziness    int
	logger       *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithAddressIndex enables "did you mean" suggestions for empty searches.
func WithAddressIndex(idx keyword.AddressIndex) EngineOption {
	return func(e *Engine) { e.addressIndex = idx }
}

// WithSpellChecker enables corrected search text for empty searches.
func WithSpellChecker(sc *keyword.SpellChecker) EngineOption {
	return func(e *Engine) { e.speller = sc }
}

// WithSuggestions sets how many suggestions are returned and their edit distance.
func WithSuggestions(limit, fuzziness int) EngineOption {
	return func(e *Engine) {
		if limit > 0 {
			e.suggestLimit = limit
		}
		if fuzziness >= 0 {
			e.fuzziness = fuzziness
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates a search engine that scores homes with scorer.
func NewEngine(scorer *scoring.Engine, opts ...EngineOption) *Engine {
	e := &Engine{
		scorer:       scorer,
		suggestLimit: defaultSuggestLimit,
		fuzziness:    defaultFuzziness,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = utils.LoggerOrNop(e.logger)
	return e
}

// Scorer returns the scoring engine used for filtering.
func (e *Engine) Scorer() *scoring.Engine {
	return e.scorer
}

// Filter returns the homes matching criteria in their original order.
func (e *Engine) Filter(homes []models.Home, criteria models.FilterCriteria, weights models.Weights) []models.Home {
	scored := e.FilterScored(homes, criteria, weights)
	out := make([]models.Home, len(scored))
	for i := range scored {
		out[i] = scored[i].Home
	}
	return out
}

// FilterScored is Filter, keeping the score and risk tags computed for each
// matching home. Weights are normalized once and each home is scored once.
func (e *Engine) FilterScored(homes []models.Home, criteria models.FilterCriteria, weights models.Weights) []models.ScoredHome {
	norm := weights.Normalize()
	text := criteria.NormalizedSearchText()
	out := make([]models.ScoredHome, 0, len(homes))
	for i := range homes {
		h := &homes[i]
		score := e.scorer.HealthScore(h, norm)
		if !matches(h, score, criteria, text) {
			continue
		}
		out = append(out, models.ScoredHome{
			Home:     *h,
			Score:    score,
			RiskTags: e.scorer.RiskTags(h),
		})
	}
	return out
}

// matches reports whether h passes every criterion. text is the normalized search text.
func matches(h *models.Home, score int, c models.FilterCriteria, text string) bool {
	if score < c.MinScore {
		return false
	}
	// A minimum of 0 is treated as no constraint.
	if c.MinBeds > 0 && h.Beds < c.MinBeds {
		return false
	}
	if c.MinBaths > 0 && h.Baths < c.MinBaths {
		return false
	}
	if c.YearMin != nil && h.YearBuilt < *c.YearMin {
		return false
	}
	if c.YearMax != nil && h.YearBuilt > *c.YearMax {
		return false
	}
	if text != "" && !strings.Contains(strings.ToLower(h.Address), text) {
		return false
	}
	return true
}

// Search filters homes and wraps the result in a SearchResponse. When a
// non-blank search text matches nothing, address suggestions are attached;
// they never change which homes are returned.
func (e *Engine) Search(ctx context.Context, homes []models.Home, criteria models.FilterCriteria, weights models.Weights) *models.SearchResponse {
	startTime := time.Now()
	results := e.FilterScored(homes, criteria, weights)
	response := &models.SearchResponse{
		Results:   results,
		Total:     len(results),
		Available: len(homes),
		Criteria:  criteria,
		Weights:   weights,
	}
	if len(results) == 0 && criteria.HasSearchText() {
		e.attachSuggestions(ctx, response, criteria.SearchText)
	}
	response.QueryTime = time.Since(startTime).Milliseconds()
	return response
}

// attachSuggestions fills the "did you mean" fields. Failures are logged and
// leave the response without suggestions.
func (e *Engine) attachSuggestions(ctx context.Context, response *models.SearchResponse, text string) {
	if e.addressIndex != nil {
		suggestions, err := e.addressIndex.Suggest(ctx, text, e.suggestLimit, e.fuzziness)
		if err != nil {
			e.logger.Warn("address suggestion failed", zap.String("text", text), zap.Error(err))
		} else if len(suggestions) > 0 {
			response.Suggestions = suggestions
		}
	}
	if e.speller != nil {
		corrected, changed, err := e.speller.Correct(text)
		if err != nil {
			e.logger.Warn("spell check failed", zap.String("text", text), zap.Error(err))
		} else if changed {
			response.CorrectedText = corrected
		}
	}
	if len(response.Suggestions) > 0 || response.CorrectedText != "" {
		e.logger.Debug("no homes matched, offering suggestions",
			zap.String("text", text),
			zap.Int("suggestions", len(response.Suggestions)),
			zap.String("corrected", response.CorrectedText))
	}
}
