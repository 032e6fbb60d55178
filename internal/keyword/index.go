// Package keyword provides the fuzzy address index behind "did you mean" suggestions.
package keyword

import (
	"context"

	"github.com/hyperjump/homefax/internal/models"
)

// AddressIndex defines address suggestion operations.
type AddressIndex interface {
	// Index replaces the indexed addresses with those of homes.
	Index(ctx context.Context, homes []models.Home) error
	// Suggest returns up to limit homes whose address terms are within
	// fuzziness edits of the terms in text.
	Suggest(ctx context.Context, text string, limit, fuzziness int) ([]models.Suggestion, error)
	// DocCount returns the number of indexed addresses.
	DocCount() (uint64, error)
	Close() error
}

// TermDictionary provides access to the indexed address terms for spell checking.
type TermDictionary interface {
	// GetAllTerms returns all unique terms in the index.
	GetAllTerms() ([]string, error)
	// GetTermFrequency returns the number of addresses containing term.
	GetTermFrequency(term string) (int, error)
}
