package keyword

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
	"github.com/hyperjump/homefax/internal/models"
)

const addressField = "address"

// addressDoc is the indexed form of a home.
type addressDoc struct {
	ID      string `json:"id"`
	Address string `json:"address"`
}

// BleveIndex implements AddressIndex with an in-memory Bleve index.
type BleveIndex struct {
	mu        sync.RWMutex
	index     bleve.Index
	mapping   mapping.IndexMapping
	addresses map[string]string
}

// NewBleveIndex creates an empty in-memory address index.
func NewBleveIndex() (*BleveIndex, error) {
	im := newAddressMapping()
	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index, mapping: im, addresses: make(map[string]string)}, nil
}

func newAddressMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	// Standard analyzer lowercases and tokenizes without stemming, so
	// street names like "Oak" stay as "oak".
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt(addressField, textFieldMapping)
	docMapping.AddFieldMappingsAt("id", bleve.NewKeywordFieldMapping())
	im.AddDocumentMapping("home", docMapping)
	im.DefaultType = "home"
	im.DefaultMapping = docMapping
	return im
}

// Index rebuilds the index from homes in a single batch.
func (b *BleveIndex) Index(ctx context.Context, homes []models.Home) error {
	fresh, err := bleve.NewMemOnly(b.mapping)
	if err != nil {
		return fmt.Errorf("failed to create Bleve index: %w", err)
	}
	batch := fresh.NewBatch()
	addresses := make(map[string]string, len(homes))
	for i := range homes {
		if err := ctx.Err(); err != nil {
			_ = fresh.Close()
			return err
		}
		h := &homes[i]
		if err := batch.Index(h.ID, addressDoc{ID: h.ID, Address: h.Address}); err != nil {
			_ = fresh.Close()
			return fmt.Errorf("failed to index home %s: %w", h.ID, err)
		}
		addresses[h.ID] = h.Address
	}
	if err := fresh.Batch(batch); err != nil {
		_ = fresh.Close()
		return fmt.Errorf("failed to apply index batch: %w", err)
	}

	b.mu.Lock()
	old := b.index
	b.index = fresh
	b.addresses = addresses
	b.mu.Unlock()
	return old.Close()
}

// Suggest runs a fuzzy disjunction over the terms of text and returns hits by
// descending relevance.
func (b *BleveIndex) Suggest(ctx context.Context, text string, limit, fuzziness int) ([]models.Suggestion, error) {
	terms := tokenizeQuery(text)
	if len(terms) == 0 || limit <= 0 {
		return []models.Suggestion{}, nil
	}
	req := bleve.NewSearchRequest(buildFuzzyQuery(terms, fuzziness))
	req.Size = limit

	b.mu.RLock()
	defer b.mu.RUnlock()
	results, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]models.Suggestion, 0, len(results.Hits))
	for _, hit := range results.Hits {
		out = append(out, models.Suggestion{
			ID:      hit.ID,
			Address: b.addresses[hit.ID],
			Score:   hit.Score,
		})
	}
	return out, nil
}

// tokenizeQuery splits query into lowercase alphanumeric terms.
func tokenizeQuery(query string) []string {
	return strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// buildFuzzyQuery creates a disjunction of FuzzyQueries, one per term.
func buildFuzzyQuery(terms []string, fuzziness int) blevequery.Query {
	if len(terms) == 1 {
		fq := bleve.NewFuzzyQuery(terms[0])
		fq.SetFuzziness(fuzziness)
		fq.SetField(addressField)
		return fq
	}
	queries := make([]blevequery.Query, 0, len(terms))
	for _, term := range terms {
		fq := bleve.NewFuzzyQuery(term)
		fq.SetFuzziness(fuzziness)
		fq.SetField(addressField)
		queries = append(queries, fq)
	}
	return bleve.NewDisjunctionQuery(queries...)
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.index.Close()
}

// DocCount returns the number of indexed addresses.
func (b *BleveIndex) DocCount() (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.index.DocCount()
}

// GetAllTerms returns all unique address terms from the index dictionary.
func (b *BleveIndex) GetAllTerms() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	dict, err := b.index.FieldDict(addressField)
	if err != nil {
		return nil, fmt.Errorf("failed to open term dictionary: %w", err)
	}
	defer dict.Close()

	terms := make([]string, 0)
	for {
		entry, err := dict.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to read term dictionary: %w", err)
		}
		if entry == nil {
			break
		}
		terms = append(terms, entry.Term)
	}
	return terms, nil
}

// GetTermFrequency returns the number of addresses containing term.
func (b *BleveIndex) GetTermFrequency(term string) (int, error) {
	q := bleve.NewTermQuery(strings.ToLower(term))
	q.SetField(addressField)
	req := bleve.NewSearchRequest(q)
	req.Size = 0

	b.mu.RLock()
	defer b.mu.RUnlock()
	results, err := b.index.Search(req)
	if err != nil {
		return 0, fmt.Errorf("failed to search for term frequency: %w", err)
	}
	return int(results.Total), nil
}
