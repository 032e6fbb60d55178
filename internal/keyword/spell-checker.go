package keyword

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// TermSuggestion is a dictionary term close to a misspelled search term.
type TermSuggestion struct {
	Term      string
	Distance  int
	Frequency int
}

// SpellChecker corrects search text against the indexed address terms.
type SpellChecker struct {
	dictionary  TermDictionary
	maxDistance int

	mu      sync.RWMutex
	termSet map[string]struct{}
	terms   []string
	valid   bool
}

// SpellCheckerOption configures a SpellChecker.
type SpellCheckerOption func(*SpellChecker)

// WithMaxDistance sets the maximum edit distance for corrections.
func WithMaxDistance(d int) SpellCheckerOption {
	return func(s *SpellChecker) {
		if d > 0 {
			s.maxDistance = d
		}
	}
}

// NewSpellChecker creates a SpellChecker backed by dict.
func NewSpellChecker(dict TermDictionary, opts ...SpellCheckerOption) *SpellChecker {
	s := &SpellChecker{dictionary: dict, maxDistance: 2}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh reloads the term cache. Call it after the index is rebuilt.
func (s *SpellChecker) Refresh() error {
	terms, err := s.dictionary.GetAllTerms()
	if err != nil {
		return fmt.Errorf("failed to load terms: %w", err)
	}
	set := make(map[string]struct{}, len(terms))
	for _, t := range terms {
		set[t] = struct{}{}
	}
	s.mu.Lock()
	s.terms = terms
	s.termSet = set
	s.valid = true
	s.mu.Unlock()
	return nil
}

func (s *SpellChecker) ensureCache() error {
	s.mu.RLock()
	valid := s.valid
	s.mu.RUnlock()
	if valid {
		return nil
	}
	return s.Refresh()
}

// Suggest returns dictionary terms within the maximum edit distance of term,
// closest first, then most frequent, then alphabetical.
func (s *SpellChecker) Suggest(term string) ([]TermSuggestion, error) {
	if err := s.ensureCache(); err != nil {
		return nil, err
	}
	term = strings.ToLower(term)

	s.mu.RLock()
	terms := s.terms
	s.mu.RUnlock()

	termLen := utf8.RuneCountInString(term)
	out := make([]TermSuggestion, 0)
	for _, candidate := range terms {
		if candidate == term {
			continue
		}
		// Distances count runes, so the length bound must too.
		diff := utf8.RuneCountInString(candidate) - termLen
		if diff < 0 {
			diff = -diff
		}
		if diff > s.maxDistance {
			continue
		}
		d := LevenshteinDistance(term, candidate)
		if d > s.maxDistance {
			continue
		}
		freq, err := s.dictionary.GetTermFrequency(candidate)
		if err != nil {
			return nil, err
		}
		out = append(out, TermSuggestion{Term: candidate, Distance: d, Frequency: freq})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Distance != out[j].Distance {
			return out[i].Distance < out[j].Distance
		}
		if out[i].Frequency != out[j].Frequency {
			return out[i].Frequency > out[j].Frequency
		}
		return out[i].Term < out[j].Term
	})
	return out, nil
}

// Correct replaces each unknown term of query with its best suggestion. The
// boolean reports whether anything changed.
func (s *SpellChecker) Correct(query string) (string, bool, error) {
	if err := s.ensureCache(); err != nil {
		return "", false, err
	}
	terms := tokenizeQuery(query)
	corrected := make([]string, 0, len(terms))
	changed := false
	for _, term := range terms {
		s.mu.RLock()
		_, known := s.termSet[term]
		s.mu.RUnlock()
		if known {
			corrected = append(corrected, term)
			continue
		}
		suggestions, err := s.Suggest(term)
		if err != nil {
			return "", false, err
		}
		if len(suggestions) == 0 {
			corrected = append(corrected, term)
			continue
		}
		corrected = append(corrected, suggestions[0].Term)
		changed = true
	}
	return strings.Join(corrected, " "), changed, nil
}
