package keyword

import (
	"errors"
	"testing"
)

type mockTermDictionary struct {
	terms map[string]int
	err   error
}

func (m *mockTermDictionary) GetAllTerms() ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]string, 0, len(m.terms))
	for term := range m.terms {
		out = append(out, term)
	}
	return out, nil
}

func (m *mockTermDictionary) GetTermFrequency(term string) (int, error) {
	return m.terms[term], nil
}

func TestSpellChecker_Suggest(t *testing.T) {
	dict := &mockTermDictionary{terms: map[string]int{"maple": 5, "magnolia": 2, "mable": 1, "oak": 9}}
	sc := NewSpellChecker(dict)

	got, err := sc.Suggest("Mapel")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) == 0 || got[0].Term != "maple" {
		t.Fatalf("Suggest(Mapel) = %+v, want maple first", got)
	}
	for _, s := range got {
		if s.Distance > 2 {
			t.Errorf("suggestion %+v beyond max distance", s)
		}
		if s.Term == "oak" || s.Term == "magnolia" {
			t.Errorf("unexpected suggestion %+v", s)
		}
	}
}

func TestSpellChecker_SuggestTieBreaksOnFrequency(t *testing.T) {
	dict := &mockTermDictionary{terms: map[string]int{"pine": 1, "pins": 4}}
	sc := NewSpellChecker(dict, WithMaxDistance(1))

	got, err := sc.Suggest("pina")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 2 || got[0].Term != "pins" || got[1].Term != "pine" {
		t.Errorf("Suggest(pina) = %+v", got)
	}
}

func TestSpellChecker_SuggestMultibyte(t *testing.T) {
	// "ñandu" is 5 runes but 6 bytes; one insertion away from "andu".
	dict := &mockTermDictionary{terms: map[string]int{"ñandu": 2, "peñasco": 1}}
	sc := NewSpellChecker(dict, WithMaxDistance(1))

	tests := []struct {
		in   string
		want string
	}{
		{"andu", "ñandu"},
		{"pñasco", "peñasco"},
		{"penasco", "peñasco"},
	}
	for _, tt := range tests {
		got, err := sc.Suggest(tt.in)
		if err != nil {
			t.Fatalf("Suggest(%q): %v", tt.in, err)
		}
		if len(got) != 1 || got[0].Term != tt.want || got[0].Distance != 1 {
			t.Errorf("Suggest(%q) = %+v, want %s at distance 1", tt.in, got, tt.want)
		}
	}
}

func TestSpellChecker_Correct(t *testing.T) {
	dict := &mockTermDictionary{terms: map[string]int{"maple": 5, "ave": 20, "austin": 50}}
	sc := NewSpellChecker(dict)

	tests := []struct {
		query       string
		want        string
		wantChanged bool
	}{
		{"Mapel Ave", "maple ave", true},
		{"maple ave", "maple ave", false},
		{"zzzzzzzz", "zzzzzzzz", false},
		{"Austn", "austin", true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, changed, err := sc.Correct(tt.query)
			if err != nil {
				t.Fatalf("Correct: %v", err)
			}
			if got != tt.want || changed != tt.wantChanged {
				t.Errorf("Correct(%q) = %q, %v; want %q, %v", tt.query, got, changed, tt.want, tt.wantChanged)
			}
		})
	}
}

func TestSpellChecker_DictionaryError(t *testing.T) {
	sc := NewSpellChecker(&mockTermDictionary{err: errors.New("boom")})
	if _, _, err := sc.Correct("oak"); err == nil {
		t.Error("expected error from failing dictionary")
	}
}

func TestSpellChecker_WorksAgainstBleve(t *testing.T) {
	idx := newTestIndex(t)
	sc := NewSpellChecker(idx)
	got, changed, err := sc.Correct("Pyne")
	if err != nil {
		t.Fatalf("Correct: %v", err)
	}
	if !changed || got != "pine" {
		t.Errorf("Correct(Pyne) = %q, %v", got, changed)
	}
}
