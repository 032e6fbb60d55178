package search

import (
	"context"
	"testing"

	"github.com/hyperjump/homefax/internal/fixture"
	"github.com/hyperjump/homefax/internal/keyword"
	"github.com/hyperjump/homefax/internal/models"
	"github.com/hyperjump/homefax/internal/scoring"
)

func BenchmarkFilterScored(b *testing.B) {
	e := NewEngine(scoring.NewEngine())
	homes := fixture.BuildHomes(1000, e.Scorer().CurrentYear())
	criteria := models.FilterCriteria{MinScore: 60, MinBeds: 3, SearchText: "oak"}
	weights := models.DefaultWeights()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.FilterScored(homes, criteria, weights)
	}
}

func BenchmarkSearch_withSuggestions(b *testing.B) {
	scorer := scoring.NewEngine()
	homes := fixture.BuildHomes(1000, scorer.CurrentYear())
	idx, err := keyword.NewBleveIndex()
	if err != nil {
		b.Fatal(err)
	}
	defer idx.Close()
	ctx := context.Background()
	if err := idx.Index(ctx, homes); err != nil {
		b.Fatal(err)
	}
	e := NewEngine(scorer, WithAddressIndex(idx), WithSpellChecker(keyword.NewSpellChecker(idx)))
	criteria := models.FilterCriteria{SearchText: "mapel"}
	weights := models.DefaultWeights()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = e.Search(ctx, homes, criteria, weights)
	}
}
