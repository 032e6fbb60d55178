package scoring

import "testing"

func TestBandFor(t *testing.T) {
	tests := []struct {
		score int
		want  Band
	}{
		{100, BandGood},
		{85, BandGood},
		{84, BandFair},
		{70, BandFair},
		{69, BandPoor},
		{0, BandPoor},
	}
	for _, tt := range tests {
		if got := BandFor(tt.score); got != tt.want {
			t.Errorf("BandFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}
