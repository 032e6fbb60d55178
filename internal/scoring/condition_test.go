package scoring

import "testing"

func TestConditionScore_Boundaries(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{0, 100},
		{2, 100},
		{3, 90},
		{5, 90},
		{6, 80},
		{8, 80},
		{9, 65},
		{12, 65},
		{13, 50},
		{18, 50},
		{19, 35},
		{25, 35},
		{26, 20},
		{80, 20},
	}
	for _, tt := range tests {
		if got := ConditionScore(tt.age); got != tt.want {
			t.Errorf("ConditionScore(%d) = %d, want %d", tt.age, got, tt.want)
		}
	}
}

func TestConditionScore_MonotonicNonIncreasing(t *testing.T) {
	prev := ConditionScore(0)
	for age := 1; age <= 120; age++ {
		got := ConditionScore(age)
		if got > prev {
			t.Fatalf("ConditionScore(%d) = %d rose above ConditionScore(%d) = %d", age, got, age-1, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("ConditionScore(%d) = %d out of range", age, got)
		}
		prev = got
	}
}

func TestSubScoreFor(t *testing.T) {
	if s := SubScoreFor(Unknown); s.Known || s.Resolve() != NeutralScore {
		t.Errorf("unknown age: %+v resolves to %d", s, s.Resolve())
	}
	if s := SubScoreFor(KnownAge(4)); !s.Known || s.Resolve() != 90 {
		t.Errorf("known age 4: %+v", s)
	}
}
