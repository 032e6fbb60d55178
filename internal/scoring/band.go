package scoring

// Band is a coarse rating of a health score, used for badges.
type Band string

const (
	BandGood Band = "good"
	BandFair Band = "fair"
	BandPoor Band = "poor"
)

// BandFor returns good at 85 and above, fair from 70, poor below.
func BandFor(score int) Band {
	switch {
	case score >= 85:
		return BandGood
	case score >= 70:
		return BandFair
	default:
		return BandPoor
	}
}
