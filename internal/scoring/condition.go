package scoring

// conditionStep maps an inclusive upper age bound to its score.
type conditionStep struct {
	maxAge int
	score  int
}

var conditionCurve = []conditionStep{
	{maxAge: 2, score: 100},
	{maxAge: 5, score: 90},
	{maxAge: 8, score: 80},
	{maxAge: 12, score: 65},
	{maxAge: 18, score: 50},
	{maxAge: 25, score: 35},
}

// agedOutScore applies to anything older than the last step.
const agedOutScore = 20

// ConditionScore maps a system age in years to a 0-100 score.
func ConditionScore(ageYears int) int {
	for _, step := range conditionCurve {
		if ageYears <= step.maxAge {
			return step.score
		}
	}
	return agedOutScore
}

// SubScoreFor scores an Age, keeping the unknown case explicit.
func SubScoreFor(age Age) SubScore {
	if !age.Known {
		return SubScore{}
	}
	return SubScore{Value: ConditionScore(age.Years), Known: true}
}
