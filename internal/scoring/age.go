package scoring

// AgeYears converts an installation year into an age relative to currentYear.
// A nil or zero year is unknown. Future years clamp to 0.
func AgeYears(year *int, currentYear int) Age {
	if year == nil || *year == 0 {
		return Unknown
	}
	age := currentYear - *year
	if age < 0 {
		age = 0
	}
	return KnownAge(age)
}
