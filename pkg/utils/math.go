package utils

import "math"

// RoundHalfUp rounds x to the nearest integer, with halves rounded toward +Inf
// (61.5 -> 62, -0.5 -> 0).
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
