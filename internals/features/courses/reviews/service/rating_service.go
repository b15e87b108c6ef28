package service

import "math"

// AverageRating rounds the mean of the given ratings to one decimal place.
// Returns 0 for an empty slice.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := float64(sum) / float64(len(ratings))
	return math.Round(avg*10) / 10
}

// RoundRating rounds an already-computed average to one decimal place.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
