package stats

import (
	montana "github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(values []float64) float64 {
	m, err := montana.Mean(values)
	if err != nil {
		return 0
	}
	return m
}

// Median returns the median, 0 for an empty slice.
func Median(values []float64) float64 {
	m, err := montana.Median(values)
	if err != nil {
		return 0
	}
	return m
}

// Sum returns the sum of all values.
func Sum(values []float64) float64 {
	s, err := montana.Sum(values)
	if err != nil {
		return 0
	}
	return s
}
