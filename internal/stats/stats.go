// Package stats provides the descriptive statistics shared by the trend
// aggregator: mean, population standard deviation, coefficient of variation,
// and the variability banding applied to every COV shown to users.
package stats

import "gonum.org/v1/gonum/stat"

// Variability is the qualitative band for a COV value.
type Variability string

const (
	VariabilityLow      Variability = "Low"
	VariabilityModerate Variability = "Moderate"
	VariabilityHigh     Variability = "High"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// StdDev returns the sample standard deviation of xs.
// Sample (n-1) form: each season series is a sample of the station's
// long-run behavior, not the whole population of winters.
func StdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// COV returns the coefficient of variation of xs in percent.
// A single point has no meaningful variability and a zero mean would divide
// by zero; both cases return 0.
func COV(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := stat.Mean(xs, nil)
	if m == 0 {
		return 0
	}
	return stat.StdDev(xs, nil) / m * 100
}

// Classify maps a COV percentage to its variability band:
// below 15 is Low, 15 through 40 inclusive is Moderate, above 40 is High.
func Classify(cov float64) Variability {
	switch {
	case cov < 15:
		return VariabilityLow
	case cov <= 40:
		return VariabilityModerate
	default:
		return VariabilityHigh
	}
}
