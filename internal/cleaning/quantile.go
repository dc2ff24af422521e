package cleaning

import (
	"math"
	"sort"
)

// quantile returns the p-quantile (0 <= p <= 1) of vals using linear
// interpolation at rank p*(n-1). This matches the estimator the quartile and
// median stages are specified against; gonum's Quantile cumulant kinds compute
// different estimators, so the interpolation lives here.
func quantile(vals []float64, p float64) float64 {
	n := len(vals)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}
	rank := p * float64(n-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if lo+1 >= n {
		return sorted[lo]
	}
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

// median is the 0.5-quantile.
func median(vals []float64) float64 {
	return quantile(vals, 0.5)
}
