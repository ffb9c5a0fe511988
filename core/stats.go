package core

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// statisticalAnalysis performs descriptive statistics over the numbers
// extracted from the request. Variance and standard deviation are
// population figures. The correlation operation splits the single data
// list at the floor midpoint and correlates the halves against each
// other; it deliberately does not take two separate datasets.
func statisticalAnalysis(p Params) Result {
	if len(p.Data) == 0 {
		return messageResult("No data provided for statistical analysis")
	}
	data := p.Data

	switch p.Operation {
	case "mean":
		return scalarResult(stat.Mean(data, nil))

	case "median":
		return scalarResult(percentile(data, 0.5))

	case "variance":
		return scalarResult(popVariance(data))

	case "std":
		return scalarResult(math.Sqrt(popVariance(data)))

	case "correlation":
		if len(data) < 2 {
			return messageResult("Need at least two datasets for correlation")
		}
		mid := len(data) / 2
		first, second := data[:mid], data[mid:]
		if len(first) != len(second) {
			return messageResult("Error performing statistics calculation: correlation halves have unequal lengths")
		}
		return scalarResult(stat.Correlation(first, second, nil))

	default: // summary
		return statsResult([]statEntry{
			{"mean", stat.Mean(data, nil)},
			{"median", percentile(data, 0.5)},
			{"std", math.Sqrt(popVariance(data))},
			{"min", floats.Min(data)},
			{"max", floats.Max(data)},
			{"q1", percentile(data, 0.25)},
			{"q3", percentile(data, 0.75)},
		})
	}
}

func popVariance(data []float64) float64 {
	return stat.MomentAbout(2, data, stat.Mean(data, nil), nil)
}

// percentile computes the q-th quantile (q in [0,1]) with linear
// interpolation between order statistics at rank q*(n-1).
func percentile(data []float64, q float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := q * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
