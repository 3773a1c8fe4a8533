package stats

import (
	"math"
	"time"
)

// Consistency is a coarse classification of how evenly spaced a reader's
// sessions are.
type Consistency string

const (
	ConsistencyExcellent Consistency = "EXCELLENT"
	ConsistencyGood      Consistency = "GOOD"
	ConsistencyIrregular Consistency = "IRREGULAR"
	ConsistencyPoor      Consistency = "POOR"
)

// consistencyBands are checked in order; the first band whose mean-gap and
// stddev ceilings both hold wins.
var consistencyBands = []struct {
	category Consistency
	maxMean  float64
	maxStd   float64
}{
	{ConsistencyExcellent, 1.5, 1.0},
	{ConsistencyGood, 2.5, 2.0},
	{ConsistencyIrregular, 4.0, 3.0},
}

// ClassifyConsistency buckets a set of distinct reading dates (any order)
// by the mean and population standard deviation of the day gaps between
// consecutive dates. Fewer than two distinct dates is POOR by definition:
// there is not enough data to call the spacing anything else.
func ClassifyConsistency(dates []time.Time) Consistency {
	if len(dates) < 2 {
		return ConsistencyPoor
	}

	days := sortedDays(dates)
	if len(days) < 2 {
		return ConsistencyPoor
	}

	gaps := make([]float64, 0, len(days)-1)
	for i := 1; i < len(days); i++ {
		gaps = append(gaps, days[i].Sub(days[i-1]).Hours()/24)
	}

	meanGap := mean(gaps)
	stddev := populationStdDev(gaps, meanGap)

	for _, band := range consistencyBands {
		if meanGap <= band.maxMean && stddev <= band.maxStd {
			return band.category
		}
	}
	return ConsistencyPoor
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64, mean float64) float64 {
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
