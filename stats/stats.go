// Package stats aggregates numeric calculation results.
package stats

import (
	"slices"
	"time"

	"github.com/arloliu/abacus/history"
)

// Statistics summarizes the numeric results of a set of calculations.
// Every field is zero when there are no numeric results.
type Statistics struct {
	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Median  float64 `json:"median"`
}

// Calculate aggregates the numeric results in items; error entries are skipped.
func Calculate(items []history.Item) Statistics {
	values := make([]float64, 0, len(items))
	for _, item := range items {
		if item.Result.IsNumber() {
			values = append(values, item.Result.Float64())
		}
	}

	return FromValues(values)
}

// CalculateForPeriod aggregates items whose timestamp lies within [start, end].
func CalculateForPeriod(items []history.Item, start, end time.Time) Statistics {
	inPeriod := make([]history.Item, 0, len(items))
	for _, item := range items {
		if !item.Timestamp.Before(start) && !item.Timestamp.After(end) {
			inPeriod = append(inPeriod, item)
		}
	}

	return Calculate(inPeriod)
}

// FromValues aggregates raw values. The input slice is not modified.
func FromValues(values []float64) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}

	s := Statistics{
		Count: len(values),
		Min:   values[0],
		Max:   values[0],
	}
	for _, v := range values {
		s.Sum += v
		s.Min = min(s.Min, v)
		s.Max = max(s.Max, v)
	}
	s.Average = s.Sum / float64(s.Count)
	s.Median = median(values)

	return s
}

func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}

	return sorted[mid]
}
