package dashstore

import (
	"math"
	"sort"
	"time"

	"github.com/sohipren/dashboard/types"
)

// MaintenanceSummary holds the cost metrics shown on the maintenance page
type MaintenanceSummary struct {
	Count  int     `json:"count" yaml:"count"`
	Total  float64 `json:"total" yaml:"total"`
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	Range  float64 `json:"range" yaml:"range"`
}

// CostByPart sums the cost of every record per part
func CostByPart(records []types.MaintenanceRecord) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range records {
		totals[r.Part] += r.Cost
	}
	return totals
}

// FrequencyByType counts records per maintenance type
func FrequencyByType(records []types.MaintenanceRecord) map[types.MaintenanceType]int {
	counts := make(map[types.MaintenanceType]int)
	for _, r := range records {
		counts[r.MaintenanceType]++
	}
	return counts
}

// MeanCostByType averages the cost per maintenance type.
// Types without records are absent from the result.
func MeanCostByType(records []types.MaintenanceRecord) map[types.MaintenanceType]float64 {
	sums := make(map[types.MaintenanceType]float64)
	counts := FrequencyByType(records)
	for _, r := range records {
		sums[r.MaintenanceType] += r.Cost
	}
	for t, n := range counts {
		sums[t] /= float64(n)
	}
	return sums
}

// Summarize computes the cost metrics of records. An empty input gives the
// zero summary.
func Summarize(records []types.MaintenanceRecord) MaintenanceSummary {
	if len(records) == 0 {
		return MaintenanceSummary{}
	}

	costs := make([]float64, len(records))
	s := MaintenanceSummary{
		Count: len(records),
		Min:   math.Inf(1),
		Max:   math.Inf(-1),
	}
	for i, r := range records {
		costs[i] = r.Cost
		s.Total += r.Cost
		s.Min = math.Min(s.Min, r.Cost)
		s.Max = math.Max(s.Max, r.Cost)
	}
	s.Mean = s.Total / float64(s.Count)
	s.Range = s.Max - s.Min

	sort.Float64s(costs)
	mid := len(costs) / 2
	if len(costs)%2 == 0 {
		s.Median = (costs[mid-1] + costs[mid]) / 2
	} else {
		s.Median = costs[mid]
	}
	return s
}

// IsChronological reports whether the record timestamps never go back in
// time. A record with an unparsable timestamp makes it false.
func IsChronological(records []types.MaintenanceRecord) bool {
	var prev time.Time
	for _, r := range records {
		t, err := r.Time()
		if err != nil || t.Before(prev) {
			return false
		}
		prev = t
	}
	return true
}
