package views

import "socdash/pkg/models"

// Rating buckets a performance indicator.
type Rating string

const (
	Excellent        Rating = "excellent"
	Good             Rating = "good"
	NeedsImprovement Rating = "needs-improvement"
)

// KPI names.
const (
	KPIMeanTimeToResolve   = "mean_time_to_resolve"
	KPIMeanTimeToDetect    = "mean_time_to_detect"
	KPIAlertResolutionRate = "alert_resolution_rate"
	KPIFalsePositiveRate   = "false_positive_rate"
)

type threshold struct {
	excellent      float64
	good           float64
	higherIsBetter bool
}

var thresholds = map[string]threshold{
	KPIMeanTimeToResolve:   {excellent: 15, good: 30},
	KPIMeanTimeToDetect:    {excellent: 5, good: 15},
	KPIAlertResolutionRate: {excellent: 90, good: 75, higherIsBetter: true},
	KPIFalsePositiveRate:   {excellent: 5, good: 15},
}

// Indicator is one rated KPI.
type Indicator struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Rating Rating  `json:"rating"`
}

// Summary is the rated KPI set and its rollup.
type Summary struct {
	Indicators []Indicator    `json:"indicators"`
	Counts     map[Rating]int `json:"counts"`
	Overall    Rating         `json:"overall"`
}

// RateKPI buckets value for the named KPI against its fixed thresholds.
func RateKPI(name string, value float64) Rating {
	th, ok := thresholds[name]
	if !ok {
		return NeedsImprovement
	}
	if th.higherIsBetter {
		switch {
		case value >= th.excellent:
			return Excellent
		case value >= th.good:
			return Good
		}
		return NeedsImprovement
	}
	switch {
	case value <= th.excellent:
		return Excellent
	case value <= th.good:
		return Good
	}
	return NeedsImprovement
}

// KPISummary rates each indicator and rolls up an overall status.
func KPISummary(m models.Metrics, c Calculated) Summary {
	values := []struct {
		name  string
		value float64
	}{
		{KPIMeanTimeToResolve, m.MeanTimeToResolve},
		{KPIMeanTimeToDetect, m.MeanTimeToDetect},
		{KPIAlertResolutionRate, c.AlertResolutionRate},
		{KPIFalsePositiveRate, m.FalsePositiveRate},
	}

	s := Summary{
		Indicators: make([]Indicator, 0, len(values)),
		Counts:     map[Rating]int{Excellent: 0, Good: 0, NeedsImprovement: 0},
	}
	for _, v := range values {
		r := RateKPI(v.name, v.value)
		s.Indicators = append(s.Indicators, Indicator{Name: v.name, Value: v.value, Rating: r})
		s.Counts[r]++
	}
	s.Overall = rollup(s.Counts)
	return s
}

// rollup picks the majority rating. Excellent wins ties once at least two
// indicators are excellent; needs-improvement must strictly outnumber the rest.
func rollup(counts map[Rating]int) Rating {
	ex, good, bad := counts[Excellent], counts[Good], counts[NeedsImprovement]
	if ex >= 2 && ex >= good && ex >= bad {
		return Excellent
	}
	if bad > good && bad > ex {
		return NeedsImprovement
	}
	return Good
}
