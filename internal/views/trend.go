package views

import (
	"regexp"
	"strconv"
	"strings"

	"socdash/pkg/models"
)

var trendPattern = regexp.MustCompile(`^([+-]?)(\d+(?:\.\d+)?)%$`)

// ParseTrend extracts the signed magnitude of a "<sign><number>%" string.
// Strings of any other shape yield 0.
func ParseTrend(raw string) float64 {
	m := trendPattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return 0
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0
	}
	if m[1] == "-" {
		return -v
	}
	return v
}

// Direction says whether a change is good or bad news.
type Direction string

const (
	Positive Direction = "positive"
	Negative Direction = "negative"
)

// Polarity says which direction of change is good for a metric.
type Polarity int

const (
	LowerIsBetter Polarity = iota
	HigherIsBetter
)

// Trend metric names.
const (
	TrendAlerts         = "alerts"
	TrendCritical       = "critical_alerts"
	TrendInvestigations = "investigations"
	TrendResolved       = "resolved_incidents"
	TrendMTTD           = "mean_time_to_detect"
	TrendMTTR           = "mean_time_to_resolve"
)

// polarities is a business rule, not a numeric convention: fewer alerts is good,
// fewer resolved incidents is bad.
var polarities = map[string]Polarity{
	TrendAlerts:         LowerIsBetter,
	TrendCritical:       LowerIsBetter,
	TrendInvestigations: HigherIsBetter,
	TrendResolved:       HigherIsBetter,
	TrendMTTD:           LowerIsBetter,
	TrendMTTR:           LowerIsBetter,
}

// Trend is one parsed and classified metric change.
type Trend struct {
	Metric    string    `json:"metric"`
	Raw       string    `json:"raw"`
	Value     float64   `json:"value"`
	Direction Direction `json:"direction"`
}

// Classify tags a change of metric by value. A zero change counts as positive.
// Unknown metrics are treated as higher-is-better.
func Classify(metric string, value float64) Direction {
	polarity, ok := polarities[metric]
	if !ok {
		polarity = HigherIsBetter
	}
	switch polarity {
	case LowerIsBetter:
		if value <= 0 {
			return Positive
		}
	default:
		if value >= 0 {
			return Positive
		}
	}
	return Negative
}

// Trends parses and classifies every trend carried by m, in a fixed order.
func Trends(m models.Metrics) []Trend {
	raw := []struct {
		metric string
		value  string
	}{
		{TrendAlerts, m.AlertsTrend},
		{TrendCritical, m.CriticalTrend},
		{TrendInvestigations, m.InvestigationsTrend},
		{TrendResolved, m.ResolvedTrend},
		{TrendMTTD, m.MTTDTrend},
		{TrendMTTR, m.MTTRTrend},
	}

	out := make([]Trend, 0, len(raw))
	for _, r := range raw {
		v := ParseTrend(r.value)
		out = append(out, Trend{
			Metric:    r.metric,
			Raw:       r.value,
			Value:     v,
			Direction: Classify(r.metric, v),
		})
	}
	return out
}
