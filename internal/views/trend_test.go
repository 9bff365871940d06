package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socdash/pkg/models"
)

func TestParseTrend(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"-12.3%", -12.3},
		{"+8%", 8},
		{"5.5%", 5.5},
		{" -0.5% ", -0.5},
		{"0%", 0},
		{"", 0},
		{"12.3", 0},
		{"--4%", 0},
		{"up 4%", 0},
		{"4.%", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTrend(tt.raw))
		})
	}
}

func TestClassifyUsesPerMetricPolarity(t *testing.T) {
	assert.Equal(t, Positive, Classify(TrendAlerts, -12.3))
	assert.Equal(t, Negative, Classify(TrendAlerts, 4))
	assert.Equal(t, Positive, Classify(TrendCritical, -1))
	assert.Equal(t, Negative, Classify(TrendResolved, -3))
	assert.Equal(t, Positive, Classify(TrendResolved, 3))
	assert.Equal(t, Positive, Classify(TrendInvestigations, 10))
	assert.Equal(t, Positive, Classify(TrendMTTR, -2))
	assert.Equal(t, Negative, Classify(TrendMTTD, 2))
	assert.Equal(t, Positive, Classify(TrendAlerts, 0))
	assert.Equal(t, Positive, Classify(TrendResolved, 0))
}

func TestTrendsKeepsFixedOrderAndToleratesMalformed(t *testing.T) {
	trends := Trends(models.Metrics{
		AlertsTrend:   "-12.3%",
		ResolvedTrend: "-8%",
		MTTRTrend:     "garbage",
	})
	require.Len(t, trends, 6)

	assert.Equal(t, TrendAlerts, trends[0].Metric)
	assert.Equal(t, -12.3, trends[0].Value)
	assert.Equal(t, Positive, trends[0].Direction)

	assert.Equal(t, TrendResolved, trends[3].Metric)
	assert.Equal(t, Negative, trends[3].Direction)

	assert.Equal(t, TrendMTTR, trends[5].Metric)
	assert.Equal(t, 0.0, trends[5].Value)
	assert.Equal(t, "garbage", trends[5].Raw)
}
