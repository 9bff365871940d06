package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"socdash/pkg/models"
)

func TestRateKPIThresholds(t *testing.T) {
	assert.Equal(t, Excellent, RateKPI(KPIMeanTimeToResolve, 15))
	assert.Equal(t, Good, RateKPI(KPIMeanTimeToResolve, 15.1))
	assert.Equal(t, Good, RateKPI(KPIMeanTimeToResolve, 30))
	assert.Equal(t, NeedsImprovement, RateKPI(KPIMeanTimeToResolve, 31))

	assert.Equal(t, Excellent, RateKPI(KPIAlertResolutionRate, 90))
	assert.Equal(t, Good, RateKPI(KPIAlertResolutionRate, 75))
	assert.Equal(t, NeedsImprovement, RateKPI(KPIAlertResolutionRate, 74.9))

	assert.Equal(t, NeedsImprovement, RateKPI("unknown", 0))
}

func TestKPISummaryRollup(t *testing.T) {
	tests := []struct {
		name    string
		metrics models.Metrics
		calc    Calculated
		want    Rating
	}{
		{
			name:    "all excellent",
			metrics: models.Metrics{MeanTimeToResolve: 10, MeanTimeToDetect: 3, FalsePositiveRate: 2},
			calc:    Calculated{AlertResolutionRate: 95},
			want:    Excellent,
		},
		{
			name:    "two excellent two good ties to excellent",
			metrics: models.Metrics{MeanTimeToResolve: 10, MeanTimeToDetect: 3, FalsePositiveRate: 10},
			calc:    Calculated{AlertResolutionRate: 80},
			want:    Excellent,
		},
		{
			name:    "two excellent two needs-improvement ties to excellent",
			metrics: models.Metrics{MeanTimeToResolve: 10, MeanTimeToDetect: 3, FalsePositiveRate: 40},
			calc:    Calculated{AlertResolutionRate: 10},
			want:    Excellent,
		},
		{
			name:    "one excellent falls back to good",
			metrics: models.Metrics{MeanTimeToResolve: 10, MeanTimeToDetect: 10, FalsePositiveRate: 10},
			calc:    Calculated{AlertResolutionRate: 10},
			want:    Good,
		},
		{
			name:    "needs-improvement majority",
			metrics: models.Metrics{MeanTimeToResolve: 60, MeanTimeToDetect: 30, FalsePositiveRate: 2},
			calc:    Calculated{AlertResolutionRate: 10},
			want:    NeedsImprovement,
		},
		{
			name:    "needs-improvement tied with good is good",
			metrics: models.Metrics{MeanTimeToResolve: 60, MeanTimeToDetect: 30, FalsePositiveRate: 10},
			calc:    Calculated{AlertResolutionRate: 80},
			want:    Good,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := KPISummary(tt.metrics, tt.calc)
			assert.Len(t, s.Indicators, 4)
			assert.Equal(t, tt.want, s.Overall)
			total := 0
			for _, n := range s.Counts {
				total += n
			}
			assert.Equal(t, 4, total)
		})
	}
}
