package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kpi_tracker/backend/internal/models"
)

func TestDeliveryScore(t *testing.T) {
	tests := []struct {
		name    string
		metrics models.TicketMetrics
		want    float64
	}{
		{
			name:    "no completed tickets",
			metrics: models.TicketMetrics{},
			want:    100,
		},
		{
			name:    "no completed tickets ignores penalties",
			metrics: models.TicketMetrics{ReopenedTickets: 7, LateCriticalTickets: 3},
			want:    100,
		},
		{
			name:    "all on time",
			metrics: models.TicketMetrics{CompletedTickets: 10, OnTimeTickets: 10},
			want:    100,
		},
		{
			name:    "early bonus clamps at 100",
			metrics: models.TicketMetrics{CompletedTickets: 10, OnTimeTickets: 10, EarlyDeliveries: 2},
			want:    100,
		},
		{
			name: "late critical and two reopens",
			metrics: models.TicketMetrics{
				CompletedTickets: 10, OnTimeTickets: 8, LateTickets: 2,
				LateCriticalTickets: 1, ReopenedTickets: 2,
			},
			want: 60,
		},
		{
			name: "late critical and one reopen",
			metrics: models.TicketMetrics{
				CompletedTickets: 10, OnTimeTickets: 8, LateTickets: 2,
				LateCriticalTickets: 1, ReopenedTickets: 1,
			},
			want: 65,
		},
		{
			name: "early bonus below cap",
			metrics: models.TicketMetrics{
				CompletedTickets: 4, OnTimeTickets: 3, LateTickets: 1, EarlyDeliveries: 1,
			},
			want: 80,
		},
		{
			name:    "floor at zero",
			metrics: models.TicketMetrics{CompletedTickets: 2, LateTickets: 2, LateCriticalTickets: 2, ReopenedTickets: 5},
			want:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DeliveryScore(tt.metrics), 1e-9)
		})
	}
}

func TestQualityScore(t *testing.T) {
	cfg := models.DefaultScoringConfig()

	assert.Equal(t, 100.0, QualityScore(models.SeverityCounts{}, 0, cfg))

	counts := models.SeverityCounts{Critical: 1, High: 1, Medium: 2}
	assert.InDelta(t, 65.0, QualityScore(counts, 0, cfg), 1e-9)

	assert.InDelta(t, 91.0, QualityScore(models.SeverityCounts{}, 3, cfg), 1e-9)

	assert.InDelta(t, 96.0, QualityScore(models.SeverityCounts{Low: 2}, 0, cfg), 1e-9)

	assert.Equal(t, 0.0, QualityScore(models.SeverityCounts{Critical: 10}, 0, cfg))
}

func TestQualityScoreUsesConfiguredPenalties(t *testing.T) {
	cfg := models.DefaultScoringConfig()
	cfg.BugPenalties = models.BugPenalties{Critical: 20, High: 0, Medium: 1, Low: 0.5}

	got := QualityScore(models.SeverityCounts{Critical: 1, High: 4, Medium: 2, Low: 2}, 1, cfg)
	// 100 - 20 - 0 - 2 - 1 - 3
	assert.InDelta(t, 74.0, got, 1e-9)
}

func TestOverallScore(t *testing.T) {
	cfg := models.DefaultScoringConfig()
	assert.InDelta(t, 85.0, OverallScore(80, 90, cfg), 1e-9)

	for d := 0.0; d <= 100; d += 12.5 {
		for q := 0.0; q <= 100; q += 12.5 {
			assert.InDelta(t, (d+q)/2, OverallScore(d, q, cfg), 1e-9)
		}
	}

	cfg.DeliveryWeight, cfg.QualityWeight = 0.7, 0.3
	assert.InDelta(t, 73.0, OverallScore(70, 80, cfg), 1e-9)
}

func TestScoresStayInRange(t *testing.T) {
	cfg := models.DefaultScoringConfig()
	for completed := 0; completed <= 6; completed++ {
		for onTime := 0; onTime <= completed; onTime++ {
			for extra := 0; extra <= 4; extra++ {
				m := models.TicketMetrics{
					CompletedTickets:    completed,
					OnTimeTickets:       onTime,
					LateTickets:         completed - onTime,
					EarlyDeliveries:     extra,
					LateCriticalTickets: extra % 2,
					ReopenedTickets:     extra,
				}
				d := DeliveryScore(m)
				q := QualityScore(models.SeverityCounts{Critical: extra, Low: completed}, onTime, cfg)
				o := OverallScore(d, q, cfg)
				for _, s := range []float64{d, q, o} {
					assert.GreaterOrEqual(t, s, MinScore)
					assert.LessOrEqual(t, s, MaxScore)
				}
			}
		}
	}
}
