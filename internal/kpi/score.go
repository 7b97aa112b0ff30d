package kpi

import "github.com/kpi_tracker/backend/internal/models"

const (
	MinScore = 0.0
	MaxScore = 100.0

	EarlyDeliveryBonus  = 5.0
	LateCriticalPenalty = 10.0
	ReopenPenalty       = 5.0
	// ConceptualBugPenalty is fixed and not part of ScoringConfig.
	ConceptualBugPenalty = 3.0
)

// DeliveryScore is the on-time percentage adjusted by early bonuses and
// late-critical/reopen penalties. No completed tickets scores 100.
func DeliveryScore(m models.TicketMetrics) float64 {
	if m.CompletedTickets == 0 {
		return MaxScore
	}
	base := float64(m.OnTimeTickets) / float64(m.CompletedTickets) * 100
	score := base +
		float64(m.EarlyDeliveries)*EarlyDeliveryBonus -
		float64(m.LateCriticalTickets)*LateCriticalPenalty -
		float64(m.ReopenedTickets)*ReopenPenalty
	return clampScore(score)
}

// QualityScore deducts configured penalties for developer_error bugs by
// severity and a fixed penalty per conceptual bug from 100.
func QualityScore(devErrors models.SeverityCounts, conceptualBugs int, cfg models.ScoringConfig) float64 {
	p := cfg.BugPenalties
	deduction := float64(devErrors.Critical)*p.Critical +
		float64(devErrors.High)*p.High +
		float64(devErrors.Medium)*p.Medium +
		float64(devErrors.Low)*p.Low +
		float64(conceptualBugs)*ConceptualBugPenalty
	return clampScore(MaxScore - deduction)
}

func OverallScore(delivery, quality float64, cfg models.ScoringConfig) float64 {
	return clampScore(delivery*cfg.DeliveryWeight + quality*cfg.QualityWeight)
}

func clampScore(v float64) float64 {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
