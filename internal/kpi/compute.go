package kpi

import (
	"time"

	"github.com/kpi_tracker/backend/internal/models"
)

// Input is everything one KPI computation needs. Tickets and Bugs may hold
// records of other developers or periods; they are filtered here.
type Input struct {
	DeveloperID string
	Period      Period
	Tickets     []models.Ticket
	Bugs        []models.Bug
	Config      models.ScoringConfig
	// PriorScores are overall scores strictly before Period, most recent
	// first. Only the first TrendWindow are used.
	PriorScores []float64
}

// ComputeMonthlyKPI is deterministic for a given input; only GeneratedAt
// depends on now. The returned KPI has no ID.
func ComputeMonthlyKPI(in Input, now time.Time) models.MonthlyKPI {
	tm := AggregateTickets(in.DeveloperID, in.Period, in.Tickets)
	bm := AggregateBugs(in.DeveloperID, in.Period, in.Bugs)

	delivery := DeliveryScore(tm)
	quality := QualityScore(bm.DevErrorBySeverity, bm.ConceptualBugs, in.Config)
	overall := OverallScore(delivery, quality, in.Config)

	prior := in.PriorScores
	if len(prior) > TrendWindow {
		prior = prior[:TrendWindow]
	}
	trend := ClassifyTrend(overall, prior)

	return models.MonthlyKPI{
		DeveloperID:     in.DeveloperID,
		Month:           in.Period.Month,
		Year:            in.Period.Year,
		TicketMetrics:   tm,
		BugMetrics:      bm,
		OnTimeRate:      OnTimeRate(tm),
		AvgDeliveryTime: AvgDeliveryTime(tm),
		DeliveryScore:   delivery,
		QualityScore:    quality,
		OverallScore:    overall,
		Trend:           &trend,
		GeneratedAt:     now.UTC(),
	}
}

// OnTimeRate is a percentage; 100 when nothing was completed.
func OnTimeRate(m models.TicketMetrics) float64 {
	if m.CompletedTickets == 0 {
		return 100
	}
	return float64(m.OnTimeTickets) / float64(m.CompletedTickets) * 100
}

// AvgDeliveryTime is in days; 0 when nothing was completed.
func AvgDeliveryTime(m models.TicketMetrics) float64 {
	if m.CompletedTickets == 0 {
		return 0
	}
	return m.TotalDeliveryDays / float64(m.CompletedTickets)
}
