package kpi

import (
	"fmt"
	"time"

	"github.com/kpi_tracker/backend/internal/models"
)

// TeamDeveloperID marks a KPI that aggregates every active developer.
const TeamDeveloperID = "all"

// TeamSummary sums ticket and bug counts across members and averages their
// three scores. Rates are recomputed from the summed counts. The result has
// no trend.
func TeamSummary(p Period, members []models.MonthlyKPI, now time.Time) models.MonthlyKPI {
	out := models.MonthlyKPI{
		ID:          fmt.Sprintf("team-%d-%d", p.Year, p.Month),
		DeveloperID: TeamDeveloperID,
		Month:       p.Month,
		Year:        p.Year,
		GeneratedAt: now.UTC(),
	}

	var delivery, quality, overall float64
	for _, k := range members {
		out.TotalTickets += k.TotalTickets
		out.CompletedTickets += k.CompletedTickets
		out.OnTimeTickets += k.OnTimeTickets
		out.LateTickets += k.LateTickets
		out.EarlyDeliveries += k.EarlyDeliveries
		out.LateCriticalTickets += k.LateCriticalTickets
		out.ReopenedTickets += k.ReopenedTickets
		out.TotalDeliveryDays += k.TotalDeliveryDays

		out.TotalBugs += k.TotalBugs
		out.DeveloperErrorBugs += k.DeveloperErrorBugs
		out.ConceptualBugs += k.ConceptualBugs
		out.OtherBugs += k.OtherBugs
		out.DevErrorBySeverity.Critical += k.DevErrorBySeverity.Critical
		out.DevErrorBySeverity.High += k.DevErrorBySeverity.High
		out.DevErrorBySeverity.Medium += k.DevErrorBySeverity.Medium
		out.DevErrorBySeverity.Low += k.DevErrorBySeverity.Low

		delivery += k.DeliveryScore
		quality += k.QualityScore
		overall += k.OverallScore
	}

	out.OnTimeRate = OnTimeRate(out.TicketMetrics)
	out.AvgDeliveryTime = AvgDeliveryTime(out.TicketMetrics)
	if n := float64(len(members)); n > 0 {
		out.DeliveryScore = delivery / n
		out.QualityScore = quality / n
		out.OverallScore = overall / n
	}
	return out
}
