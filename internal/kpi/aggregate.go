package kpi

import "github.com/kpi_tracker/backend/internal/models"

// deliveryDayUnit is added per completed ticket instead of the real elapsed
// days between assignment and completion.
const deliveryDayUnit = 1.0

// TicketIncluded reports whether t counts toward p: assigned in p, or
// completed in p. A ticket assigned in one month and completed in a later one
// is included in both.
func TicketIncluded(t models.Ticket, p Period) bool {
	if p.ContainsDate(t.AssignedDate) {
		return true
	}
	return t.Status == models.StatusCompleted && t.CompletedDate != nil && p.ContainsDate(*t.CompletedDate)
}

func AggregateTickets(developerID string, p Period, tickets []models.Ticket) models.TicketMetrics {
	var m models.TicketMetrics
	for _, t := range tickets {
		if t.DeveloperID != developerID || !TicketIncluded(t, p) {
			continue
		}
		m.TotalTickets++

		if t.Status == models.StatusCompleted && t.CompletedDate != nil {
			completed := *t.CompletedDate
			m.CompletedTickets++
			if completed <= t.DueDate {
				m.OnTimeTickets++
				if completed < t.DueDate {
					m.EarlyDeliveries++
				}
			} else {
				m.LateTickets++
				if t.Complexity == models.ComplexityCritical {
					m.LateCriticalTickets++
				}
			}
			m.TotalDeliveryDays += deliveryDayUnit
		}

		// Lifetime reopen flag, not scoped to the month.
		if t.ReopenCount > 0 {
			m.ReopenedTickets++
		}
	}
	return m
}

func AggregateBugs(developerID string, p Period, bugs []models.Bug) models.BugMetrics {
	var m models.BugMetrics
	for _, b := range bugs {
		if b.DeveloperID != developerID || !p.ContainsTime(b.CreatedAt) {
			continue
		}
		m.TotalBugs++

		switch b.Type {
		case models.BugDeveloperError:
			m.DeveloperErrorBugs++
			switch b.Severity {
			case models.SeverityCritical:
				m.DevErrorBySeverity.Critical++
			case models.SeverityHigh:
				m.DevErrorBySeverity.High++
			case models.SeverityMedium:
				m.DevErrorBySeverity.Medium++
			case models.SeverityLow:
				m.DevErrorBySeverity.Low++
			}
		case models.BugConceptual:
			m.ConceptualBugs++
		default:
			m.OtherBugs++
		}
	}
	return m
}
