package kpi

import (
	"sort"

	"github.com/kpi_tracker/backend/internal/models"
)

const (
	TrendThreshold = 5.0
	// TrendWindow is how many prior months feed the moving average.
	TrendWindow = 3
)

func ClassifyTrend(current float64, previous []float64) models.Trend {
	if len(previous) == 0 {
		return models.TrendStable
	}
	var sum float64
	for _, s := range previous {
		sum += s
	}
	avg := sum / float64(len(previous))

	switch {
	case current > avg+TrendThreshold:
		return models.TrendImproving
	case current < avg-TrendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// PriorScores returns overall scores of history entries strictly before p,
// most recent first, at most limit of them.
func PriorScores(history []models.MonthlyKPI, p Period, limit int) []float64 {
	prior := make([]models.MonthlyKPI, 0, len(history))
	for _, k := range history {
		if (Period{Month: k.Month, Year: k.Year}).Before(p) {
			prior = append(prior, k)
		}
	}
	sort.SliceStable(prior, func(i, j int) bool {
		if prior[i].Year == prior[j].Year {
			return prior[i].Month > prior[j].Month
		}
		return prior[i].Year > prior[j].Year
	})
	if limit >= 0 && len(prior) > limit {
		prior = prior[:limit]
	}
	out := make([]float64, 0, len(prior))
	for _, k := range prior {
		out = append(out, k.OverallScore)
	}
	return out
}
