package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
)

const teamLabel = "All Developers (Team)"

// WriteKPICSV renders k as a titled preamble followed by Metric,Value rows.
func WriteKPICSV(w io.Writer, k models.MonthlyKPI) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)

	developer := k.DeveloperID
	if developer == kpi.TeamDeveloperID {
		developer = teamLabel
	}
	period := kpi.Period{Month: k.Month, Year: k.Year}
	// Preamble lines are records too, so a developer id cannot split a line.
	preamble := [][]string{
		{"KPI Report"},
		{"Period: " + period.Label()},
		{"Developer: " + developer},
		{"Generated: " + k.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	if err := cw.WriteAll(preamble); err != nil {
		return err
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Tickets", strconv.Itoa(k.TotalTickets)},
		{"Completed Tickets", strconv.Itoa(k.CompletedTickets)},
		{"On-Time Tickets", strconv.Itoa(k.OnTimeTickets)},
		{"Late Tickets", strconv.Itoa(k.LateTickets)},
		{"Reopened Tickets", strconv.Itoa(k.ReopenedTickets)},
		{"On-Time Rate", percent(k.OnTimeRate)},
		{"Avg Delivery Time", fmt.Sprintf("%.2f days", k.AvgDeliveryTime)},
		{"Total Bugs", strconv.Itoa(k.TotalBugs)},
		{"Developer Error Bugs", strconv.Itoa(k.DeveloperErrorBugs)},
		{"Conceptual Bugs", strconv.Itoa(k.ConceptualBugs)},
		{"Other Bugs", strconv.Itoa(k.OtherBugs)},
		{"Delivery Score", percent(k.DeliveryScore)},
		{"Quality Score", percent(k.QualityScore)},
		{"Overall Score", percent(k.OverallScore)},
	}
	if k.Trend != nil {
		rows = append(rows, []string{"Trend", string(*k.Trend)})
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return bw.Flush()
}

func percent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}
