package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
)

func TestWriteKPICSV(t *testing.T) {
	trend := models.TrendImproving
	k := models.MonthlyKPI{
		DeveloperID:     "dev-7",
		Month:           3,
		Year:            2024,
		OnTimeRate:      87.5,
		AvgDeliveryTime: 1,
		DeliveryScore:   92.333,
		QualityScore:    85,
		OverallScore:    88.6667,
		Trend:           &trend,
		GeneratedAt:     time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC),
	}
	k.TotalTickets = 9
	k.CompletedTickets = 8
	k.OnTimeTickets = 7
	k.LateTickets = 1
	k.TotalBugs = 3
	k.DeveloperErrorBugs = 1
	k.ConceptualBugs = 1
	k.OtherBugs = 1

	var buf bytes.Buffer
	if err := WriteKPICSV(&buf, k); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"KPI Report\nPeriod: March 2024\nDeveloper: dev-7\nGenerated: 2024-04-01T09:30:00Z\n\nMetric,Value\n",
		"Total Tickets,9\n",
		"Completed Tickets,8\n",
		"On-Time Tickets,7\n",
		"Late Tickets,1\n",
		"Reopened Tickets,0\n",
		"On-Time Rate,87.50%\n",
		"Avg Delivery Time,1.00 days\n",
		"Total Bugs,3\n",
		"Developer Error Bugs,1\n",
		"Conceptual Bugs,1\n",
		"Other Bugs,1\n",
		"Delivery Score,92.33%\n",
		"Quality Score,85.00%\n",
		"Overall Score,88.67%\n",
		"Trend,improving\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestWriteKPICSVTeamWithoutTrend(t *testing.T) {
	k := models.MonthlyKPI{DeveloperID: kpi.TeamDeveloperID, Month: 12, Year: 2023}

	var buf bytes.Buffer
	if err := WriteKPICSV(&buf, k); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Developer: All Developers (Team)\n") {
		t.Fatalf("expected team label, got:\n%s", out)
	}
	if strings.Contains(out, "Trend,") {
		t.Fatalf("expected no trend row, got:\n%s", out)
	}
}

func TestWriteKPICSVQuotesDeveloperID(t *testing.T) {
	id := "dev,\"7\"\nx"
	k := models.MonthlyKPI{DeveloperID: id, Month: 3, Year: 2024, GeneratedAt: time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)}

	var buf bytes.Buffer
	if err := WriteKPICSV(&buf, k); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		t.Fatalf("output is not valid csv: %v\n%s", err, buf.String())
	}
	if len(records) < 5 {
		t.Fatalf("expected preamble and metric rows, got %d records", len(records))
	}
	if got := records[2]; len(got) != 1 || got[0] != "Developer: "+id {
		t.Fatalf("developer line split or altered: %q", got)
	}
	if got := records[4]; len(got) != 2 || got[0] != "Metric" {
		t.Fatalf("expected header after the blank line, got %q", got)
	}
}
