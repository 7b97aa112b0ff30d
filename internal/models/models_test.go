package models

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseTicketStatusAcceptsAliases(t *testing.T) {
	cases := map[string]TicketStatus{
		"completed":   StatusCompleted,
		" Completed ": StatusCompleted,
		"in-progress": StatusInProgress,
		"IN_PROGRESS": StatusInProgress,
		"reopened":    StatusReopened,
	}
	for in, want := range cases {
		got, err := ParseTicketStatus(in)
		if err != nil {
			t.Fatalf("ParseTicketStatus(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseTicketStatus(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestParseRejectsUnknownValues(t *testing.T) {
	if _, err := ParseTicketStatus("done"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := ParseTicketComplexity("trivial"); !errors.Is(err, ErrInvalidComplexity) {
		t.Fatalf("expected ErrInvalidComplexity, got %v", err)
	}
	if _, err := ParseBugSeverity("blocker"); !errors.Is(err, ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
	if _, err := ParseBugType("typo"); !errors.Is(err, ErrInvalidBugType) {
		t.Fatalf("expected ErrInvalidBugType, got %v", err)
	}
	if _, err := ParseDeveloperRole("intern"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	if _, err := ParseTrend("flat"); !errors.Is(err, ErrInvalidTrend) {
		t.Fatalf("expected ErrInvalidTrend, got %v", err)
	}
}

func TestBugJSONDecodeValidatesEnums(t *testing.T) {
	var b Bug
	err := json.Unmarshal([]byte(`{"severity":"HIGH","bug_type":"third_party"}`), &b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Severity != SeverityHigh || b.Type != BugThirdParty {
		t.Fatalf("unexpected decode: %+v", b)
	}

	err = json.Unmarshal([]byte(`{"severity":"urgent","bug_type":"third_party"}`), &b)
	if !errors.Is(err, ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestMonthlyKPIJSONFlattensMetrics(t *testing.T) {
	k := MonthlyKPI{DeveloperID: "d1", Month: 3, Year: 2024}
	k.CompletedTickets = 4
	k.ConceptualBugs = 2
	b, err := json.Marshal(k)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["completed_tickets"].(float64) != 4 || out["conceptual_bugs"].(float64) != 2 {
		t.Fatalf("expected flattened metrics, got %v", out)
	}
	if _, ok := out["trend"]; ok {
		t.Fatalf("expected trend to be omitted when unset")
	}
}

func TestScoringConfigValidate(t *testing.T) {
	if err := DefaultScoringConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}

	cfg := DefaultScoringConfig()
	cfg.DeliveryWeight = 0.7
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected weight sum error, got %v", err)
	}

	cfg = DefaultScoringConfig()
	cfg.DeliveryWeight = 1.5
	cfg.QualityWeight = -0.5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected range error, got %v", err)
	}

	cfg = DefaultScoringConfig()
	cfg.BugPenalties.Low = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected penalty error, got %v", err)
	}

	cfg = DefaultScoringConfig()
	cfg.DeliveryWeight = 0.505
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected sum within tolerance to pass, got %v", err)
	}
}

func TestRecordValidateRejectsEmptyEnums(t *testing.T) {
	dev := Developer{ID: "d1", Name: "Ada"}
	if err := dev.Validate(); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
	dev.Role = RoleLead
	if err := dev.Validate(); err != nil {
		t.Fatalf("expected valid developer, got %v", err)
	}

	ticket := Ticket{ID: "t1", DeveloperID: "d1", AssignedDate: "2024-03-01", DueDate: "2024-03-05", Status: StatusAssigned}
	if err := ticket.Validate(); !errors.Is(err, ErrInvalidComplexity) {
		t.Fatalf("expected ErrInvalidComplexity, got %v", err)
	}
	ticket.Complexity = ComplexityHigh
	if err := ticket.Validate(); err != nil {
		t.Fatalf("expected valid ticket, got %v", err)
	}
	ticket.ReopenCount = -1
	if err := ticket.Validate(); !errors.Is(err, ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}

	bug := Bug{ID: "b1", DeveloperID: "d1", Type: BugDeveloperError, CreatedAt: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)}
	if err := bug.Validate(); !errors.Is(err, ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}
