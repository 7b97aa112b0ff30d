package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
)

func TestMemStoreUpsertKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()

	first, err := store.UpsertMonthlyKPI(ctx, models.MonthlyKPI{DeveloperID: "d1", Month: 4, Year: 2024, OverallScore: 50})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if first.ID == "" {
		t.Fatalf("expected generated id")
	}

	second, err := store.UpsertMonthlyKPI(ctx, models.MonthlyKPI{ID: "ignored", DeveloperID: "d1", Month: 4, Year: 2024, OverallScore: 80})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected id %s to be kept, got %s", first.ID, second.ID)
	}

	history, _ := store.ListMonthlyKPIs(ctx, "d1")
	if len(history) != 1 || history[0].OverallScore != 80 {
		t.Fatalf("expected single overwritten row, got %+v", history)
	}
}

func TestMemStorePriorScoresOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	for _, k := range []models.MonthlyKPI{
		{DeveloperID: "d1", Month: 1, Year: 2024, OverallScore: 10},
		{DeveloperID: "d1", Month: 2, Year: 2024, OverallScore: 20},
		{DeveloperID: "d1", Month: 3, Year: 2024, OverallScore: 30},
		{DeveloperID: "d1", Month: 4, Year: 2024, OverallScore: 40},
		{DeveloperID: "d2", Month: 3, Year: 2024, OverallScore: 99},
	} {
		if _, err := store.UpsertMonthlyKPI(ctx, k); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	got, err := store.PriorOverallScores(ctx, "d1", kpi.Period{Month: 5, Year: 2024}, 3)
	if err != nil {
		t.Fatalf("prior scores: %v", err)
	}
	want := []float64{40, 30, 20}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestMemStoreNotFound(t *testing.T) {
	store := NewMemStore()
	if _, err := store.GetDeveloper(context.Background(), "ghost"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetMonthlyKPI(context.Background(), "ghost", kpi.Period{Month: 1, Year: 2024}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadSeedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seed.json")
	content := `{
		"developers": [{"id": "d1", "name": "Dev One", "email": "d1@example.com", "role": "Senior", "start_date": "2023-01-01", "is_active": true}],
		"tickets": [{"id": "t1", "developer_id": "d1", "assigned_date": "2024-03-01", "due_date": "2024-03-05", "completed_date": "2024-03-04", "status": "completed", "complexity": "high"}],
		"bugs": [{"id": "b1", "ticket_id": "t1", "developer_id": "d1", "severity": "low", "bug_type": "conceptual", "created_at": "2024-03-06T10:00:00Z"}]
	}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := LoadSeedFile(path)
	if err != nil {
		t.Fatalf("load seed: %v", err)
	}
	store := NewMemStore()
	store.Load(seed)

	march := kpi.Period{Month: 3, Year: 2024}
	tickets, _ := store.ListTickets(context.Background(), "d1", march)
	bugs, _ := store.ListBugs(context.Background(), "d1", march)
	if len(tickets) != 1 || len(bugs) != 1 {
		t.Fatalf("expected 1 ticket and 1 bug, got %d and %d", len(tickets), len(bugs))
	}
	if seed.Developers[0].Role != models.RoleSenior {
		t.Fatalf("expected role to be normalized, got %s", seed.Developers[0].Role)
	}
	if !bugs[0].CreatedAt.Equal(time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected bug timestamp %s", bugs[0].CreatedAt)
	}
}

func TestLoadSeedFileRejectsUnknownEnum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.json")
	content := `{"bugs": [{"id": "b1", "developer_id": "d1", "severity": "blocker", "bug_type": "conceptual", "created_at": "2024-03-06T10:00:00Z"}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}
	if _, err := LoadSeedFile(path); !errors.Is(err, models.ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestLoadSeedFileRejectsMissingEnums(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    error
	}{
		{
			name:    "developer without role",
			content: `{"developers": [{"id": "d1", "name": "Dev One", "is_active": true}]}`,
			want:    models.ErrInvalidRole,
		},
		{
			name:    "ticket without complexity",
			content: `{"tickets": [{"id": "t1", "developer_id": "d1", "assigned_date": "2024-03-01", "due_date": "2024-03-05", "status": "assigned"}]}`,
			want:    models.ErrInvalidComplexity,
		},
		{
			name:    "ticket without status",
			content: `{"tickets": [{"id": "t1", "developer_id": "d1", "assigned_date": "2024-03-01", "due_date": "2024-03-05", "complexity": "low"}]}`,
			want:    models.ErrInvalidStatus,
		},
		{
			name:    "developer error bug without severity",
			content: `{"bugs": [{"id": "b1", "developer_id": "d1", "bug_type": "developer_error", "created_at": "2024-03-06T10:00:00Z"}]}`,
			want:    models.ErrInvalidSeverity,
		},
		{
			name:    "bug without type",
			content: `{"bugs": [{"id": "b1", "developer_id": "d1", "severity": "low", "created_at": "2024-03-06T10:00:00Z"}]}`,
			want:    models.ErrInvalidBugType,
		},
		{
			name:    "ticket with malformed due date",
			content: `{"tickets": [{"id": "t1", "developer_id": "d1", "assigned_date": "2024-03-01", "due_date": "03/05/2024", "status": "assigned", "complexity": "low"}]}`,
			want:    models.ErrInvalidRecord,
		},
		{
			name:    "bug without created_at",
			content: `{"bugs": [{"id": "b1", "developer_id": "d1", "severity": "low", "bug_type": "conceptual"}]}`,
			want:    models.ErrInvalidRecord,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "seed.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o600); err != nil {
				t.Fatalf("write seed: %v", err)
			}
			if _, err := LoadSeedFile(path); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestMemStoreBugMonthUsesUTCDate(t *testing.T) {
	created, err := time.Parse(time.RFC3339, "2024-04-01T01:00:00+02:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	store := NewMemStore()
	store.Load(Seed{Bugs: []models.Bug{{ID: "b1", DeveloperID: "d1", Severity: models.SeverityLow, Type: models.BugConceptual, CreatedAt: created}}})

	ctx := context.Background()
	march, _ := store.ListBugs(ctx, "d1", kpi.Period{Month: 3, Year: 2024})
	april, _ := store.ListBugs(ctx, "d1", kpi.Period{Month: 4, Year: 2024})
	if len(march) != 1 || len(april) != 0 {
		t.Fatalf("expected bug in March (UTC date), got march=%d april=%d", len(march), len(april))
	}
	if march[0].CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", march[0].CreatedAt)
	}
}
