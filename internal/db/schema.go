package db

import (
	"context"

	"github.com/pkg/errors"
)

// Dates that the engine compares lexically are kept as DATE and rendered as
// YYYY-MM-DD on read.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS developers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		role TEXT NOT NULL,
		team TEXT,
		start_date DATE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS tickets (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		developer_id TEXT NOT NULL REFERENCES developers(id),
		assigned_date DATE NOT NULL,
		due_date DATE NOT NULL,
		completed_date DATE,
		status TEXT NOT NULL,
		complexity TEXT NOT NULL,
		reopen_count INTEGER NOT NULL DEFAULT 0 CHECK (reopen_count >= 0),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS bugs (
		id TEXT PRIMARY KEY,
		ticket_id TEXT NOT NULL REFERENCES tickets(id),
		developer_id TEXT NOT NULL REFERENCES developers(id),
		title TEXT NOT NULL,
		severity TEXT NOT NULL,
		bug_type TEXT NOT NULL,
		is_resolved BOOLEAN NOT NULL DEFAULT FALSE,
		resolved_date DATE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS monthly_kpi (
		id TEXT PRIMARY KEY,
		developer_id TEXT NOT NULL REFERENCES developers(id),
		month INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
		year INTEGER NOT NULL,
		total_tickets INTEGER NOT NULL,
		completed_tickets INTEGER NOT NULL,
		on_time_tickets INTEGER NOT NULL,
		late_tickets INTEGER NOT NULL,
		early_deliveries INTEGER NOT NULL,
		late_critical_tickets INTEGER NOT NULL,
		reopened_tickets INTEGER NOT NULL,
		total_delivery_days DOUBLE PRECISION NOT NULL,
		on_time_rate DOUBLE PRECISION NOT NULL,
		avg_delivery_time DOUBLE PRECISION NOT NULL,
		total_bugs INTEGER NOT NULL,
		developer_error_bugs INTEGER NOT NULL,
		conceptual_bugs INTEGER NOT NULL,
		other_bugs INTEGER NOT NULL,
		dev_error_critical INTEGER NOT NULL,
		dev_error_high INTEGER NOT NULL,
		dev_error_medium INTEGER NOT NULL,
		dev_error_low INTEGER NOT NULL,
		delivery_score DOUBLE PRECISION NOT NULL,
		quality_score DOUBLE PRECISION NOT NULL,
		overall_score DOUBLE PRECISION NOT NULL,
		trend TEXT,
		generated_at TIMESTAMPTZ NOT NULL,
		UNIQUE (developer_id, month, year)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_developer_assigned ON tickets (developer_id, assigned_date)`,
	`CREATE INDEX IF NOT EXISTS idx_tickets_developer_completed ON tickets (developer_id, completed_date)`,
	`CREATE INDEX IF NOT EXISTS idx_bugs_developer_created ON bugs (developer_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_monthly_kpi_developer_period ON monthly_kpi (developer_id, year DESC, month DESC)`,
}

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.Pool.Exec(ctx, stmt); err != nil {
			return errors.Wrap(err, "ensure schema")
		}
	}
	return nil
}
