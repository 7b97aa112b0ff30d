package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
)

type Store struct {
	Pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse database url")
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open pool")
	}
	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Pool.Ping(ctx)
}

func (s *Store) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()
	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

const developerColumns = `id, name, email, role, team, to_char(start_date, 'YYYY-MM-DD'), is_active`

func scanDeveloper(row pgx.Row) (models.Developer, error) {
	var (
		d    models.Developer
		role string
	)
	if err := row.Scan(&d.ID, &d.Name, &d.Email, &role, &d.Team, &d.StartDate, &d.IsActive); err != nil {
		return models.Developer{}, err
	}
	r, err := models.ParseDeveloperRole(role)
	if err != nil {
		return models.Developer{}, errors.Wrapf(err, "developer %s", d.ID)
	}
	d.Role = r
	return d, nil
}

func (s *Store) GetDeveloper(ctx context.Context, id string) (models.Developer, error) {
	d, err := scanDeveloper(s.Pool.QueryRow(ctx, `SELECT `+developerColumns+` FROM developers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Developer{}, errors.Wrapf(models.ErrNotFound, "developer %s", id)
		}
		return models.Developer{}, errors.Wrap(err, "get developer")
	}
	return d, nil
}

func (s *Store) ListActiveDevelopers(ctx context.Context) ([]models.Developer, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+developerColumns+` FROM developers WHERE is_active ORDER BY id ASC`)
	if err != nil {
		return nil, errors.Wrap(err, "list developers")
	}
	defer rows.Close()

	var out []models.Developer
	for rows.Next() {
		d, err := scanDeveloper(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListTickets returns the developer's tickets assigned in p or completed in p.
func (s *Store) ListTickets(ctx context.Context, developerID string, p kpi.Period) ([]models.Ticket, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, title, developer_id,
			to_char(assigned_date, 'YYYY-MM-DD'), to_char(due_date, 'YYYY-MM-DD'), to_char(completed_date, 'YYYY-MM-DD'),
			status, complexity, reopen_count
		FROM tickets
		WHERE developer_id = $1
		  AND (
			(status = 'completed' AND completed_date IS NOT NULL AND completed_date >= $2::date AND completed_date < $3::date)
			OR (assigned_date >= $2::date AND assigned_date < $3::date)
		  )
		ORDER BY assigned_date ASC, id ASC
	`, developerID, p.Start(), p.End())
	if err != nil {
		return nil, errors.Wrap(err, "query tickets")
	}
	defer rows.Close()

	var out []models.Ticket
	for rows.Next() {
		var (
			t                  models.Ticket
			status, complexity string
		)
		if err := rows.Scan(&t.ID, &t.Title, &t.DeveloperID, &t.AssignedDate, &t.DueDate, &t.CompletedDate, &status, &complexity, &t.ReopenCount); err != nil {
			return nil, errors.Wrap(err, "scan ticket")
		}
		if t.Status, err = models.ParseTicketStatus(status); err != nil {
			return nil, errors.Wrapf(err, "ticket %s", t.ID)
		}
		if t.Complexity, err = models.ParseTicketComplexity(complexity); err != nil {
			return nil, errors.Wrapf(err, "ticket %s", t.ID)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListBugs returns the developer's bugs whose UTC creation date falls in p.
// CreatedAt is normalized to UTC so the engine sees the same calendar date.
func (s *Store) ListBugs(ctx context.Context, developerID string, p kpi.Period) ([]models.Bug, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, ticket_id, developer_id, title, severity, bug_type, is_resolved,
			to_char(resolved_date, 'YYYY-MM-DD'), created_at
		FROM bugs
		WHERE developer_id = $1
		  AND (created_at AT TIME ZONE 'UTC')::date >= $2::date
		  AND (created_at AT TIME ZONE 'UTC')::date < $3::date
		ORDER BY created_at ASC, id ASC
	`, developerID, p.Start(), p.End())
	if err != nil {
		return nil, errors.Wrap(err, "query bugs")
	}
	defer rows.Close()

	var out []models.Bug
	for rows.Next() {
		var (
			b                 models.Bug
			severity, bugType string
		)
		if err := rows.Scan(&b.ID, &b.TicketID, &b.DeveloperID, &b.Title, &severity, &bugType, &b.IsResolved, &b.ResolvedDate, &b.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan bug")
		}
		if b.Severity, err = models.ParseBugSeverity(severity); err != nil {
			return nil, errors.Wrapf(err, "bug %s", b.ID)
		}
		if b.Type, err = models.ParseBugType(bugType); err != nil {
			return nil, errors.Wrapf(err, "bug %s", b.ID)
		}
		b.CreatedAt = b.CreatedAt.UTC()
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) PriorOverallScores(ctx context.Context, developerID string, p kpi.Period, limit int) ([]float64, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT overall_score
		FROM monthly_kpi
		WHERE developer_id = $1
		  AND (year < $2 OR (year = $2 AND month < $3))
		ORDER BY year DESC, month DESC
		LIMIT $4
	`, developerID, p.Year, p.Month, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query prior scores")
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, errors.Wrap(err, "scan prior score")
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

const kpiColumns = `id, developer_id, month, year,
	total_tickets, completed_tickets, on_time_tickets, late_tickets, early_deliveries, late_critical_tickets, reopened_tickets, total_delivery_days,
	on_time_rate, avg_delivery_time,
	total_bugs, developer_error_bugs, conceptual_bugs, other_bugs,
	dev_error_critical, dev_error_high, dev_error_medium, dev_error_low,
	delivery_score, quality_score, overall_score, trend, generated_at`

func scanKPI(row pgx.Row) (models.MonthlyKPI, error) {
	var (
		k     models.MonthlyKPI
		trend *string
	)
	err := row.Scan(
		&k.ID, &k.DeveloperID, &k.Month, &k.Year,
		&k.TotalTickets, &k.CompletedTickets, &k.OnTimeTickets, &k.LateTickets, &k.EarlyDeliveries, &k.LateCriticalTickets, &k.ReopenedTickets, &k.TotalDeliveryDays,
		&k.OnTimeRate, &k.AvgDeliveryTime,
		&k.TotalBugs, &k.DeveloperErrorBugs, &k.ConceptualBugs, &k.OtherBugs,
		&k.DevErrorBySeverity.Critical, &k.DevErrorBySeverity.High, &k.DevErrorBySeverity.Medium, &k.DevErrorBySeverity.Low,
		&k.DeliveryScore, &k.QualityScore, &k.OverallScore, &trend, &k.GeneratedAt,
	)
	if err != nil {
		return models.MonthlyKPI{}, err
	}
	if trend != nil {
		t, err := models.ParseTrend(*trend)
		if err != nil {
			return models.MonthlyKPI{}, errors.Wrapf(err, "kpi %s", k.ID)
		}
		k.Trend = &t
	}
	k.GeneratedAt = k.GeneratedAt.UTC()
	return k, nil
}

func (s *Store) GetMonthlyKPI(ctx context.Context, developerID string, p kpi.Period) (models.MonthlyKPI, error) {
	k, err := scanKPI(s.Pool.QueryRow(ctx, `SELECT `+kpiColumns+` FROM monthly_kpi WHERE developer_id = $1 AND month = $2 AND year = $3`, developerID, p.Month, p.Year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.MonthlyKPI{}, errors.Wrapf(models.ErrNotFound, "kpi %s %s", developerID, p)
		}
		return models.MonthlyKPI{}, errors.Wrap(err, "get kpi")
	}
	return k, nil
}

func (s *Store) ListMonthlyKPIs(ctx context.Context, developerID string) ([]models.MonthlyKPI, error) {
	rows, err := s.Pool.Query(ctx, `SELECT `+kpiColumns+` FROM monthly_kpi WHERE developer_id = $1 ORDER BY year DESC, month DESC`, developerID)
	if err != nil {
		return nil, errors.Wrap(err, "list kpi history")
	}
	defer rows.Close()

	var out []models.MonthlyKPI
	for rows.Next() {
		k, err := scanKPI(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan kpi")
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

// UpsertMonthlyKPI writes k keyed on (developer, month, year). An existing
// row keeps its id; the returned KPI carries the persisted id.
func (s *Store) UpsertMonthlyKPI(ctx context.Context, k models.MonthlyKPI) (models.MonthlyKPI, error) {
	if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.GeneratedAt.IsZero() {
		k.GeneratedAt = time.Now().UTC()
	}
	var trend *string
	if k.Trend != nil {
		v := string(*k.Trend)
		trend = &v
	}

	err := s.WithTx(ctx, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO monthly_kpi (`+kpiColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27)
			ON CONFLICT (developer_id, month, year) DO UPDATE SET
				total_tickets = EXCLUDED.total_tickets,
				completed_tickets = EXCLUDED.completed_tickets,
				on_time_tickets = EXCLUDED.on_time_tickets,
				late_tickets = EXCLUDED.late_tickets,
				early_deliveries = EXCLUDED.early_deliveries,
				late_critical_tickets = EXCLUDED.late_critical_tickets,
				reopened_tickets = EXCLUDED.reopened_tickets,
				total_delivery_days = EXCLUDED.total_delivery_days,
				on_time_rate = EXCLUDED.on_time_rate,
				avg_delivery_time = EXCLUDED.avg_delivery_time,
				total_bugs = EXCLUDED.total_bugs,
				developer_error_bugs = EXCLUDED.developer_error_bugs,
				conceptual_bugs = EXCLUDED.conceptual_bugs,
				other_bugs = EXCLUDED.other_bugs,
				dev_error_critical = EXCLUDED.dev_error_critical,
				dev_error_high = EXCLUDED.dev_error_high,
				dev_error_medium = EXCLUDED.dev_error_medium,
				dev_error_low = EXCLUDED.dev_error_low,
				delivery_score = EXCLUDED.delivery_score,
				quality_score = EXCLUDED.quality_score,
				overall_score = EXCLUDED.overall_score,
				trend = EXCLUDED.trend,
				generated_at = EXCLUDED.generated_at
			RETURNING id
		`,
			k.ID, k.DeveloperID, k.Month, k.Year,
			k.TotalTickets, k.CompletedTickets, k.OnTimeTickets, k.LateTickets, k.EarlyDeliveries, k.LateCriticalTickets, k.ReopenedTickets, k.TotalDeliveryDays,
			k.OnTimeRate, k.AvgDeliveryTime,
			k.TotalBugs, k.DeveloperErrorBugs, k.ConceptualBugs, k.OtherBugs,
			k.DevErrorBySeverity.Critical, k.DevErrorBySeverity.High, k.DevErrorBySeverity.Medium, k.DevErrorBySeverity.Low,
			k.DeliveryScore, k.QualityScore, k.OverallScore, trend, k.GeneratedAt,
		).Scan(&k.ID)
	})
	if err != nil {
		return models.MonthlyKPI{}, errors.Wrap(err, "upsert kpi")
	}
	return k, nil
}
