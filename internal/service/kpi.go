package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
	"github.com/kpi_tracker/backend/internal/report"
)

const defaultWorkers = 4

// Repository is the storage the KPI service reads records from and writes
// computed KPIs to. Implementations own their concurrency.
type Repository interface {
	Ping(ctx context.Context) error
	GetDeveloper(ctx context.Context, id string) (models.Developer, error)
	ListActiveDevelopers(ctx context.Context) ([]models.Developer, error)
	ListTickets(ctx context.Context, developerID string, p kpi.Period) ([]models.Ticket, error)
	ListBugs(ctx context.Context, developerID string, p kpi.Period) ([]models.Bug, error)
	PriorOverallScores(ctx context.Context, developerID string, p kpi.Period, limit int) ([]float64, error)
	GetMonthlyKPI(ctx context.Context, developerID string, p kpi.Period) (models.MonthlyKPI, error)
	ListMonthlyKPIs(ctx context.Context, developerID string) ([]models.MonthlyKPI, error)
	UpsertMonthlyKPI(ctx context.Context, k models.MonthlyKPI) (models.MonthlyKPI, error)
}

type KPIService struct {
	Repo Repository
	// Config is the initial scoring configuration. Read it through
	// ScoringConfig once the service is shared.
	Config models.ScoringConfig
	// ConfigFile, when set, receives every accepted UpdateConfig as YAML.
	ConfigFile string
	Logger     zerolog.Logger
	Workers    int
	// Now defaults to time.Now.
	Now func() time.Time

	mu sync.RWMutex
}

func (s *KPIService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// compute validates the developer and runs the engine without persisting.
func (s *KPIService) compute(ctx context.Context, developerID string, p kpi.Period) (models.MonthlyKPI, error) {
	if err := p.Validate(); err != nil {
		return models.MonthlyKPI{}, err
	}
	if _, err := s.Repo.GetDeveloper(ctx, developerID); err != nil {
		return models.MonthlyKPI{}, err
	}

	tickets, err := s.Repo.ListTickets(ctx, developerID, p)
	if err != nil {
		return models.MonthlyKPI{}, fmt.Errorf("load tickets: %w", err)
	}
	bugs, err := s.Repo.ListBugs(ctx, developerID, p)
	if err != nil {
		return models.MonthlyKPI{}, fmt.Errorf("load bugs: %w", err)
	}
	prior, err := s.Repo.PriorOverallScores(ctx, developerID, p, kpi.TrendWindow)
	if err != nil {
		return models.MonthlyKPI{}, fmt.Errorf("load prior scores: %w", err)
	}

	return kpi.ComputeMonthlyKPI(kpi.Input{
		DeveloperID: developerID,
		Period:      p,
		Tickets:     tickets,
		Bugs:        bugs,
		Config:      s.ScoringConfig(),
		PriorScores: prior,
	}, s.now()), nil
}

// Generate computes the KPI for developerID in p and upserts it.
func (s *KPIService) Generate(ctx context.Context, developerID string, p kpi.Period) (models.MonthlyKPI, error) {
	k, err := s.compute(ctx, developerID, p)
	if err != nil {
		return models.MonthlyKPI{}, err
	}
	stored, err := s.Repo.UpsertMonthlyKPI(ctx, k)
	if err != nil {
		return models.MonthlyKPI{}, fmt.Errorf("store kpi: %w", err)
	}
	s.Logger.Info().
		Str("developer_id", developerID).
		Str("period", p.String()).
		Float64("overall_score", stored.OverallScore).
		Str("trend", trendString(stored.Trend)).
		Msg("kpi generated")
	return stored, nil
}

// Preview computes the current month's KPI without storing it.
func (s *KPIService) Preview(ctx context.Context, developerID string) (models.MonthlyKPI, error) {
	p := kpi.CurrentPeriod(s.now())
	k, err := s.compute(ctx, developerID, p)
	if err != nil {
		return models.MonthlyKPI{}, err
	}
	k.ID = fmt.Sprintf("preview-%s-%d-%d", developerID, p.Year, p.Month)
	return k, nil
}

func (s *KPIService) Get(ctx context.Context, developerID string, p kpi.Period) (models.MonthlyKPI, error) {
	if err := p.Validate(); err != nil {
		return models.MonthlyKPI{}, err
	}
	return s.Repo.GetMonthlyKPI(ctx, developerID, p)
}

// History returns every stored KPI for the developer, newest first.
func (s *KPIService) History(ctx context.Context, developerID string) ([]models.MonthlyKPI, error) {
	if _, err := s.Repo.GetDeveloper(ctx, developerID); err != nil {
		return nil, err
	}
	return s.Repo.ListMonthlyKPIs(ctx, developerID)
}

// GenerateAll generates and stores p for every active developer. Developers
// are processed concurrently; the first failure cancels the rest.
func (s *KPIService) GenerateAll(ctx context.Context, p kpi.Period) ([]models.MonthlyKPI, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	devs, err := s.Repo.ListActiveDevelopers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list developers: %w", err)
	}
	if len(devs) == 0 {
		return nil, models.ErrNoActiveDevelopers
	}

	start := time.Now()
	results := make([]models.MonthlyKPI, len(devs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers())
	for i, d := range devs {
		i, d := i, d
		g.Go(func() error {
			k, err := s.Generate(gctx, d.ID, p)
			if err != nil {
				return fmt.Errorf("developer %s: %w", d.ID, err)
			}
			results[i] = k
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.Logger.Info().
		Str("period", p.String()).
		Int("developers", len(devs)).
		Int64("elapsed_ms", time.Since(start).Milliseconds()).
		Msg("kpi batch generated")
	return results, nil
}

// Team computes, without storing, the aggregated KPI of all active developers.
func (s *KPIService) Team(ctx context.Context, p kpi.Period) (models.MonthlyKPI, error) {
	if err := p.Validate(); err != nil {
		return models.MonthlyKPI{}, err
	}
	devs, err := s.Repo.ListActiveDevelopers(ctx)
	if err != nil {
		return models.MonthlyKPI{}, fmt.Errorf("list developers: %w", err)
	}
	if len(devs) == 0 {
		return models.MonthlyKPI{}, models.ErrNoActiveDevelopers
	}

	members := make([]models.MonthlyKPI, 0, len(devs))
	for _, d := range devs {
		k, err := s.compute(ctx, d.ID, p)
		if err != nil {
			return models.MonthlyKPI{}, fmt.Errorf("developer %s: %w", d.ID, err)
		}
		members = append(members, k)
	}
	return kpi.TeamSummary(p, members, s.now()), nil
}

// ExportCSV writes the developer's KPI for p as CSV. A stored KPI is used
// when present, otherwise it is computed without storing. An empty
// developerID exports the team summary.
func (s *KPIService) ExportCSV(ctx context.Context, developerID string, p kpi.Period, w io.Writer) error {
	var (
		k   models.MonthlyKPI
		err error
	)
	if developerID == "" {
		k, err = s.Team(ctx, p)
	} else {
		k, err = s.Get(ctx, developerID, p)
		if errors.Is(err, models.ErrNotFound) {
			k, err = s.compute(ctx, developerID, p)
			if err == nil {
				k.ID = fmt.Sprintf("export-%s-%d-%d", developerID, p.Year, p.Month)
			}
		}
	}
	if err != nil {
		return err
	}
	return report.WriteKPICSV(w, k)
}

func (s *KPIService) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return defaultWorkers
}

func trendString(t *models.Trend) string {
	if t == nil {
		return ""
	}
	return string(*t)
}
