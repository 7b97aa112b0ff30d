package db

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kpi_tracker/backend/internal/kpi"
	"github.com/kpi_tracker/backend/internal/models"
)

// Seed is the JSON fixture format accepted by LoadSeedFile.
type Seed struct {
	Developers []models.Developer `json:"developers"`
	Tickets    []models.Ticket    `json:"tickets"`
	Bugs       []models.Bug       `json:"bugs"`
}

// MemStore keeps records in process memory. It is safe for concurrent use.
type MemStore struct {
	mu         sync.RWMutex
	developers map[string]models.Developer
	tickets    []models.Ticket
	bugs       []models.Bug
	kpis       map[string]models.MonthlyKPI
}

func NewMemStore() *MemStore {
	return &MemStore{
		developers: map[string]models.Developer{},
		kpis:       map[string]models.MonthlyKPI{},
	}
}

func LoadSeedFile(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, err
	}
	var seed Seed
	if err := json.Unmarshal(b, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed %s: %w", path, err)
	}
	if err := seed.Validate(); err != nil {
		return Seed{}, fmt.Errorf("seed %s: %w", path, err)
	}
	return seed, nil
}

// Validate checks every record. Keys missing from the JSON decode to empty
// values, so enums are checked here as well as on decode.
func (s Seed) Validate() error {
	for _, d := range s.Developers {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	for _, t := range s.Tickets {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, b := range s.Bugs {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Load adds seed records. Bug timestamps are stored in UTC, as Store returns
// them, so a bug lands in the same month in both repositories.
func (m *MemStore) Load(seed Seed) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range seed.Developers {
		m.developers[d.ID] = d
	}
	m.tickets = append(m.tickets, seed.Tickets...)
	for _, b := range seed.Bugs {
		b.CreatedAt = b.CreatedAt.UTC()
		m.bugs = append(m.bugs, b)
	}
}

func (m *MemStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemStore) GetDeveloper(ctx context.Context, id string) (models.Developer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.developers[id]
	if !ok {
		return models.Developer{}, fmt.Errorf("developer %s: %w", id, models.ErrNotFound)
	}
	return d, nil
}

func (m *MemStore) ListActiveDevelopers(ctx context.Context) ([]models.Developer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Developer
	for _, d := range m.developers {
		if d.IsActive {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *MemStore) ListTickets(ctx context.Context, developerID string, p kpi.Period) ([]models.Ticket, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Ticket
	for _, t := range m.tickets {
		if t.DeveloperID == developerID && kpi.TicketIncluded(t, p) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *MemStore) ListBugs(ctx context.Context, developerID string, p kpi.Period) ([]models.Bug, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.Bug
	for _, b := range m.bugs {
		if b.DeveloperID == developerID && p.ContainsTime(b.CreatedAt) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemStore) PriorOverallScores(ctx context.Context, developerID string, p kpi.Period, limit int) ([]float64, error) {
	history, err := m.ListMonthlyKPIs(ctx, developerID)
	if err != nil {
		return nil, err
	}
	return kpi.PriorScores(history, p, limit), nil
}

func (m *MemStore) GetMonthlyKPI(ctx context.Context, developerID string, p kpi.Period) (models.MonthlyKPI, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.kpis[kpiKey(developerID, p.Month, p.Year)]
	if !ok {
		return models.MonthlyKPI{}, fmt.Errorf("kpi %s %s: %w", developerID, p, models.ErrNotFound)
	}
	return k, nil
}

func (m *MemStore) ListMonthlyKPIs(ctx context.Context, developerID string) ([]models.MonthlyKPI, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []models.MonthlyKPI
	for _, k := range m.kpis {
		if k.DeveloperID == developerID {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year == out[j].Year {
			return out[i].Month > out[j].Month
		}
		return out[i].Year > out[j].Year
	})
	return out, nil
}

func (m *MemStore) UpsertMonthlyKPI(ctx context.Context, k models.MonthlyKPI) (models.MonthlyKPI, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := kpiKey(k.DeveloperID, k.Month, k.Year)
	if existing, ok := m.kpis[key]; ok {
		k.ID = existing.ID
	} else if k.ID == "" {
		k.ID = uuid.NewString()
	}
	if k.GeneratedAt.IsZero() {
		k.GeneratedAt = time.Now().UTC()
	}
	m.kpis[key] = k
	return k, nil
}

func kpiKey(developerID string, month, year int) string {
	return fmt.Sprintf("%s|%04d-%02d", developerID, year, month)
}
