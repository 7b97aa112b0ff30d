package kpi

import (
	"fmt"
	"time"

	"github.com/kpi_tracker/backend/internal/models"
)

const dateLayout = "2006-01-02"

// Period is a calendar month.
type Period struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=1970,max=9999"`
}

func NewPeriod(month, year int) (Period, error) {
	p := Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func CurrentPeriod(now time.Time) Period {
	now = now.UTC()
	return Period{Month: int(now.Month()), Year: now.Year()}
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("%w: month %d out of range 1-12", models.ErrInvalidPeriod, p.Month)
	}
	if p.Year < 1970 || p.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", models.ErrInvalidPeriod, p.Year)
	}
	return nil
}

// Start is the first day of the month as YYYY-MM-DD.
func (p Period) Start() string {
	return fmt.Sprintf("%04d-%02d-01", p.Year, p.Month)
}

// End is the first day of the following month; the range is [Start, End).
func (p Period) End() string {
	if p.Month == 12 {
		return fmt.Sprintf("%04d-01-01", p.Year+1)
	}
	return fmt.Sprintf("%04d-%02d-01", p.Year, p.Month+1)
}

// ContainsDate compares YYYY-MM-DD strings lexically.
func (p Period) ContainsDate(date string) bool {
	return date >= p.Start() && date < p.End()
}

// ContainsTime truncates t to its calendar date in its own location.
func (p Period) ContainsTime(t time.Time) bool {
	return p.ContainsDate(t.Format(dateLayout))
}

func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

func (p Period) Label() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month).String(), p.Year)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
