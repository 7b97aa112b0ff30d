package models

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidConfig      = errors.New("invalid scoring config")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrNoActiveDevelopers = errors.New("no active developers found")
	ErrInvalidRecord      = errors.New("invalid record")
)

type Developer struct {
	ID        string        `json:"id" validate:"required"`
	Name      string        `json:"name" validate:"required"`
	Email     string        `json:"email" validate:"omitempty,email"`
	Role      DeveloperRole `json:"role"`
	Team      *string       `json:"team,omitempty"`
	StartDate string        `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	IsActive  bool          `json:"is_active"`
}

// Ticket dates are normalized to YYYY-MM-DD so they compare lexically.
type Ticket struct {
	ID            string           `json:"id" validate:"required"`
	Title         string           `json:"title"`
	DeveloperID   string           `json:"developer_id" validate:"required"`
	AssignedDate  string           `json:"assigned_date" validate:"required,datetime=2006-01-02"`
	DueDate       string           `json:"due_date" validate:"required,datetime=2006-01-02"`
	CompletedDate *string          `json:"completed_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status        TicketStatus     `json:"status"`
	Complexity    TicketComplexity `json:"complexity"`
	ReopenCount   int              `json:"reopen_count" validate:"gte=0"`
}

type Bug struct {
	ID           string      `json:"id" validate:"required"`
	TicketID     string      `json:"ticket_id"`
	DeveloperID  string      `json:"developer_id" validate:"required"`
	Title        string      `json:"title"`
	Severity     BugSeverity `json:"severity"`
	Type         BugType     `json:"bug_type"`
	IsResolved   bool        `json:"is_resolved"`
	ResolvedDate *string     `json:"resolved_date,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

type TicketMetrics struct {
	TotalTickets        int     `json:"total_tickets"`
	CompletedTickets    int     `json:"completed_tickets"`
	OnTimeTickets       int     `json:"on_time_tickets"`
	LateTickets         int     `json:"late_tickets"`
	EarlyDeliveries     int     `json:"early_deliveries"`
	LateCriticalTickets int     `json:"late_critical_tickets"`
	ReopenedTickets     int     `json:"reopened_tickets"`
	TotalDeliveryDays   float64 `json:"total_delivery_days"`
}

// SeverityCounts only ever holds developer_error bugs.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

type BugMetrics struct {
	TotalBugs          int            `json:"total_bugs"`
	DeveloperErrorBugs int            `json:"developer_error_bugs"`
	ConceptualBugs     int            `json:"conceptual_bugs"`
	OtherBugs          int            `json:"other_bugs"`
	DevErrorBySeverity SeverityCounts `json:"developer_error_by_severity"`
}

type MonthlyKPI struct {
	ID          string `json:"id"`
	DeveloperID string `json:"developer_id"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`

	TicketMetrics
	BugMetrics

	OnTimeRate      float64 `json:"on_time_rate"`
	AvgDeliveryTime float64 `json:"avg_delivery_time"`

	DeliveryScore float64 `json:"delivery_score"`
	QualityScore  float64 `json:"quality_score"`
	OverallScore  float64 `json:"overall_score"`

	Trend       *Trend    `json:"trend,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}
