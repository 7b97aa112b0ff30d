package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStatus     = errors.New("invalid ticket status")
	ErrInvalidComplexity = errors.New("invalid ticket complexity")
	ErrInvalidSeverity   = errors.New("invalid bug severity")
	ErrInvalidBugType    = errors.New("invalid bug type")
	ErrInvalidRole       = errors.New("invalid developer role")
	ErrInvalidTrend      = errors.New("invalid kpi trend")
)

type TicketStatus string

const (
	StatusAssigned   TicketStatus = "assigned"
	StatusInProgress TicketStatus = "in_progress"
	StatusReview     TicketStatus = "review"
	StatusCompleted  TicketStatus = "completed"
	StatusReopened   TicketStatus = "reopened"
)

func ParseTicketStatus(s string) (TicketStatus, error) {
	switch normalizeEnum(s) {
	case "assigned":
		return StatusAssigned, nil
	case "in_progress", "in-progress":
		return StatusInProgress, nil
	case "review":
		return StatusReview, nil
	case "completed":
		return StatusCompleted, nil
	case "reopened":
		return StatusReopened, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

func (s *TicketStatus) UnmarshalText(b []byte) error {
	v, err := ParseTicketStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type TicketComplexity string

const (
	ComplexityLow      TicketComplexity = "low"
	ComplexityMedium   TicketComplexity = "medium"
	ComplexityHigh     TicketComplexity = "high"
	ComplexityCritical TicketComplexity = "critical"
)

func ParseTicketComplexity(s string) (TicketComplexity, error) {
	switch v := TicketComplexity(normalizeEnum(s)); v {
	case ComplexityLow, ComplexityMedium, ComplexityHigh, ComplexityCritical:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidComplexity, s)
}

func (c *TicketComplexity) UnmarshalText(b []byte) error {
	v, err := ParseTicketComplexity(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

type BugSeverity string

const (
	SeverityLow      BugSeverity = "low"
	SeverityMedium   BugSeverity = "medium"
	SeverityHigh     BugSeverity = "high"
	SeverityCritical BugSeverity = "critical"
)

func ParseBugSeverity(s string) (BugSeverity, error) {
	switch v := BugSeverity(normalizeEnum(s)); v {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
}

func (s *BugSeverity) UnmarshalText(b []byte) error {
	v, err := ParseBugSeverity(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

type BugType string

const (
	BugDeveloperError    BugType = "developer_error"
	BugConceptual        BugType = "conceptual"
	BugRequirementChange BugType = "requirement_change"
	BugEnvironment       BugType = "environment"
	BugThirdParty        BugType = "third_party"
)

func ParseBugType(s string) (BugType, error) {
	switch v := BugType(normalizeEnum(s)); v {
	case BugDeveloperError, BugConceptual, BugRequirementChange, BugEnvironment, BugThirdParty:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidBugType, s)
}

func (t *BugType) UnmarshalText(b []byte) error {
	v, err := ParseBugType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type DeveloperRole string

const (
	RoleJunior DeveloperRole = "junior"
	RoleMid    DeveloperRole = "mid"
	RoleSenior DeveloperRole = "senior"
	RoleLead   DeveloperRole = "lead"
)

func ParseDeveloperRole(s string) (DeveloperRole, error) {
	switch v := DeveloperRole(normalizeEnum(s)); v {
	case RoleJunior, RoleMid, RoleSenior, RoleLead:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
}

func (r *DeveloperRole) UnmarshalText(b []byte) error {
	v, err := ParseDeveloperRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

func ParseTrend(s string) (Trend, error) {
	switch v := Trend(normalizeEnum(s)); v {
	case TrendImproving, TrendStable, TrendDeclining:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTrend, s)
}

func (t *Trend) UnmarshalText(b []byte) error {
	v, err := ParseTrend(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func normalizeEnum(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
