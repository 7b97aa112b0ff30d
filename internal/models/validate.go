package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate rejects a developer with missing identity fields or a role outside
// the known set, including an empty one.
func (d Developer) Validate() error {
	if _, err := ParseDeveloperRole(string(d.Role)); err != nil {
		return fmt.Errorf("developer %s: %w", d.ID, err)
	}
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: developer %s: %v", ErrInvalidRecord, d.ID, err)
	}
	return nil
}

func (t Ticket) Validate() error {
	if _, err := ParseTicketStatus(string(t.Status)); err != nil {
		return fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	if _, err := ParseTicketComplexity(string(t.Complexity)); err != nil {
		return fmt.Errorf("ticket %s: %w", t.ID, err)
	}
	if err := validate.Struct(t); err != nil {
		return fmt.Errorf("%w: ticket %s: %v", ErrInvalidRecord, t.ID, err)
	}
	return nil
}

// Validate requires a known severity for every bug type.
func (b Bug) Validate() error {
	if _, err := ParseBugSeverity(string(b.Severity)); err != nil {
		return fmt.Errorf("bug %s: %w", b.ID, err)
	}
	if _, err := ParseBugType(string(b.Type)); err != nil {
		return fmt.Errorf("bug %s: %w", b.ID, err)
	}
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("%w: bug %s: %v", ErrInvalidRecord, b.ID, err)
	}
	if b.CreatedAt.IsZero() {
		return fmt.Errorf("%w: bug %s: created_at is required", ErrInvalidRecord, b.ID)
	}
	return nil
}
