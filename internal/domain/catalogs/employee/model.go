// Package employee provides the employee catalog.
package employee

import (
	"context"

	"espetaria/internal/core/apperror"
	"espetaria/internal/core/entity"
)

// Employee represents a staff member who can record production.
type Employee struct {
	entity.Catalog

	// Role is the job title shown in listings
	Role string `db:"role" json:"role,omitempty"`

	// Active indicates the employee can still be assigned to productions
	Active bool `db:"active" json:"active"`
}

// NewEmployee creates a new Employee with required fields.
func NewEmployee(code, name string) *Employee {
	return &Employee{
		Catalog: entity.NewCatalog(code, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable.
func (e *Employee) Validate(ctx context.Context) error {
	if err := e.Catalog.Validate(ctx); err != nil {
		return err
	}

	if len(e.Name) > 200 {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name")
	}

	return nil
}
