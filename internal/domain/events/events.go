// Package events owns event definitions and their capacity limits.
package events

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("event not found")

const (
	PriceFree = "free"
	PricePaid = "paid"

	// DefaultMaxRegistrations applies when a create request leaves the
	// capacity ceiling unset.
	DefaultMaxRegistrations = 50
)

type Event struct {
	ID               string
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	MaxRegistrations int
	Categories       []string
	Price            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateParams struct {
	Title            string    `validate:"required,max=200"`
	Description      string    `validate:"max=5000"`
	StartDate        time.Time `validate:"required"`
	EndDate          time.Time `validate:"required"`
	MaxRegistrations int       `validate:"omitempty,gt=0"`
	Categories       []string  `validate:"max=20,dive,max=50"`
	Price            string    `validate:"omitempty,oneof=free paid"`
}

// UpdateParams carries a partial update; nil fields are left untouched.
type UpdateParams struct {
	Title            *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	MaxRegistrations *int
	Categories       []string
	Price            *string
}

type Repository interface {
	Create(ctx context.Context, event Event) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id string, params UpdateParams) (*Event, error)
	Delete(ctx context.Context, id string) error
}
