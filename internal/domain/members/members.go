// Package members owns member identities, credentials, and roles.
package members

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("member not found")
	ErrEmailTaken = errors.New("email is already taken")
)

type Member struct {
	ID           string
	Email        string
	Name         string
	BirthDate    *time.Time
	Gender       string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type Repository interface {
	Create(ctx context.Context, member Member) (*Member, error)
	GetByID(ctx context.Context, id string) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	// List returns all members ordered by name ascending.
	List(ctx context.Context) ([]Member, error)
	UpdateRole(ctx context.Context, id string, role string) (*Member, error)
}
