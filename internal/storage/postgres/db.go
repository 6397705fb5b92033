package postgres

import (
	"errors"
	"fmt"

	"github.com/alialif/JoinUp-Event-Management/internal/audit"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/attendance"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres error code for unique constraint violations.
const uniqueViolationCode = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Members() members.Repository {
	return &MemberRepository{pool: r.pool}
}

func (r *Repository) Events() events.Repository {
	return &EventRepository{pool: r.pool}
}

func (r *Repository) Registrations() registrations.Repository {
	return &RegistrationRepository{pool: r.pool}
}

func (r *Repository) Attendance() attendance.Repository {
	return &AttendanceRepository{pool: r.pool}
}

func (r *Repository) Certificates() certificates.Repository {
	return &CertificateRepository{pool: r.pool}
}

func (r *Repository) Audit() audit.Repository {
	return &AuditRepository{pool: r.pool}
}

type MemberRepository struct {
	pool *pgxpool.Pool
}

type EventRepository struct {
	pool *pgxpool.Pool
}

type RegistrationRepository struct {
	pool *pgxpool.Pool
}

type AttendanceRepository struct {
	pool *pgxpool.Pool
}

type CertificateRepository struct {
	pool *pgxpool.Pool
}

type AuditRepository struct {
	pool *pgxpool.Pool
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	if pgErr.Code != uniqueViolationCode {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
