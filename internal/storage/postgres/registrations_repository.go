package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/registrations"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ registrations.Repository = (*RegistrationRepository)(nil)

// Allocate serializes slot allocation per event with a row lock on the
// event (SELECT ... FOR UPDATE), so the duplicate check, capacity
// check, count read, and insert run as one unit. The unique indexes on
// (event_id, member_id) and (event_id, sequential_code) are the
// backstop if anything ever bypasses the lock.
func (r *RegistrationRepository) Allocate(ctx context.Context, id, memberID, eventID string, createdAt time.Time) (*registrations.Registration, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin allocation: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	var maxRegistrations int
	err = tx.QueryRow(ctx, `
SELECT max_registrations FROM events WHERE id = $1 FOR UPDATE
`, eventID).Scan(&maxRegistrations)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = events.ErrNotFound
			return nil, err
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	var duplicate bool
	err = tx.QueryRow(ctx, `
SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND member_id = $2)
`, eventID, memberID).Scan(&duplicate)
	if err != nil {
		return nil, fmt.Errorf("check duplicate registration: %w", err)
	}
	if duplicate {
		err = registrations.ErrAlreadyRegistered
		return nil, err
	}

	var count int
	err = tx.QueryRow(ctx, `
SELECT COUNT(*) FROM registrations WHERE event_id = $1
`, eventID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if count >= maxRegistrations {
		err = registrations.ErrCapacityExceeded
		return nil, err
	}

	reg := registrations.Registration{
		ID:             id,
		MemberID:       memberID,
		EventID:        eventID,
		SequentialCode: count + 1,
		CreatedAt:      createdAt,
	}
	_, err = tx.Exec(ctx, `
INSERT INTO registrations (id, member_id, event_id, sequential_code, created_at)
VALUES ($1, $2, $3, $4, $5)
`, reg.ID, reg.MemberID, reg.EventID, reg.SequentialCode, reg.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "registrations_event_member_key") {
			err = registrations.ErrAlreadyRegistered
			return nil, err
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit allocation: %w", err)
	}
	return &reg, nil
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id string) (*registrations.Registration, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, member_id, event_id, sequential_code, created_at
  FROM registrations
 WHERE id = $1
`, id)

	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registrations.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// GetDetail joins the member and event onto the registration in one
// query; certificate issuance needs all three.
func (r *RegistrationRepository) GetDetail(ctx context.Context, id string) (*registrations.Detail, error) {
	row := r.pool.QueryRow(ctx, `
SELECT r.id, r.member_id, r.event_id, r.sequential_code, r.created_at,
       m.id, m.email, m.name, m.birth_date, m.gender, m.password_hash, m.role, m.created_at,
       e.id, e.title, e.description, e.start_date, e.end_date, e.max_registrations, e.categories, e.price, e.created_at, e.updated_at
  FROM registrations r
  JOIN members m ON m.id = r.member_id
  JOIN events e ON e.id = r.event_id
 WHERE r.id = $1
`, id)

	var (
		detail      registrations.Detail
		regCreated  pgtype.Timestamptz
		birthDate   pgtype.Date
		gender      *string
		mCreated    pgtype.Timestamptz
		description *string
		startDate   pgtype.Timestamptz
		endDate     pgtype.Timestamptz
		eCreated    pgtype.Timestamptz
		eUpdated    pgtype.Timestamptz
	)
	err := row.Scan(
		&detail.ID,
		&detail.MemberID,
		&detail.EventID,
		&detail.SequentialCode,
		&regCreated,
		&detail.Member.ID,
		&detail.Member.Email,
		&detail.Member.Name,
		&birthDate,
		&gender,
		&detail.Member.PasswordHash,
		&detail.Member.Role,
		&mCreated,
		&detail.Event.ID,
		&detail.Event.Title,
		&description,
		&startDate,
		&endDate,
		&detail.Event.MaxRegistrations,
		&detail.Event.Categories,
		&detail.Event.Price,
		&eCreated,
		&eUpdated,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, registrations.ErrNotFound
		}
		return nil, fmt.Errorf("get registration detail: %w", err)
	}

	detail.CreatedAt = timestampValue(regCreated)
	if birthDate.Valid {
		value := birthDate.Time
		detail.Member.BirthDate = &value
	}
	detail.Member.Gender = derefString(gender)
	detail.Member.CreatedAt = timestampValue(mCreated)
	detail.Event.Description = derefString(description)
	detail.Event.StartDate = timestampValue(startDate)
	detail.Event.EndDate = timestampValue(endDate)
	detail.Event.CreatedAt = timestampValue(eCreated)
	detail.Event.UpdatedAt = timestampValue(eUpdated)
	return &detail, nil
}

func (r *RegistrationRepository) ListForEvent(ctx context.Context, eventID string) ([]registrations.Registration, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, member_id, event_id, sequential_code, created_at
  FROM registrations
 WHERE event_id = $1
 ORDER BY sequential_code ASC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var result []registrations.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		result = append(result, *reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return result, nil
}

func scanRegistration(row rowScanner) (*registrations.Registration, error) {
	var (
		reg       registrations.Registration
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(&reg.ID, &reg.MemberID, &reg.EventID, &reg.SequentialCode, &createdAt); err != nil {
		return nil, err
	}
	reg.CreatedAt = timestampValue(createdAt)
	return &reg, nil
}
