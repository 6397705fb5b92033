package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ events.Repository = (*EventRepository)(nil)

func (r *EventRepository) Create(ctx context.Context, event events.Event) (*events.Event, error) {
	_, err := r.pool.Exec(ctx, `
INSERT INTO events (id, title, description, start_date, end_date, max_registrations, categories, price, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`,
		event.ID,
		event.Title,
		event.Description,
		event.StartDate,
		event.EndDate,
		event.MaxRegistrations,
		event.Categories,
		event.Price,
		event.CreatedAt,
		event.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, title, description, start_date, end_date, max_registrations, categories, price, created_at, updated_at
  FROM events
 ORDER BY start_date ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var result []events.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		result = append(result, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return result, nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, title, description, start_date, end_date, max_registrations, categories, price, created_at, updated_at
  FROM events
 WHERE id = $1
`, id)

	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// Update applies only the non-nil fields via COALESCE so a partial
// update never clobbers untouched columns.
func (r *EventRepository) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	var categories any
	if params.Categories != nil {
		categories = params.Categories
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE events
   SET title             = COALESCE($2, title),
       description       = COALESCE($3, description),
       start_date        = COALESCE($4, start_date),
       end_date          = COALESCE($5, end_date),
       max_registrations = COALESCE($6, max_registrations),
       categories        = COALESCE($7, categories),
       price             = COALESCE($8, price),
       updated_at        = now()
 WHERE id = $1
`,
		id,
		params.Title,
		params.Description,
		params.StartDate,
		params.EndDate,
		params.MaxRegistrations,
		categories,
		params.Price,
	)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, events.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func scanEvent(row rowScanner) (*events.Event, error) {
	var (
		event       events.Event
		description *string
		startDate   pgtype.Timestamptz
		endDate     pgtype.Timestamptz
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&description,
		&startDate,
		&endDate,
		&event.MaxRegistrations,
		&event.Categories,
		&event.Price,
		&createdAt,
		&updatedAt,
	); err != nil {
		return nil, err
	}
	event.Description = derefString(description)
	event.StartDate = timestampValue(startDate)
	event.EndDate = timestampValue(endDate)
	event.CreatedAt = timestampValue(createdAt)
	event.UpdatedAt = timestampValue(updatedAt)
	return &event, nil
}

func timestampValue(ts pgtype.Timestamptz) time.Time {
	if !ts.Valid {
		return time.Time{}
	}
	return ts.Time
}
