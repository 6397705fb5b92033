package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/attendance"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ attendance.Repository = (*AttendanceRepository)(nil)

// CreateIfAbsent relies on the (event_id, member_id) unique index: the
// insert is attempted with ON CONFLICT DO NOTHING and the winner is
// re-read when the row already existed. No pre-check, no race window.
func (r *AttendanceRepository) CreateIfAbsent(ctx context.Context, record attendance.Attendance) (*attendance.Attendance, bool, error) {
	tag, err := r.pool.Exec(ctx, `
INSERT INTO attendance (id, member_id, event_id, attended_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (event_id, member_id) DO NOTHING
`, record.ID, record.MemberID, record.EventID, record.AttendedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert attendance: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return &record, true, nil
	}

	existing, err := r.getByMemberEvent(ctx, record.MemberID, record.EventID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *AttendanceRepository) getByMemberEvent(ctx context.Context, memberID, eventID string) (*attendance.Attendance, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, member_id, event_id, attended_at
  FROM attendance
 WHERE member_id = $1 AND event_id = $2
`, memberID, eventID)

	record, err := scanAttendance(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrNotFound
		}
		return nil, fmt.Errorf("get attendance: %w", err)
	}
	return record, nil
}

func (r *AttendanceRepository) ListForEvent(ctx context.Context, eventID string) ([]attendance.Attendance, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, member_id, event_id, attended_at
  FROM attendance
 WHERE event_id = $1
 ORDER BY attended_at ASC
`, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	var result []attendance.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		result = append(result, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance: %w", err)
	}
	return result, nil
}

func scanAttendance(row rowScanner) (*attendance.Attendance, error) {
	var (
		record     attendance.Attendance
		attendedAt pgtype.Timestamptz
	)
	if err := row.Scan(&record.ID, &record.MemberID, &record.EventID, &attendedAt); err != nil {
		return nil, err
	}
	record.AttendedAt = timestampValue(attendedAt)
	return &record, nil
}
