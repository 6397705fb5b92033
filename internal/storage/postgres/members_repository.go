package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ members.Repository = (*MemberRepository)(nil)

func (r *MemberRepository) Create(ctx context.Context, member members.Member) (*members.Member, error) {
	_, err := r.pool.Exec(ctx, `
INSERT INTO members (id, email, name, birth_date, gender, password_hash, role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`,
		member.ID,
		member.Email,
		member.Name,
		member.BirthDate,
		nullIfEmpty(member.Gender),
		member.PasswordHash,
		member.Role,
		member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "members_email_key") {
			return nil, members.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return &member, nil
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*members.Member, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*members.Member, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *MemberRepository) getBy(ctx context.Context, clause string, arg any) (*members.Member, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, email, name, birth_date, gender, password_hash, role, created_at
  FROM members `+clause, arg)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, members.ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (r *MemberRepository) List(ctx context.Context) ([]members.Member, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, email, name, birth_date, gender, password_hash, role, created_at
  FROM members
 ORDER BY name ASC
`)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var result []members.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		result = append(result, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate members: %w", err)
	}
	return result, nil
}

func (r *MemberRepository) UpdateRole(ctx context.Context, id string, role string) (*members.Member, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE members SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, members.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*members.Member, error) {
	var (
		member    members.Member
		birthDate pgtype.Date
		gender    *string
		createdAt pgtype.Timestamptz
	)
	if err := row.Scan(
		&member.ID,
		&member.Email,
		&member.Name,
		&birthDate,
		&gender,
		&member.PasswordHash,
		&member.Role,
		&createdAt,
	); err != nil {
		return nil, err
	}
	if birthDate.Valid {
		value := birthDate.Time
		member.BirthDate = &value
	}
	member.Gender = derefString(gender)
	if createdAt.Valid {
		member.CreatedAt = createdAt.Time
	}
	return &member, nil
}

func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func derefString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
