package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/certificates"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var _ certificates.Repository = (*CertificateRepository)(nil)

// CreateIfAbsent enforces one certificate per registration through the
// unique index on registration_id; a lost race re-reads the winner.
func (r *CertificateRepository) CreateIfAbsent(ctx context.Context, cert certificates.Certificate) (*certificates.Certificate, bool, error) {
	tag, err := r.pool.Exec(ctx, `
INSERT INTO certificates (id, registration_id, file_path, issued_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (registration_id) DO NOTHING
`, cert.ID, cert.RegistrationID, cert.FilePath, cert.IssuedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert certificate: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return &cert, true, nil
	}

	existing, err := r.GetByRegistration(ctx, cert.RegistrationID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *CertificateRepository) GetByRegistration(ctx context.Context, registrationID string) (*certificates.Certificate, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, registration_id, file_path, issued_at
  FROM certificates
 WHERE registration_id = $1
`, registrationID)

	var (
		cert     certificates.Certificate
		issuedAt pgtype.Timestamptz
	)
	if err := row.Scan(&cert.ID, &cert.RegistrationID, &cert.FilePath, &issuedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, certificates.ErrNotFound
		}
		return nil, fmt.Errorf("get certificate: %w", err)
	}
	cert.IssuedAt = timestampValue(issuedAt)
	return &cert, nil
}
