// Package certificates issues and verifies participation certificates.
//
// A certificate belongs to exactly one registration. Its verification
// payload is derived, never stored: the registration id and the
// registration's sequential code, joined as "<id>|<code>".
package certificates

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("certificate not found")

type Certificate struct {
	ID             string
	RegistrationID string
	FilePath       string
	IssuedAt       time.Time
}

// Payload builds the verification payload encoded into the QR code.
func Payload(registrationID string, sequentialCode int) string {
	return fmt.Sprintf("%s|%d", registrationID, sequentialCode)
}

type Repository interface {
	// CreateIfAbsent inserts the certificate unless one already exists
	// for the registration, returning the existing one with
	// created=false. Uniqueness per registration is enforced by the
	// store, not by a pre-check.
	CreateIfAbsent(ctx context.Context, cert Certificate) (result *Certificate, created bool, err error)

	GetByRegistration(ctx context.Context, registrationID string) (*Certificate, error)
}
