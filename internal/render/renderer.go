// Package render produces certificate documents: a scannable QR code
// carrying the verification payload embedded in a printable PDF.
package render

import "context"

// CertificateData is the structured record a renderer turns into a
// document. Payload is the verification string encoded into the QR
// code; the verifier never decodes it back, truth lives in the
// registration record.
type CertificateData struct {
	RegistrationID  string
	ParticipantName string
	EventTitle      string
	SequentialCode  int
	Payload         string
}

// Renderer converts a certificate record into a stored document and
// returns its location. Rendering is all-or-nothing: on error no
// document location is returned and nothing should be persisted by the
// caller.
type Renderer interface {
	Render(ctx context.Context, data CertificateData) (documentPath string, err error)
}
