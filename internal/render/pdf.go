package render

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/metrics"
	"github.com/go-pdf/fpdf"
	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// PDFRenderer renders an A4 landscape participation certificate with
// the verification QR code and writes it under OutputDir as
// cert-<registrationID>.pdf.
type PDFRenderer struct {
	outputDir string
	logger    zerolog.Logger
}

func NewPDFRenderer(outputDir string, logger zerolog.Logger) *PDFRenderer {
	return &PDFRenderer{
		outputDir: outputDir,
		logger:    logger.With().Str("component", "render").Logger(),
	}
}

func (r *PDFRenderer) Render(ctx context.Context, data CertificateData) (string, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}

	qrPNG, err := qrcode.Encode(data.Payload, qrcode.Medium, qrImageSize)
	if err != nil {
		return "", fmt.Errorf("encode qr payload: %w", err)
	}

	doc := fpdf.New(fpdf.OrientationLandscape, fpdf.UnitMillimeter, fpdf.PageSizeA4, "")
	doc.AddPage()
	pageWidth, _ := doc.GetPageSize()

	doc.SetFont("Helvetica", "B", 36)
	doc.SetY(30)
	doc.CellFormat(pageWidth-20, 16, "Certificate of Participation", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 16)
	doc.Ln(8)
	doc.CellFormat(pageWidth-20, 10, "This certifies that", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 24)
	doc.CellFormat(pageWidth-20, 14, data.ParticipantName, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 16)
	doc.CellFormat(pageWidth-20, 10, "has successfully participated in", "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(pageWidth-20, 12, data.EventTitle, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 14)
	doc.Ln(4)
	doc.CellFormat(pageWidth-20, 8, fmt.Sprintf("Code: %d", data.SequentialCode), "", 1, "C", false, 0, "")

	imageOpts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	const qrSide = 40.0
	doc.ImageOptions("qr", (pageWidth-qrSide)/2, doc.GetY()+6, qrSide, qrSide, false, imageOpts, 0, "")

	if doc.Err() {
		return "", fmt.Errorf("render certificate: %v", doc.Error())
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("render certificate: %w", err)
	}

	outputPath := filepath.Join(r.outputDir, fmt.Sprintf("cert-%s.pdf", data.RegistrationID))
	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("write certificate document: %w", err)
	}

	metrics.CertificateRenderDuration.Observe(time.Since(start).Seconds())
	r.logger.Debug().
		Str("registration_id", data.RegistrationID).
		Str("path", outputPath).
		Msg("certificate rendered")
	return outputPath, nil
}
