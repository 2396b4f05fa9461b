package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GenerateConfirmationQR renders the code a collector shows to the generator on site
	GenerateConfirmationQR(collectionID uuid.UUID, code string) ([]byte, error)

	// ParseConfirmationQR parses scanned QR data and returns the collection ID and code
	ParseConfirmationQR(qrData string) (uuid.UUID, string, error)
}
