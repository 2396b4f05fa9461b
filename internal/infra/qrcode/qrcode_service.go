package qrcode

import (
	"encoding/json"
	"fmt"
	"strings"

	"numatu/config"
	"numatu/internal/domain/lifecycle"
	"numatu/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

const (
	confirmationType = "confirmation"
	defaultSize      = 256
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// QRCodeData represents the QR code data structure
type QRCodeData struct {
	CollectionID string `json:"collection_id"`
	Code         string `json:"code"`
	Type         string `json:"type"`
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch strings.ToUpper(errorCorrectionLevel) {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	if size <= 0 {
		size = defaultSize
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// NewFromConfig builds the service from the qrcode section, defaults when absent
func NewFromConfig(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return NewQRCodeService(defaultSize, "M")
	}

	return NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

// GenerateConfirmationQR renders the collection's confirmation code as a PNG
func (s *qrcodeService) GenerateConfirmationQR(collectionID uuid.UUID, code string) ([]byte, error) {
	if len(code) != lifecycle.CodeLength {
		return nil, fmt.Errorf("invalid confirmation code length: %d", len(code))
	}

	data := QRCodeData{
		CollectionID: collectionID.String(),
		Code:         code,
		Type:         confirmationType,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal QR code data: %w", err)
	}

	qrCode, err := qrcode.New(string(jsonData), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseConfirmationQR parses scanned QR data into the collection ID and code
func (s *qrcodeService) ParseConfirmationQR(qrData string) (uuid.UUID, string, error) {
	var data QRCodeData
	if err := json.Unmarshal([]byte(qrData), &data); err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to unmarshal QR code data: %w", err)
	}

	if data.Type != confirmationType {
		return uuid.Nil, "", fmt.Errorf("invalid QR code type: %s", data.Type)
	}

	collectionID, err := uuid.Parse(data.CollectionID)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse collection ID: %w", err)
	}

	return collectionID, data.Code, nil
}
