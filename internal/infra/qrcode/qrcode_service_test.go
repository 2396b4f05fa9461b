package qrcode

import (
	"encoding/json"
	"testing"

	"numatu/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmationPayload(t *testing.T, data QRCodeData) string {
	t.Helper()

	jsonData, err := json.Marshal(data)
	require.NoError(t, err)

	return string(jsonData)
}

func TestNewQRCodeService(t *testing.T) {
	tests := []struct {
		name                 string
		size                 int
		errorCorrectionLevel string
	}{
		{"Low error correction", 256, "L"},
		{"Medium error correction", 256, "m"},
		{"High error correction", 256, "Q"},
		{"Highest error correction", 256, "H"},
		{"Default error correction", 256, "invalid"},
		{"Default size", 0, "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewQRCodeService(tt.size, tt.errorCorrectionLevel)
			assert.NotNil(t, svc)
		})
	}
}

func TestNewFromConfig(t *testing.T) {
	svc := NewFromConfig(&config.Config{}).(*qrcodeService)
	assert.Equal(t, defaultSize, svc.size)

	svc = NewFromConfig(&config.Config{QRCode: &config.QRCodeConfig{Size: 512, ErrorCorrectionLevel: "H"}}).(*qrcodeService)
	assert.Equal(t, 512, svc.size)
}

func TestQRCodeService_GenerateConfirmationQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	qrBytes, err := svc.GenerateConfirmationQR(uuid.New(), "482913")
	require.NoError(t, err)
	require.NotEmpty(t, qrBytes)

	// PNG magic number
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, qrBytes[:4])
}

func TestQRCodeService_GenerateConfirmationQR_BadCode(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.GenerateConfirmationQR(uuid.New(), "12")
	assert.ErrorContains(t, err, "invalid confirmation code length")
}

func TestQRCodeService_ParseConfirmationQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	collectionID := uuid.New()

	parsedID, code, err := svc.ParseConfirmationQR(confirmationPayload(t, QRCodeData{
		CollectionID: collectionID.String(),
		Code:         "007311",
		Type:         "confirmation",
	}))
	require.NoError(t, err)
	assert.Equal(t, collectionID, parsedID)
	assert.Equal(t, "007311", code)
}

func TestQRCodeService_ParseConfirmationQR_Errors(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"invalid json", "invalid json", "failed to unmarshal QR code data"},
		{"wrong type", confirmationPayload(t, QRCodeData{CollectionID: uuid.NewString(), Code: "123456", Type: "subscription"}), "invalid QR code type"},
		{"bad uuid", confirmationPayload(t, QRCodeData{CollectionID: "not-a-valid-uuid", Code: "123456", Type: "confirmation"}), "failed to parse collection ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.ParseConfirmationQR(tt.payload)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
