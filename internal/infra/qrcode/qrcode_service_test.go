package qrcode

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStoreQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	storeID := uuid.New()

	pngBytes, err := svc.GenerateStoreQR(storeID)
	require.NoError(t, err)
	assert.NotEmpty(t, pngBytes)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, pngBytes[:4])
}

func TestParseStoreQR(t *testing.T) {
	svc := NewQRCodeService(256, "M")
	storeID := uuid.New()

	payload, err := json.Marshal(QRCodeData{StoreID: storeID.String(), Type: "store"})
	require.NoError(t, err)

	parsed, err := svc.ParseStoreQR(string(payload))
	require.NoError(t, err)
	assert.Equal(t, storeID, parsed)
}

func TestParseStoreQR_InvalidType(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	payload, err := json.Marshal(QRCodeData{StoreID: uuid.New().String(), Type: "subscription"})
	require.NoError(t, err)

	_, err = svc.ParseStoreQR(string(payload))
	assert.Error(t, err)
}

func TestParseStoreQR_InvalidJSON(t *testing.T) {
	svc := NewQRCodeService(256, "M")

	_, err := svc.ParseStoreQR("not json")
	assert.Error(t, err)
}
