package service

import "github.com/google/uuid"

// QRCodeService defines the interface for generating store QR codes. A printed
// code on the counter takes a customer straight to the store's rating page.
type QRCodeService interface {
	// GenerateStoreQR renders a PNG QR code encoding the store reference.
	GenerateStoreQR(storeID uuid.UUID) ([]byte, error)

	// ParseStoreQR decodes QR payload data back into a store ID.
	ParseStoreQR(qrData string) (uuid.UUID, error)
}
