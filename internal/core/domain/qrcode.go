package domain

import (
	"encoding/base64"
	"time"
)

// QRCodeRecord is the wire form of one entry of GET /api/qr-codes/{userId}.
// ImageData marshals as standard base64.
type QRCodeRecord struct {
	ImageData []byte `json:"image_data"`
	MimeType  string `json:"mime_type"`
}

// DataURI renders the record as an inline image source.
func (r QRCodeRecord) DataURI() string {
	return "data:" + r.MimeType + ";base64," + base64.StdEncoding.EncodeToString(r.ImageData)
}

// QRCode is a stored QR image uploaded by a user.
type QRCode struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ImageData  []byte    `json:"-"`
	Filename   string    `json:"filename"`
	MimeType   string    `json:"mime_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Record converts a stored QR code to its listing form.
func (q QRCode) Record() QRCodeRecord {
	return QRCodeRecord{ImageData: q.ImageData, MimeType: q.MimeType}
}
