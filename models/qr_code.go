package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRCode is a one-day check-in token. Staff scanning it before it expires
// are checked in (first scan) or out (second scan).
type QRCode struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code      string             `json:"code" bson:"code,omitempty"`
	Date      string             `json:"date" bson:"date,omitempty"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expires_at,omitempty"`
	UsedBy    []string           `json:"used_by" bson:"used_by,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type QRCodeScanPayload struct {
	QRCodeValue string `json:"qr_code_value" validate:"required"`
	StaffID     string `json:"staff_id" validate:"required"`
}
