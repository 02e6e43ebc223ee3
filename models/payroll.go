package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/pkg/payroll"
)

type PayrollStatus string

const (
	PayrollPending    PayrollStatus = "Pending"
	PayrollProcessing PayrollStatus = "Processing"
	PayrollPaid       PayrollStatus = "Paid"
)

// CanAdvanceTo reports whether a payroll record may move to the given
// status. The advance is external and forward-only:
// Pending -> Processing -> Paid.
func (s PayrollStatus) CanAdvanceTo(next PayrollStatus) bool {
	switch s {
	case PayrollPending:
		return next == PayrollProcessing
	case PayrollProcessing:
		return next == PayrollPaid
	default:
		return false
	}
}

type PayrollRecord struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID           string             `json:"staff_id" bson:"staff_id,omitempty"`
	Month             string             `json:"month" bson:"month,omitempty"`
	payroll.Breakdown `bson:",inline"`
	PaymentDate       string        `json:"payment_date" bson:"payment_date,omitempty"`
	Status            PayrollStatus `json:"status" bson:"status,omitempty"`
	PaidAt            *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
	CreatedAt         time.Time     `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt         time.Time     `json:"updated_at" bson:"updated_at,omitempty"`
}

type PayrollProcessPayload struct {
	Month      string     `json:"month" validate:"required,datetime=2006-01"`
	Department Department `json:"department,omitempty" validate:"omitempty,oneof=Teaching Support Administration"`
}

type PayrollStatusPayload struct {
	Status PayrollStatus `json:"status" validate:"required,oneof=Processing Paid"`
}

type PayslipPayload struct {
	Month string `json:"month" validate:"required,datetime=2006-01"`
}
