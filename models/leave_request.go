package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/pkg/apperr"
)

type LeaveType string

const (
	LeaveSick      LeaveType = "Sick"
	LeaveCasual    LeaveType = "Casual"
	LeaveVacation  LeaveType = "Vacation"
	LeaveMaternity LeaveType = "Maternity"
	LeaveEmergency LeaveType = "Emergency"
)

type LeaveStatus string

const (
	LeavePending  LeaveStatus = "Pending"
	LeaveApproved LeaveStatus = "Approved"
	LeaveRejected LeaveStatus = "Rejected"
)

type LeaveRequest struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID       string             `json:"staff_id" bson:"staff_id,omitempty"`
	Type          LeaveType          `json:"type" bson:"type,omitempty"`
	StartDate     string             `json:"start_date" bson:"start_date,omitempty"`
	EndDate       string             `json:"end_date" bson:"end_date,omitempty"`
	Duration      int                `json:"duration" bson:"duration,omitempty"`
	Reason        string             `json:"reason" bson:"reason,omitempty"`
	Status        LeaveStatus        `json:"status" bson:"status,omitempty"`
	AppliedDate   string             `json:"applied_date" bson:"applied_date,omitempty"`
	Note          string             `json:"note,omitempty" bson:"note,omitempty"`
	AttachmentURL string             `json:"attachment_url,omitempty" bson:"attachment_url,omitempty"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type LeaveRequestCreatePayload struct {
	StaffID   string    `json:"staff_id" validate:"required"`
	Type      LeaveType `json:"type" validate:"required,oneof=Sick Casual Vacation Maternity Emergency"`
	StartDate string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string    `json:"end_date" validate:"required,datetime=2006-01-02,gtefield=StartDate"`
	Reason    string    `json:"reason" validate:"required,min=10,max=500"`
}

type LeaveDecisionPayload struct {
	Decision string `json:"decision" validate:"required,oneof=Approve Reject"`
	Note     string `json:"note,omitempty" validate:"omitempty,max=500"`
}

type LeaveRequestWithStaff struct {
	LeaveRequest `bson:",inline"`
	StaffName    string     `json:"staff_name" bson:"staff_name"`
	StaffEmail   string     `json:"staff_email" bson:"staff_email"`
	Department   Department `json:"department,omitempty" bson:"department,omitempty"`
}

// Decidable reports whether the request still accepts a decision.
// Approved and Rejected are terminal.
func (lr *LeaveRequest) Decidable() bool {
	return lr.Status == LeavePending
}

// LeaveDuration computes the inclusive day count between two dates.
func LeaveDuration(startDate, endDate string) (int, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0, apperr.Validationf("invalid start date %q", startDate)
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0, apperr.Validationf("invalid end date %q", endDate)
	}
	if end.Before(start) {
		return 0, apperr.Validationf("end date %s is before start date %s", endDate, startDate)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}
