package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceLate    AttendanceStatus = "Late"
	AttendanceHalfDay AttendanceStatus = "Half-day"
	AttendanceOnLeave AttendanceStatus = "On Leave"
)

type AttendanceRecord struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID   string             `json:"staff_id" bson:"staff_id,omitempty"`
	Date      string             `json:"date" bson:"date,omitempty"`
	Status    AttendanceStatus   `json:"status" bson:"status,omitempty"`
	CheckIn   string             `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut  string             `json:"check_out,omitempty" bson:"check_out,omitempty"`
	Notes     string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type AttendanceMarkPayload struct {
	StaffID  string           `json:"staff_id" validate:"required"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status   AttendanceStatus `json:"status" validate:"required,oneof=Present Absent Late Half-day 'On Leave'"`
	CheckIn  string           `json:"check_in" validate:"omitempty,datetime=15:04"`
	CheckOut string           `json:"check_out" validate:"omitempty,datetime=15:04"`
	Notes    string           `json:"notes" validate:"omitempty,max=500"`
}

type AttendanceBulkMarkPayload struct {
	StaffIDs []string         `json:"staff_ids" validate:"required,min=1,dive,required"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status   AttendanceStatus `json:"status" validate:"required,oneof=Present Absent Late Half-day 'On Leave'"`
}

type AttendanceWithStaff struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	StaffID         string             `json:"staff_id" bson:"staff_id"`
	Date            string             `json:"date" bson:"date"`
	Status          AttendanceStatus   `json:"status" bson:"status"`
	CheckIn         string             `json:"check_in,omitempty" bson:"check_in,omitempty"`
	CheckOut        string             `json:"check_out,omitempty" bson:"check_out,omitempty"`
	Notes           string             `json:"notes,omitempty" bson:"notes,omitempty"`
	StaffName       string             `json:"staff_name" bson:"staff_name"`
	StaffEmail      string             `json:"staff_email" bson:"staff_email"`
	StaffRole       string             `json:"staff_role,omitempty" bson:"staff_role,omitempty"`
	StaffDepartment Department         `json:"staff_department,omitempty" bson:"staff_department,omitempty"`
}

// AllowsTimes reports whether a status carries check-in/check-out times.
// Only Present and Late do; every other status stores empty times no
// matter what the caller supplied.
func (s AttendanceStatus) AllowsTimes() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// NormalizeTimes applies the time-gating rule to caller-supplied
// check-in/check-out values.
func NormalizeTimes(status AttendanceStatus, checkIn, checkOut string) (string, string) {
	if !status.AllowsTimes() {
		return "", ""
	}
	return checkIn, checkOut
}

// ComputeAttendanceRate derives the daily rate over a record set:
// round(100 * (present + late) / totalActiveStaff). Late counts toward the
// rate; Absent, Half-day and On Leave do not. Zero active staff yields 0.
func ComputeAttendanceRate(records []AttendanceRecord, totalActiveStaff int64) int {
	if totalActiveStaff == 0 {
		return 0
	}
	var counted int64
	for _, r := range records {
		if r.Status == AttendancePresent || r.Status == AttendanceLate {
			counted++
		}
	}
	return int(math.Round(100 * float64(counted) / float64(totalActiveStaff)))
}
