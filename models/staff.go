package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Department string

const (
	DepartmentTeaching       Department = "Teaching"
	DepartmentSupport        Department = "Support"
	DepartmentAdministration Department = "Administration"
)

// Departments lists the department categories in their canonical order.
func Departments() []Department {
	return []Department{DepartmentTeaching, DepartmentSupport, DepartmentAdministration}
}

type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "Full-time"
	EmploymentPartTime EmploymentType = "Part-time"
	EmploymentContract EmploymentType = "Contract"
)

type StaffStatus string

const (
	StaffActive   StaffStatus = "Active"
	StaffOnLeave  StaffStatus = "On Leave"
	StaffInactive StaffStatus = "Inactive"
)

type LeaveBalance struct {
	Casual   int `json:"casual" bson:"casual"`
	Sick     int `json:"sick" bson:"sick"`
	Vacation int `json:"vacation" bson:"vacation"`
}

// DefaultLeaveBalance is assigned when a new staff member is created
// without explicit balances.
func DefaultLeaveBalance() *LeaveBalance {
	return &LeaveBalance{Casual: 12, Sick: 12, Vacation: 18}
}

type StaffMember struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	StaffID        string             `json:"staff_id" bson:"staff_id,omitempty"`
	Name           string             `json:"name" bson:"name,omitempty"`
	Email          string             `json:"email" bson:"email,omitempty"`
	Phone          string             `json:"phone" bson:"phone,omitempty"`
	Role           string             `json:"role" bson:"role,omitempty"`
	Department     Department         `json:"department" bson:"department,omitempty"`
	EmploymentType EmploymentType     `json:"employment_type" bson:"employment_type,omitempty"`
	Status         StaffStatus        `json:"status" bson:"status,omitempty"`
	Salary         float64            `json:"salary" bson:"salary,omitempty"`
	Address        string             `json:"address,omitempty" bson:"address,omitempty"`
	Qualification  string             `json:"qualification,omitempty" bson:"qualification,omitempty"`
	JoinDate       string             `json:"join_date,omitempty" bson:"join_date,omitempty"`
	LeaveBalance   *LeaveBalance      `json:"leave_balance,omitempty" bson:"leave_balance,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at,omitempty"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at,omitempty"`
}

type StaffCreatePayload struct {
	Name           string         `json:"name" validate:"required,min=3,max=100"`
	Email          string         `json:"email" validate:"required,email"`
	Phone          string         `json:"phone" validate:"required,min=6,max=20"`
	Role           string         `json:"role" validate:"required,min=2,max=100"`
	Department     Department     `json:"department" validate:"required,oneof=Teaching Support Administration"`
	EmploymentType EmploymentType `json:"employment_type" validate:"required,oneof=Full-time Part-time Contract"`
	Salary         float64        `json:"salary" validate:"min=0"`
	Address        string         `json:"address" validate:"omitempty,min=5,max=255"`
	Qualification  string         `json:"qualification" validate:"omitempty,max=255"`
	JoinDate       string         `json:"join_date" validate:"omitempty,datetime=2006-01-02"`
	LeaveBalance   *LeaveBalance  `json:"leave_balance"`
}

// StaffUpdatePayload deliberately has no staff_id field: the identifier is
// immutable once assigned and cannot be expressed in an update.
type StaffUpdatePayload struct {
	Name           string         `json:"name,omitempty" validate:"omitempty,min=3,max=100"`
	Email          string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone          string         `json:"phone,omitempty" validate:"omitempty,min=6,max=20"`
	Role           string         `json:"role,omitempty" validate:"omitempty,min=2,max=100"`
	Department     Department     `json:"department,omitempty" validate:"omitempty,oneof=Teaching Support Administration"`
	EmploymentType EmploymentType `json:"employment_type,omitempty" validate:"omitempty,oneof=Full-time Part-time Contract"`
	Status         StaffStatus    `json:"status,omitempty" validate:"omitempty,oneof=Active 'On Leave' Inactive"`
	Salary         *float64       `json:"salary,omitempty" validate:"omitempty,min=0"`
	Address        string         `json:"address,omitempty" validate:"omitempty,min=5,max=255"`
	Qualification  string         `json:"qualification,omitempty" validate:"omitempty,max=255"`
	JoinDate       string         `json:"join_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	LeaveBalance   *LeaveBalance  `json:"leave_balance,omitempty"`
}

// StaffFilter composes the directory listing filters. Q is a
// case-insensitive substring match over name, staff id, role and email;
// the exact-match fields are combined with it conjunctively.
type StaffFilter struct {
	Q              string
	Department     Department
	EmploymentType EmploymentType
	Status         StaffStatus
}
