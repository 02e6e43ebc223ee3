package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func directoryFixture() []StaffMember {
	return []StaffMember{
		{StaffID: "FAC001", Department: DepartmentTeaching, Status: StaffActive, Salary: 75000},
		{StaffID: "FAC002", Department: DepartmentTeaching, Status: StaffActive, Salary: 55000},
		{StaffID: "FAC003", Department: DepartmentTeaching, Status: StaffOnLeave, Salary: 60000},
		{StaffID: "STAFF001", Department: DepartmentSupport, Status: StaffActive, Salary: 40000},
		{StaffID: "STAFF002", Department: DepartmentSupport, Status: StaffInactive, Salary: 28000},
		{StaffID: "ADMIN001", Department: DepartmentAdministration, Status: StaffActive, Salary: 60000},
	}
}

func TestComputeDirectoryStats(t *testing.T) {
	stats := ComputeDirectoryStats(directoryFixture(), 2)

	assert.Equal(t, int64(6), stats.TotalStaff)
	assert.Equal(t, int64(2), stats.ActiveTeaching)
	assert.Equal(t, int64(1), stats.OnLeave)
	assert.Equal(t, int64(3), stats.PresentToday)
	assert.Equal(t, int64(2), stats.PendingLeaveRequests)

	// 3 present of 6: 50%.
	assert.Equal(t, 50, stats.AttendanceRate)

	// 318000 / 6 = 53000.
	assert.Equal(t, 53000.0, stats.AverageSalary)
}

func TestComputeDirectoryStatsDepartmentOrder(t *testing.T) {
	stats := ComputeDirectoryStats(directoryFixture(), 0)

	assert.Equal(t, []DepartmentCount{
		{Department: DepartmentTeaching, Count: 3},
		{Department: DepartmentSupport, Count: 2},
		{Department: DepartmentAdministration, Count: 1},
	}, stats.DepartmentCounts)
}

func TestComputeDirectoryStatsEmptyDirectory(t *testing.T) {
	stats := ComputeDirectoryStats(nil, 0)

	assert.Equal(t, int64(0), stats.TotalStaff)
	assert.Equal(t, 0, stats.AttendanceRate)
	assert.Equal(t, 0.0, stats.AverageSalary)
	assert.Len(t, stats.DepartmentCounts, 3)
}

func TestComputeDirectoryStatsIsPure(t *testing.T) {
	staff := directoryFixture()
	first := ComputeDirectoryStats(staff, 1)
	second := ComputeDirectoryStats(staff, 1)

	assert.Equal(t, first, second)
}
