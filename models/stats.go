package models

import "math"

type DepartmentCount struct {
	Department Department `json:"department" bson:"department"`
	Count      int64      `json:"count" bson:"count"`
}

type DirectoryStats struct {
	TotalStaff           int64             `json:"total_staff"`
	ActiveTeaching       int64             `json:"active_teaching"`
	PresentToday         int64             `json:"present_today"`
	OnLeave              int64             `json:"on_leave"`
	PendingLeaveRequests int64             `json:"pending_leave_requests"`
	AttendanceRate       int               `json:"attendance_rate"`
	AverageSalary        float64           `json:"average_salary"`
	DepartmentCounts     []DepartmentCount `json:"department_counts"`
}

// ComputeDirectoryStats derives directory-wide statistics from the full
// staff set. Pure: the same inputs always produce the same stats.
// Present-today is the active headcount less those on leave, and the
// attendance rate is that present count over the total, as an integer
// percentage.
func ComputeDirectoryStats(staff []StaffMember, pendingLeaveRequests int64) *DirectoryStats {
	stats := &DirectoryStats{
		TotalStaff:           int64(len(staff)),
		PendingLeaveRequests: pendingLeaveRequests,
	}

	var active, onLeave int64
	var salarySum float64
	perDept := make(map[Department]int64)

	for _, s := range staff {
		perDept[s.Department]++
		salarySum += s.Salary

		switch s.Status {
		case StaffActive:
			active++
			if s.Department == DepartmentTeaching {
				stats.ActiveTeaching++
			}
		case StaffOnLeave:
			onLeave++
		}
	}

	stats.OnLeave = onLeave
	stats.PresentToday = active - onLeave

	if stats.TotalStaff > 0 {
		stats.AttendanceRate = int(math.Round(100 * float64(stats.PresentToday) / float64(stats.TotalStaff)))
		stats.AverageSalary = math.Round(salarySum / float64(stats.TotalStaff))
	}

	for _, d := range Departments() {
		stats.DepartmentCounts = append(stats.DepartmentCounts, DepartmentCount{
			Department: d,
			Count:      perDept[d],
		})
	}

	return stats
}
