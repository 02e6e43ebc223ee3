package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimesKeepsPresentAndLate(t *testing.T) {
	in, out := NormalizeTimes(AttendancePresent, "09:00", "17:00")
	assert.Equal(t, "09:00", in)
	assert.Equal(t, "17:00", out)

	in, out = NormalizeTimes(AttendanceLate, "09:42", "")
	assert.Equal(t, "09:42", in)
	assert.Equal(t, "", out)
}

func TestNormalizeTimesDropsForOtherStatuses(t *testing.T) {
	for _, status := range []AttendanceStatus{AttendanceAbsent, AttendanceHalfDay, AttendanceOnLeave} {
		in, out := NormalizeTimes(status, "09:00", "17:00")
		assert.Empty(t, in, "status %s", status)
		assert.Empty(t, out, "status %s", status)
	}
}

func TestComputeAttendanceRate(t *testing.T) {
	records := []AttendanceRecord{
		{Status: AttendancePresent},
		{Status: AttendancePresent},
		{Status: AttendanceLate},
		{Status: AttendanceAbsent},
		{Status: AttendanceHalfDay},
		{Status: AttendanceOnLeave},
	}

	// 3 counted out of 7 active: 42.857 rounds to 43.
	assert.Equal(t, 43, ComputeAttendanceRate(records, 7))
}

func TestComputeAttendanceRateZeroActiveStaff(t *testing.T) {
	records := []AttendanceRecord{{Status: AttendancePresent}}
	assert.Equal(t, 0, ComputeAttendanceRate(records, 0))
}

func TestComputeAttendanceRateNoRecords(t *testing.T) {
	assert.Equal(t, 0, ComputeAttendanceRate(nil, 12))
}
