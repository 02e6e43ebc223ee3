package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-administration/models"
	"staff-administration/pkg/keylock"
)

func newLeaveApp(staffRepo *fakeStaffRepo, leaveRepo *fakeLeaveRepo) *fiber.App {
	h := NewLeaveRequestHandler(leaveRepo, staffRepo, keylock.New())
	app := fiber.New()
	app.Post("/leave-requests", h.CreateLeaveRequest)
	app.Get("/leave-requests", h.GetAllLeaveRequests)
	app.Get("/leave-requests/staff/:staffId", h.GetStaffLeaveRequests)
	app.Put("/leave-requests/:id/decision", h.DecideLeaveRequest)
	return app
}

func pendingRequestFixture(staffRepo *fakeStaffRepo, leaveRepo *fakeLeaveRepo) *models.LeaveRequest {
	staffRepo.Create(nil, &models.StaffMember{
		StaffID:    "FAC001",
		Name:       "Amelia Hart",
		Department: models.DepartmentTeaching,
		Status:     models.StaffActive,
	})
	req := &models.LeaveRequest{
		StaffID:   "FAC001",
		Type:      models.LeaveVacation,
		StartDate: "2025-12-20",
		EndDate:   "2025-12-27",
		Duration:  8,
		Reason:    "Family trip over the holidays",
		Status:    models.LeavePending,
	}
	leaveRepo.Create(nil, req)
	return req
}

func TestCreateLeaveRequestComputesDuration(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	staffRepo.Create(nil, &models.StaffMember{StaffID: "FAC001", Status: models.StaffActive})
	app := newLeaveApp(staffRepo, leaveRepo)

	payload := models.LeaveRequestCreatePayload{
		StaffID:   "FAC001",
		Type:      models.LeaveVacation,
		StartDate: "2025-12-20",
		EndDate:   "2025-12-27",
		Reason:    "Family trip over the holidays",
	}
	resp, err := app.Test(jsonRequest("POST", "/leave-requests", payload))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(8), body["duration"])
	assert.Equal(t, string(models.LeavePending), body["status"])
}

func TestCreateLeaveRequestUnknownStaff(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	app := newLeaveApp(staffRepo, leaveRepo)

	payload := models.LeaveRequestCreatePayload{
		StaffID:   "FAC999",
		Type:      models.LeaveSick,
		StartDate: "2025-12-20",
		EndDate:   "2025-12-21",
		Reason:    "Recovering from the flu",
	}
	resp, err := app.Test(jsonRequest("POST", "/leave-requests", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Empty(t, leaveRepo.requests)
}

func TestCreateLeaveRequestEndBeforeStart(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	staffRepo.Create(nil, &models.StaffMember{StaffID: "FAC001", Status: models.StaffActive})
	app := newLeaveApp(staffRepo, leaveRepo)

	payload := models.LeaveRequestCreatePayload{
		StaffID:   "FAC001",
		Type:      models.LeaveCasual,
		StartDate: "2025-12-27",
		EndDate:   "2025-12-20",
		Reason:    "Dates entered backwards",
	}
	resp, err := app.Test(jsonRequest("POST", "/leave-requests", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestApproveSetsStaffOnLeave(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	req := pendingRequestFixture(staffRepo, leaveRepo)
	app := newLeaveApp(staffRepo, leaveRepo)

	resp, err := app.Test(jsonRequest("PUT", "/leave-requests/"+req.ID.Hex()+"/decision",
		models.LeaveDecisionPayload{Decision: "Approve", Note: "Enjoy"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, models.LeaveApproved, req.Status)
	staff, _ := staffRepo.FindByStaffID(nil, "FAC001")
	assert.Equal(t, models.StaffOnLeave, staff.Status)
}

func TestRejectLeavesStaffStatusAlone(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	req := pendingRequestFixture(staffRepo, leaveRepo)
	app := newLeaveApp(staffRepo, leaveRepo)

	resp, err := app.Test(jsonRequest("PUT", "/leave-requests/"+req.ID.Hex()+"/decision",
		models.LeaveDecisionPayload{Decision: "Reject", Note: "Short staffed that week"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, models.LeaveRejected, req.Status)
	staff, _ := staffRepo.FindByStaffID(nil, "FAC001")
	assert.Equal(t, models.StaffActive, staff.Status)
}

func TestRedecideConflicts(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	req := pendingRequestFixture(staffRepo, leaveRepo)
	app := newLeaveApp(staffRepo, leaveRepo)

	resp, err := app.Test(jsonRequest("PUT", "/leave-requests/"+req.ID.Hex()+"/decision",
		models.LeaveDecisionPayload{Decision: "Approve"}))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Approved is terminal: a second decision, either way, conflicts.
	resp, err = app.Test(jsonRequest("PUT", "/leave-requests/"+req.ID.Hex()+"/decision",
		models.LeaveDecisionPayload{Decision: "Reject"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, models.LeaveApproved, req.Status)
}

func TestApproveOrphanedRequestFailsLoudly(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	req := &models.LeaveRequest{
		StaffID:   "FAC404",
		Type:      models.LeaveSick,
		StartDate: "2025-12-20",
		EndDate:   "2025-12-21",
		Status:    models.LeavePending,
	}
	leaveRepo.Create(nil, req)
	app := newLeaveApp(staffRepo, leaveRepo)

	resp, err := app.Test(jsonRequest("PUT", "/leave-requests/"+req.ID.Hex()+"/decision",
		models.LeaveDecisionPayload{Decision: "Approve"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	// The request stays Pending so the failure is visible and retryable.
	assert.Equal(t, models.LeavePending, req.Status)
}

func TestDecideUnknownRequest(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	app := newLeaveApp(staffRepo, leaveRepo)

	resp, err := app.Test(jsonRequest("PUT", "/leave-requests/64a000000000000000000000/decision",
		models.LeaveDecisionPayload{Decision: "Approve"}))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
