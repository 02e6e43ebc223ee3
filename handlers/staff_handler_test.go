package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"staff-administration/models"
	"staff-administration/pkg/keylock"
)

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func newStaffApp(staffRepo *fakeStaffRepo, leaveRepo *fakeLeaveRepo) *fiber.App {
	h := NewStaffHandler(staffRepo, &fakeCounterRepo{}, leaveRepo, keylock.New())
	app := fiber.New()
	app.Post("/staff", h.CreateStaff)
	app.Get("/staff/stats", h.GetDirectoryStats)
	app.Get("/staff/:id", h.GetStaffByID)
	app.Put("/staff/:id", h.UpdateStaff)
	app.Delete("/staff/:id", h.DeleteStaff)
	return app
}

func createPayload(name, email string, dept models.Department) models.StaffCreatePayload {
	return models.StaffCreatePayload{
		Name:           name,
		Email:          email,
		Phone:          "+1-555-0100",
		Role:           "Lecturer",
		Department:     dept,
		EmploymentType: models.EmploymentFullTime,
		Salary:         55000,
	}
}

func TestCreateStaffAssignsSequentialIDs(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	app := newStaffApp(staffRepo, &fakeLeaveRepo{staffRepo: staffRepo})

	resp, err := app.Test(jsonRequest("POST", "/staff", createPayload("Amelia Hart", "amelia@x.test", models.DepartmentTeaching)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, "FAC001", decodeBody(t, resp)["staff_id"])

	resp, err = app.Test(jsonRequest("POST", "/staff", createPayload("Rajan Mehta", "rajan@x.test", models.DepartmentTeaching)))
	require.NoError(t, err)
	assert.Equal(t, "FAC002", decodeBody(t, resp)["staff_id"])

	// Each department runs its own sequence.
	resp, err = app.Test(jsonRequest("POST", "/staff", createPayload("Sofia Alvarez", "sofia@x.test", models.DepartmentSupport)))
	require.NoError(t, err)
	assert.Equal(t, "STAFF001", decodeBody(t, resp)["staff_id"])
}

func TestCreateStaffDefaultsLeaveBalanceAndStatus(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	app := newStaffApp(staffRepo, &fakeLeaveRepo{staffRepo: staffRepo})

	resp, err := app.Test(jsonRequest("POST", "/staff", createPayload("Mei Tanaka", "mei@x.test", models.DepartmentAdministration)))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	created, _ := staffRepo.FindByStaffID(nil, "ADMIN001")
	require.NotNil(t, created)
	assert.Equal(t, models.StaffActive, created.Status)
	require.NotNil(t, created.LeaveBalance)
	assert.Equal(t, 12, created.LeaveBalance.Casual)
	assert.Equal(t, 12, created.LeaveBalance.Sick)
	assert.Equal(t, 18, created.LeaveBalance.Vacation)
}

func TestCreateStaffValidation(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	app := newStaffApp(staffRepo, &fakeLeaveRepo{staffRepo: staffRepo})

	payload := createPayload("Bo", "not-an-email", models.DepartmentTeaching)
	resp, err := app.Test(jsonRequest("POST", "/staff", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, staffRepo.staff)
}

func TestCreateStaffRejectsUnknownDepartment(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	app := newStaffApp(staffRepo, &fakeLeaveRepo{staffRepo: staffRepo})

	payload := createPayload("Amelia Hart", "amelia@x.test", "Engineering")
	resp, err := app.Test(jsonRequest("POST", "/staff", payload))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetStaffByHumanReadableID(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	app := newStaffApp(staffRepo, &fakeLeaveRepo{staffRepo: staffRepo})

	_, err := app.Test(jsonRequest("POST", "/staff", createPayload("Amelia Hart", "amelia@x.test", models.DepartmentTeaching)))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/staff/FAC001", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/staff/FAC999", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteStaffKeepsHistoryIntact(t *testing.T) {
	staffRepo := &fakeStaffRepo{}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	app := newStaffApp(staffRepo, leaveRepo)

	_, err := app.Test(jsonRequest("POST", "/staff", createPayload("Amelia Hart", "amelia@x.test", models.DepartmentTeaching)))
	require.NoError(t, err)
	member, _ := staffRepo.FindByStaffID(nil, "FAC001")
	require.NotNil(t, member)

	leaveRepo.Create(nil, &models.LeaveRequest{StaffID: "FAC001", Status: models.LeavePending})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/staff/"+member.ID.Hex(), nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// No cascade: the leave request survives as an orphan.
	remaining, _ := leaveRepo.FindByStaffID(nil, "FAC001")
	assert.Len(t, remaining, 1)
}

func TestDirectoryStats(t *testing.T) {
	staffRepo := &fakeStaffRepo{
		staff: []*models.StaffMember{
			{StaffID: "FAC001", Department: models.DepartmentTeaching, Status: models.StaffActive, Salary: 75000},
			{StaffID: "FAC002", Department: models.DepartmentTeaching, Status: models.StaffOnLeave, Salary: 55000},
			{StaffID: "STAFF001", Department: models.DepartmentSupport, Status: models.StaffActive, Salary: 40000},
			{StaffID: "ADMIN001", Department: models.DepartmentAdministration, Status: models.StaffInactive, Salary: 60000},
		},
	}
	leaveRepo := &fakeLeaveRepo{staffRepo: staffRepo}
	leaveRepo.Create(nil, &models.LeaveRequest{StaffID: "FAC002", Status: models.LeavePending})
	app := newStaffApp(staffRepo, leaveRepo)

	resp, err := app.Test(httptest.NewRequest("GET", "/staff/stats", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(4), body["total_staff"])
	assert.Equal(t, float64(1), body["active_teaching"])
	assert.Equal(t, float64(1), body["on_leave"])
	assert.Equal(t, float64(1), body["present_today"])
	assert.Equal(t, float64(1), body["pending_leave_requests"])
	// 1 present of 4: 25%. 230000 / 4 = 57500.
	assert.Equal(t, float64(25), body["attendance_rate"])
	assert.Equal(t, float64(57500), body["average_salary"])
}
