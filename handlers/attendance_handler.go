package handlers

import (
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/models"
	util "staff-administration/pkg/utils"
	"staff-administration/repository"
)

type AttendanceHandler struct {
	attendanceRepo repository.AttendanceRepository
	staffRepo      repository.StaffRepository
	scheduleRepo   repository.WorkScheduleRepository
}

func NewAttendanceHandler(
	attendanceRepo repository.AttendanceRepository,
	staffRepo repository.StaffRepository,
	scheduleRepo repository.WorkScheduleRepository,
) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
		scheduleRepo:   scheduleRepo,
	}
}

// MarkAttendance godoc
// @Summary Mark attendance for a staff member on a date
// @Description Upserts the single record per (staff, date). Check-in/check-out are kept only for Present and Late.
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.AttendanceMarkPayload true "Attendance data"
// @Success 200 {object} models.AttendanceRecord
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /attendance [post]
func (h *AttendanceHandler) MarkAttendance(c *fiber.Ctx) error {
	var payload models.AttendanceMarkPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	staff, err := h.staffRepo.FindByStaffID(c.Context(), payload.StaffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up staff member"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	checkIn, checkOut := models.NormalizeTimes(payload.Status, payload.CheckIn, payload.CheckOut)
	record := &models.AttendanceRecord{
		StaffID:  payload.StaffID,
		Date:     payload.Date,
		Status:   payload.Status,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Notes:    payload.Notes,
	}

	if err := h.attendanceRepo.Upsert(c.Context(), record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save attendance record"})
	}

	return c.Status(fiber.StatusOK).JSON(record)
}

// BulkMark applies one status to a set of staff for a date. Only staff
// that are Active in the snapshot taken here are written; the rest are
// skipped silently, including staff deleted while the bulk runs.
func (h *AttendanceHandler) BulkMark(c *fiber.Ctx) error {
	var payload models.AttendanceBulkMarkPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	staffSet, err := h.staffRepo.FindByStaffIDs(c.Context(), payload.StaffIDs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up staff members"})
	}

	marked := 0
	for _, staff := range staffSet {
		if staff.Status != models.StaffActive {
			continue
		}
		record := &models.AttendanceRecord{
			StaffID: staff.StaffID,
			Date:    payload.Date,
			Status:  payload.Status,
		}
		if err := h.attendanceRepo.Upsert(c.Context(), record); err != nil {
			continue
		}
		marked++
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Attendance marked",
		"marked":  marked,
		"skipped": len(payload.StaffIDs) - marked,
	})
}

// GetTodayAttendance returns today's records joined with staff details and
// the daily attendance rate over the active headcount.
func (h *AttendanceHandler) GetTodayAttendance(c *fiber.Ctx) error {
	today := time.Now().Format("2006-01-02")

	attendanceList, err := h.attendanceRepo.FindByDateWithStaff(c.Context(), today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch today's attendance"})
	}

	totalActive, err := h.staffRepo.CountActive(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count active staff"})
	}

	records := make([]models.AttendanceRecord, 0, len(attendanceList))
	for _, a := range attendanceList {
		records = append(records, models.AttendanceRecord{Status: a.Status})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"date":            today,
		"attendance":      attendanceList,
		"attendance_rate": models.ComputeAttendanceRate(records, totalActive),
	})
}

func (h *AttendanceHandler) GetStaffAttendanceHistory(c *fiber.Ctx) error {
	staffID := c.Params("staffId")

	history, err := h.attendanceRepo.FindByStaffID(c.Context(), staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch attendance history"})
	}

	return c.Status(fiber.StatusOK).JSON(history)
}

// GenerateQRCode creates today's one-day check-in token and returns it as
// an embeddable PNG.
func (h *AttendanceHandler) GenerateQRCode(c *fiber.Ctx) error {
	uniqueCode := uuid.New().String()
	today := time.Now()
	expiresAt := time.Date(today.Year(), today.Month(), today.Day(), 23, 0, 0, 0, today.Location())

	newQRCode := &models.QRCode{
		ID:        primitive.NewObjectID(),
		Code:      uniqueCode,
		Date:      today.Format("2006-01-02"),
		ExpiresAt: expiresAt,
		UsedBy:    []string{},
		CreatedAt: today,
	}

	if err := h.attendanceRepo.CreateQRCode(c.Context(), newQRCode); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store QR code"})
	}

	png, err := qrcode.Encode(uniqueCode, qrcode.Medium, 256)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to render QR code"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":       "QR code created",
		"qr_code_image": "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
		"expires_at":    expiresAt,
	})
}

// ScanQRCode checks a staff member in on first scan and out on second.
// A check-in after the day's duty schedule start is recorded as Late.
func (h *AttendanceHandler) ScanQRCode(c *fiber.Ctx) error {
	var payload models.QRCodeScanPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	qrCode, err := h.attendanceRepo.FindQRCodeByValue(c.Context(), payload.QRCodeValue)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up QR code"})
	}
	if qrCode == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "QR code not found or invalid"})
	}
	if time.Now().After(qrCode.ExpiresAt) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code has expired"})
	}

	today := time.Now().Format("2006-01-02")
	if qrCode.Date != today {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "QR code is not valid for today"})
	}

	staff, err := h.staffRepo.FindByStaffID(c.Context(), payload.StaffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up staff member"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	attendance, err := h.attendanceRepo.FindByStaffAndDate(c.Context(), payload.StaffID, today)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up attendance"})
	}

	if attendance != nil {
		if attendance.CheckOut != "" {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Already checked in and out today"})
		}
		currentTime := time.Now().Format("15:04")
		if err := h.attendanceRepo.UpdateCheckout(c.Context(), attendance.ID, currentTime); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check out"})
		}
		h.attendanceRepo.MarkQRCodeAsUsed(c.Context(), qrCode.ID, payload.StaffID)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Checked out at " + currentTime})
	}

	checkIn := time.Now().Format("15:04")
	status := models.AttendancePresent
	if start := h.scheduleStartForToday(c, today); start != "" && checkIn > start {
		status = models.AttendanceLate
	}

	record := &models.AttendanceRecord{
		StaffID: payload.StaffID,
		Date:    today,
		Status:  status,
		CheckIn: checkIn,
	}
	if err := h.attendanceRepo.Upsert(c.Context(), record); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check in"})
	}

	h.attendanceRepo.MarkQRCodeAsUsed(c.Context(), qrCode.ID, payload.StaffID)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Checked in at " + checkIn,
		"status":  status,
	})
}

// scheduleStartForToday returns the earliest duty-schedule start time that
// applies to the given date, or "" when no rule covers it.
func (h *AttendanceHandler) scheduleStartForToday(c *fiber.Ctx, date string) string {
	rules, err := h.scheduleRepo.FindAll(c.Context())
	if err != nil {
		return ""
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}

	start := ""
	for _, entry := range ExpandSchedules(rules, day, day) {
		if entry.Date != date {
			continue
		}
		if start == "" || entry.StartTime < start {
			start = entry.StartTime
		}
	}
	return start
}
