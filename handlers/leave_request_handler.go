package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/models"
	"staff-administration/pkg/keylock"
	util "staff-administration/pkg/utils"
	"staff-administration/repository"
)

type LeaveRequestHandler struct {
	leaveRepo repository.LeaveRequestRepository
	staffRepo repository.StaffRepository
	locks     *keylock.KeyLock
}

func NewLeaveRequestHandler(
	leaveRepo repository.LeaveRequestRepository,
	staffRepo repository.StaffRepository,
	locks *keylock.KeyLock,
) *LeaveRequestHandler {
	return &LeaveRequestHandler{
		leaveRepo: leaveRepo,
		staffRepo: staffRepo,
		locks:     locks,
	}
}

// CreateLeaveRequest godoc
// @Summary Submit a leave request
// @Description Creates a Pending request; duration is the inclusive day count.
// @Tags Leave Request
// @Accept json
// @Produce json
// @Param payload body models.LeaveRequestCreatePayload true "Leave request data"
// @Success 201 {object} models.LeaveRequest
// @Failure 400 {object} models.ValidationErrorResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /leave-requests [post]
func (h *LeaveRequestHandler) CreateLeaveRequest(c *fiber.Ctx) error {
	var payload models.LeaveRequestCreatePayload
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

	duration, err := models.LeaveDuration(payload.StartDate, payload.EndDate)
	if err != nil {
		return respondError(c, err)
	}

	newRequest := &models.LeaveRequest{
		ID:          primitive.NewObjectID(),
		StaffID:     payload.StaffID,
		Type:        payload.Type,
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
		Duration:    duration,
		Reason:      payload.Reason,
		Status:      models.LeavePending,
		AppliedDate: time.Now().Format("2006-01-02"),
	}

	if _, err := h.leaveRepo.Create(c.Context(), newRequest); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create leave request"})
	}

	return c.Status(fiber.StatusCreated).JSON(newRequest)
}

// DecideLeaveRequest godoc
// @Summary Approve or reject a pending leave request
// @Description Approval also sets the staff member's status to On Leave; both writes land or neither. Re-deciding a decided request fails.
// @Tags Leave Request
// @Accept json
// @Produce json
// @Param id path string true "Leave request ID"
// @Param payload body models.LeaveDecisionPayload true "Decision"
// @Success 200 {object} models.LeaveRequest
// @Failure 404 {object} models.NotFoundErrorResponse
// @Failure 409 {object} models.ConflictErrorResponse
// @Router /leave-requests/{id}/decision [put]
func (h *LeaveRequestHandler) DecideLeaveRequest(c *fiber.Ctx) error {
	reqID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid leave request ID"})
	}

	var payload models.LeaveDecisionPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	request, err := h.leaveRepo.FindByID(c.Context(), reqID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up leave request"})
	}
	if request == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	}

	// Serialize with direct staff updates on the same staff member.
	h.locks.Lock(request.StaffID)
	defer h.locks.Unlock(request.StaffID)

	switch payload.Decision {
	case "Approve":
		err = h.leaveRepo.Approve(c.Context(), reqID, payload.Note)
	case "Reject":
		err = h.leaveRepo.Reject(c.Context(), reqID, payload.Note)
	}
	if err != nil {
		return respondError(c, err)
	}

	decided, err := h.leaveRepo.FindByID(c.Context(), reqID)
	if err != nil || decided == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": fmt.Sprintf("Leave request %sd", payload.Decision)})
	}
	return c.Status(fiber.StatusOK).JSON(decided)
}

func (h *LeaveRequestHandler) GetAllLeaveRequests(c *fiber.Ctx) error {
	requests, err := h.leaveRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leave requests"})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

func (h *LeaveRequestHandler) GetStaffLeaveRequests(c *fiber.Ctx) error {
	staffID := c.Params("staffId")

	requests, err := h.leaveRepo.FindByStaffID(c.Context(), staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch leave requests"})
	}
	return c.Status(fiber.StatusOK).JSON(requests)
}

// UploadAttachment stores a supporting document for a leave request.
func (h *LeaveRequestHandler) UploadAttachment(c *fiber.Ctx) error {
	reqID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid leave request ID"})
	}

	file, err := c.FormFile("attachment")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Attachment file missing"})
	}

	uniqueFileName := fmt.Sprintf("%d-%s", time.Now().Unix(), file.Filename)
	filePath := fmt.Sprintf("./uploads/attachments/%s", uniqueFileName)

	if err := c.SaveFile(file, filePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save file"})
	}

	fileURL := fmt.Sprintf("/uploads/attachments/%s", uniqueFileName)

	result, err := h.leaveRepo.UpdateAttachmentURL(c.Context(), reqID, fileURL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to store attachment URL"})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Leave request not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Attachment uploaded",
		"file_url": fileURL,
	})
}
