package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/models"
	"staff-administration/pkg/apperr"
	"staff-administration/pkg/payroll"
	util "staff-administration/pkg/utils"
	"staff-administration/repository"
)

type PayrollHandler struct {
	payrollRepo repository.PayrollRepository
	staffRepo   repository.StaffRepository
}

func NewPayrollHandler(payrollRepo repository.PayrollRepository, staffRepo repository.StaffRepository) *PayrollHandler {
	return &PayrollHandler{
		payrollRepo: payrollRepo,
		staffRepo:   staffRepo,
	}
}

// PreviewBreakdown computes a staff member's salary breakdown without
// writing anything.
func (h *PayrollHandler) PreviewBreakdown(c *fiber.Ctx) error {
	staffID := c.Params("staffId")

	staff, err := h.staffRepo.FindByStaffID(c.Context(), staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up staff member"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"staff_id":  staff.StaffID,
		"breakdown": payroll.Compute(staff.Salary),
	})
}

// ProcessBatch godoc
// @Summary Run payroll for a month
// @Description Creates one Pending record per Active staff member. Staff already processed for the month are skipped, as are non-Active staff.
// @Tags Payroll
// @Accept json
// @Produce json
// @Param payload body models.PayrollProcessPayload true "Batch parameters"
// @Success 201 {object} models.ProcessBatchSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /payroll/process [post]
func (h *PayrollHandler) ProcessBatch(c *fiber.Ctx) error {
	var payload models.PayrollProcessPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	paymentDate, err := payroll.PaymentDate(payload.Month)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month label"})
	}

	// Snapshot of the Active staff set at call start. Staff added while
	// the batch runs are not included; staff deleted mid-run are skipped.
	staffSet, err := h.staffRepo.FindActive(c.Context(), payload.Department)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch active staff"})
	}

	created := []models.PayrollRecord{}
	skipped := []string{}

	for _, staff := range staffSet {
		exists, err := h.payrollRepo.ExistsForMonth(c.Context(), staff.StaffID, payload.Month)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to check existing records"})
		}
		if exists {
			skipped = append(skipped, staff.StaffID)
			continue
		}

		record := &models.PayrollRecord{
			StaffID:     staff.StaffID,
			Month:       payload.Month,
			Breakdown:   payroll.Compute(staff.Salary),
			PaymentDate: paymentDate,
			Status:      models.PayrollPending,
		}

		if _, err := h.payrollRepo.Create(c.Context(), record); err != nil {
			if errors.Is(err, repository.ErrDuplicateRecord) {
				skipped = append(skipped, staff.StaffID)
				continue
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create payroll record"})
		}
		created = append(created, *record)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Payroll batch processed",
		"month":   payload.Month,
		"created": created,
		"skipped": skipped,
	})
}

func (h *PayrollHandler) GetPayrollByMonth(c *fiber.Ctx) error {
	month := c.Query("month")
	if month == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "month query parameter is required"})
	}
	if _, err := payroll.ParseMonth(month); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid month label"})
	}

	records, err := h.payrollRepo.FindByMonth(c.Context(), month)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll records"})
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

func (h *PayrollHandler) GetStaffPayroll(c *fiber.Ctx) error {
	staffID := c.Params("staffId")

	records, err := h.payrollRepo.FindByStaffID(c.Context(), staffID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch payroll records"})
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// UpdatePayrollStatus is the external advance of a record's status.
// Forward-only: Pending -> Processing -> Paid.
func (h *PayrollHandler) UpdatePayrollStatus(c *fiber.Ctx) error {
	recordID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payroll record ID"})
	}

	var payload models.PayrollStatusPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	record, err := h.payrollRepo.FindByID(c.Context(), recordID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to look up payroll record"})
	}
	if record == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Payroll record not found"})
	}
	if !record.Status.CanAdvanceTo(payload.Status) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot move payroll record from " + string(record.Status) + " to " + string(payload.Status),
		})
	}

	var paidAt *time.Time
	if payload.Status == models.PayrollPaid {
		now := time.Now()
		paidAt = &now
	}

	if _, err := h.payrollRepo.UpdateStatus(c.Context(), recordID, payload.Status, paidAt); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update payroll status"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Payroll status updated",
		"status":  payload.Status,
	})
}

// GeneratePayslip acknowledges a payslip generation request. Formatting
// the document is the export collaborator's concern.
func (h *PayrollHandler) GeneratePayslip(c *fiber.Ctx) error {
	var payload models.PayslipPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	staff, record, err := h.payslipTarget(c, payload.Month)
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("Payslip generation requested for %s (%s), month %s", staff.StaffID, staff.Name, record.Month)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":  "Payslip generation requested",
		"staff_id": staff.StaffID,
		"month":    record.Month,
	})
}

// SendPayslip acknowledges a payslip delivery request to the staff
// member's contact email. Dispatch is the notification collaborator's
// concern.
func (h *PayrollHandler) SendPayslip(c *fiber.Ctx) error {
	var payload models.PayslipPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	staff, record, err := h.payslipTarget(c, payload.Month)
	if err != nil {
		return respondError(c, err)
	}

	log.Printf("Payslip delivery requested for %s to %s, month %s", staff.StaffID, staff.Email, record.Month)
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":  "Payslip queued for delivery",
		"staff_id": staff.StaffID,
		"email":    staff.Email,
		"month":    record.Month,
	})
}

// payslipTarget resolves the staff member and the month's payroll record.
// A non-nil error always means no response has been written yet; on
// success both pointers are non-nil.
func (h *PayrollHandler) payslipTarget(c *fiber.Ctx, month string) (*models.StaffMember, *models.PayrollRecord, error) {
	staffID := c.Params("staffId")

	staff, err := h.staffRepo.FindByStaffID(c.Context(), staffID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up staff member: %w", err)
	}
	if staff == nil {
		return nil, nil, apperr.NotFoundf("staff member %s not found", staffID)
	}

	record, err := h.payrollRepo.FindByStaffAndMonth(c.Context(), staffID, month)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up payroll record: %w", err)
	}
	if record == nil {
		return nil, nil, apperr.NotFoundf("no payroll record for %s in %s", staffID, month)
	}

	return staff, record, nil
}
