package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/models"
	"staff-administration/pkg/keylock"
	"staff-administration/pkg/staffid"
	util "staff-administration/pkg/utils"
	"staff-administration/repository"
)

type StaffHandler struct {
	staffRepo   repository.StaffRepository
	counterRepo repository.CounterRepository
	leaveRepo   repository.LeaveRequestRepository
	locks       *keylock.KeyLock
}

func NewStaffHandler(
	staffRepo repository.StaffRepository,
	counterRepo repository.CounterRepository,
	leaveRepo repository.LeaveRequestRepository,
	locks *keylock.KeyLock,
) *StaffHandler {
	return &StaffHandler{
		staffRepo:   staffRepo,
		counterRepo: counterRepo,
		leaveRepo:   leaveRepo,
		locks:       locks,
	}
}

// CreateStaff godoc
// @Summary Add a staff member
// @Description Creates a staff member and assigns the department-scoped staff ID
// @Tags Staff
// @Accept json
// @Produce json
// @Param payload body models.StaffCreatePayload true "Staff data"
// @Success 201 {object} models.CreateStaffSuccessResponse
// @Failure 400 {object} models.ValidationErrorResponse
// @Router /staff [post]
func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var payload models.StaffCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	prefix, err := staffid.Prefix(string(payload.Department))
	if err != nil {
		return respondError(c, err)
	}
	seq, err := h.counterRepo.Next(c.Context(), string(payload.Department))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to allocate staff id"})
	}

	balance := payload.LeaveBalance
	if balance == nil {
		balance = models.DefaultLeaveBalance()
	}

	newStaff := &models.StaffMember{
		ID:             primitive.NewObjectID(),
		StaffID:        staffid.Format(prefix, seq),
		Name:           payload.Name,
		Email:          payload.Email,
		Phone:          payload.Phone,
		Role:           payload.Role,
		Department:     payload.Department,
		EmploymentType: payload.EmploymentType,
		Status:         models.StaffActive,
		Salary:         payload.Salary,
		Address:        payload.Address,
		Qualification:  payload.Qualification,
		JoinDate:       payload.JoinDate,
		LeaveBalance:   balance,
	}

	if _, err := h.staffRepo.Create(c.Context(), newStaff); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create staff member"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Staff member created",
		"id":       newStaff.ID.Hex(),
		"staff_id": newStaff.StaffID,
	})
}

// GetStaffByID accepts either the internal id or the human-readable staff id.
func (h *StaffHandler) GetStaffByID(c *fiber.Ctx) error {
	param := c.Params("id")

	var staff *models.StaffMember
	var err error
	if objectID, idErr := primitive.ObjectIDFromHex(param); idErr == nil {
		staff, err = h.staffRepo.FindByID(c.Context(), objectID)
	} else {
		staff, err = h.staffRepo.FindByStaffID(c.Context(), param)
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to find staff member"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Staff member found",
		"staff":   staff,
	})
}

// UpdateStaff godoc
// @Summary Update a staff member
// @Description Replaces mutable fields. The staff ID is immutable and not part of the payload.
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Internal staff ID"
// @Param payload body models.StaffUpdatePayload true "Fields to update"
// @Success 200 {object} models.UpdateStaffSuccessResponse
// @Failure 404 {object} models.NotFoundErrorResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff ID format"})
	}

	var payload models.StaffUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	staff, err := h.staffRepo.FindByID(c.Context(), objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to find staff member"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	// Serialize with leave decisions targeting the same staff member.
	h.locks.Lock(staff.StaffID)
	defer h.locks.Unlock(staff.StaffID)

	updateData := bson.M{}
	if payload.Name != "" {
		updateData["name"] = payload.Name
	}
	if payload.Email != "" {
		updateData["email"] = payload.Email
	}
	if payload.Phone != "" {
		updateData["phone"] = payload.Phone
	}
	if payload.Role != "" {
		updateData["role"] = payload.Role
	}
	if payload.Department != "" {
		updateData["department"] = payload.Department
	}
	if payload.EmploymentType != "" {
		updateData["employment_type"] = payload.EmploymentType
	}
	if payload.Status != "" {
		updateData["status"] = payload.Status
	}
	if payload.Salary != nil {
		updateData["salary"] = *payload.Salary
	}
	if payload.Address != "" {
		updateData["address"] = payload.Address
	}
	if payload.Qualification != "" {
		updateData["qualification"] = payload.Qualification
	}
	if payload.JoinDate != "" {
		updateData["join_date"] = payload.JoinDate
	}
	if payload.LeaveBalance != nil {
		updateData["leave_balance"] = payload.LeaveBalance
	}

	result, err := h.staffRepo.Update(c.Context(), objectID, updateData)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update staff member"})
	}
	if result.MatchedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Staff member updated",
		"id":      objectID.Hex(),
	})
}

// DeleteStaff removes the staff member. Attendance, leave and payroll
// history keep their staff_id reference; read paths tolerate the orphan.
func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid staff ID format"})
	}

	staff, err := h.staffRepo.FindByID(c.Context(), objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to find staff member"})
	}
	if staff == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	h.locks.Lock(staff.StaffID)
	defer h.locks.Unlock(staff.StaffID)

	result, err := h.staffRepo.Delete(c.Context(), objectID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete staff member"})
	}
	if result.DeletedCount == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Staff member not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Staff member deleted",
		"id":      objectID.Hex(),
	})
}

// GetAllStaff lists staff, composing the free-text search with the
// exact-match filters conjunctively.
func (h *StaffHandler) GetAllStaff(c *fiber.Ctx) error {
	filter := models.StaffFilter{
		Q:              c.Query("q"),
		Department:     models.Department(c.Query("department")),
		EmploymentType: models.EmploymentType(c.Query("employment_type")),
		Status:         models.StaffStatus(c.Query("status")),
	}
	page := int64(c.QueryInt("page", 1))
	limit := int64(c.QueryInt("limit", 20))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	staff, total, err := h.staffRepo.FindAll(c.Context(), filter, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch staff list"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Staff list retrieved",
		"staff":   staff,
		"total":   total,
	})
}

// GetDirectoryStats derives the dashboard statistics from the full staff
// set. Pure derivation: calling it twice without mutation yields the same
// result.
func (h *StaffHandler) GetDirectoryStats(c *fiber.Ctx) error {
	staff, _, err := h.staffRepo.FindAll(c.Context(), models.StaffFilter{}, 0, 0)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch staff set"})
	}

	pending, err := h.leaveRepo.CountPending(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count pending leave requests"})
	}

	stats := models.ComputeDirectoryStats(staff, pending)
	return c.Status(fiber.StatusOK).JSON(stats)
}

// GetDepartments lists the closed department enumeration.
func (h *StaffHandler) GetDepartments(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"departments": models.Departments()})
}
