package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/teambition/rrule-go"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"staff-administration/models"
	util "staff-administration/pkg/utils"
	"staff-administration/repository"
)

type WorkScheduleHandler struct {
	scheduleRepo repository.WorkScheduleRepository
}

func NewWorkScheduleHandler(scheduleRepo repository.WorkScheduleRepository) *WorkScheduleHandler {
	return &WorkScheduleHandler{scheduleRepo: scheduleRepo}
}

func (h *WorkScheduleHandler) CreateWorkSchedule(c *fiber.Ctx) error {
	var payload models.WorkScheduleCreatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}
	if payload.RecurrenceRule != "" {
		if _, err := rrule.StrToROption(payload.RecurrenceRule); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid recurrence rule"})
		}
	}

	schedule := &models.WorkSchedule{
		Date:           payload.Date,
		StartTime:      payload.StartTime,
		EndTime:        payload.EndTime,
		Note:           payload.Note,
		RecurrenceRule: payload.RecurrenceRule,
	}

	created, err := h.scheduleRepo.Create(c.Context(), schedule)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create work schedule"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetAllWorkSchedules expands every schedule rule into concrete dated
// entries between start_date and end_date.
func (h *WorkScheduleHandler) GetAllWorkSchedules(c *fiber.Ctx) error {
	layout := "2006-01-02"

	startDate, err := time.Parse(layout, c.Query("start_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid start_date format"})
	}
	endDate, err := time.Parse(layout, c.Query("end_date"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid end_date format"})
	}
	if endDate.Before(startDate) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "end_date is before start_date"})
	}

	rules, err := h.scheduleRepo.FindAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch schedule rules"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": ExpandSchedules(rules, startDate, endDate)})
}

func (h *WorkScheduleHandler) UpdateWorkSchedule(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid work schedule ID"})
	}

	var payload models.WorkScheduleUpdatePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if errs := util.ValidateStruct(&payload); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": util.FormatValidationErrors(errs),
		})
	}

	if err := h.scheduleRepo.UpdateByID(c.Context(), objectID, &payload); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Work schedule not found"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Work schedule updated"})
}

func (h *WorkScheduleHandler) DeleteWorkSchedule(c *fiber.Ctx) error {
	objectID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid work schedule ID"})
	}

	if err := h.scheduleRepo.DeleteByID(c.Context(), objectID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Work schedule not found"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Work schedule deleted"})
}

// ExpandSchedules turns schedule rules into dated entries within
// [startDate, endDate]. Rules with a recurrence expand through rrule;
// plain rules contribute their single date when it falls in range.
func ExpandSchedules(rules []models.WorkSchedule, startDate, endDate time.Time) []models.WorkSchedule {
	layout := "2006-01-02"
	expanded := []models.WorkSchedule{}

	for _, rule := range rules {
		if rule.RecurrenceRule != "" {
			rOption, err := rrule.StrToROption(rule.RecurrenceRule)
			if err != nil {
				continue
			}

			ruleStartDate, err := time.Parse(layout, rule.Date)
			if err != nil {
				continue
			}
			rOption.Dtstart = ruleStartDate

			rr, err := rrule.NewRRule(*rOption)
			if err != nil {
				continue
			}

			ruleSet := rrule.Set{}
			ruleSet.RRule(rr)

			for _, instance := range ruleSet.Between(startDate, endDate, true) {
				expanded = append(expanded, models.WorkSchedule{
					ID:             rule.ID,
					Date:           instance.Format(layout),
					StartTime:      rule.StartTime,
					EndTime:        rule.EndTime,
					Note:           rule.Note,
					RecurrenceRule: rule.RecurrenceRule,
				})
			}
			continue
		}

		ruleDate, err := time.Parse(layout, rule.Date)
		if err != nil {
			continue
		}
		if !ruleDate.Before(startDate) && !ruleDate.After(endDate) {
			expanded = append(expanded, rule)
		}
	}

	return expanded
}
