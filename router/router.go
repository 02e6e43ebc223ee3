package router

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "staff-administration/docs"
	"staff-administration/handlers"
	"staff-administration/pkg/keylock"
	"staff-administration/repository"
)

func SetupRoutes(app *fiber.App) {
	// Repositories
	staffRepo := repository.NewStaffRepository()
	counterRepo := repository.NewCounterRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	leaveRepo := repository.NewLeaveRequestRepository()
	payrollRepo := repository.NewPayrollRepository()
	scheduleRepo := repository.NewWorkScheduleRepository()

	// Per-staff mutations are serialized on one shared lock set.
	locks := keylock.New()

	// Handlers
	staffHandler := handlers.NewStaffHandler(staffRepo, counterRepo, leaveRepo, locks)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceRepo, staffRepo, scheduleRepo)
	leaveHandler := handlers.NewLeaveRequestHandler(leaveRepo, staffRepo, locks)
	payrollHandler := handlers.NewPayrollHandler(payrollRepo, staffRepo)
	scheduleHandler := handlers.NewWorkScheduleHandler(scheduleRepo)

	// Health check & Docs
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Staff Administration API",
			"status":  "running",
			"docs":    "/docs/index.html",
		})
	})
	app.Get("/docs/*", swagger.HandlerDefault)
	app.Static("/uploads", "./uploads")

	// API v1 group
	api := app.Group("/api/v1")

	// Staff directory routes
	staffGroup := api.Group("/staff")
	staffGroup.Post("/", staffHandler.CreateStaff)
	staffGroup.Get("/", staffHandler.GetAllStaff)
	staffGroup.Get("/stats", staffHandler.GetDirectoryStats)
	staffGroup.Get("/:id", staffHandler.GetStaffByID)
	staffGroup.Put("/:id", staffHandler.UpdateStaff)
	staffGroup.Delete("/:id", staffHandler.DeleteStaff)

	api.Get("/departments", staffHandler.GetDepartments)

	// Attendance routes
	attendanceGroup := api.Group("/attendance")
	attendanceGroup.Post("/", attendanceHandler.MarkAttendance)
	attendanceGroup.Post("/bulk", attendanceHandler.BulkMark)
	attendanceGroup.Get("/today", attendanceHandler.GetTodayAttendance)
	attendanceGroup.Get("/history/:staffId", attendanceHandler.GetStaffAttendanceHistory)
	attendanceGroup.Get("/generate-qr", attendanceHandler.GenerateQRCode)
	attendanceGroup.Post("/scan", attendanceHandler.ScanQRCode)

	// Leave request routes
	leaveGroup := api.Group("/leave-requests")
	leaveGroup.Post("/", leaveHandler.CreateLeaveRequest)
	leaveGroup.Get("/", leaveHandler.GetAllLeaveRequests)
	leaveGroup.Get("/staff/:staffId", leaveHandler.GetStaffLeaveRequests)
	leaveGroup.Put("/:id/decision", leaveHandler.DecideLeaveRequest)
	leaveGroup.Post("/:id/attachment", leaveHandler.UploadAttachment)

	// Payroll routes
	payrollGroup := api.Group("/payroll")
	payrollGroup.Post("/process", payrollHandler.ProcessBatch)
	payrollGroup.Get("/", payrollHandler.GetPayrollByMonth)
	payrollGroup.Get("/preview/:staffId", payrollHandler.PreviewBreakdown)
	payrollGroup.Get("/staff/:staffId", payrollHandler.GetStaffPayroll)
	payrollGroup.Put("/:id/status", payrollHandler.UpdatePayrollStatus)
	payrollGroup.Post("/payslip/:staffId/generate", payrollHandler.GeneratePayslip)
	payrollGroup.Post("/payslip/:staffId/send", payrollHandler.SendPayslip)

	// Duty schedule routes
	scheduleGroup := api.Group("/work-schedules")
	scheduleGroup.Post("/", scheduleHandler.CreateWorkSchedule)
	scheduleGroup.Get("/", scheduleHandler.GetAllWorkSchedules)
	scheduleGroup.Put("/:id", scheduleHandler.UpdateWorkSchedule)
	scheduleGroup.Delete("/:id", scheduleHandler.DeleteWorkSchedule)

	log.Println("All routes registered")
	log.Println("Swagger documentation available at /docs/index.html")
}
