package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"staff-administration/config"
	_ "staff-administration/docs"
	"staff-administration/repository"
	"staff-administration/router"
	"staff-administration/seeder"

	_ "time/tzdata"
)

// @title Staff Administration API
// @version 1.0
// @description Staff lifecycle, attendance, leave and payroll administration for an institution.
//
// @contact.name API Support
// @contact.email support@institution.example
//
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
//
// @host localhost:3000
// @BasePath /api/v1
// @schemes http https
//
// @tag.name Staff
// @tag.description Staff directory and lifecycle endpoints
//
// @tag.name Attendance
// @tag.description Attendance management endpoints
//
// @tag.name Leave Request
// @tag.description Leave request management endpoints
//
// @tag.name Payroll
// @tag.description Payroll processing endpoints
//
// @tag.name Work Schedule
// @tag.description Duty schedule endpoints
func main() {
	// LoadConfig pulls in .env before reading the environment.
	cfg := config.LoadConfig()

	config.MongoConnect()
	config.InitDatabase()
	defer config.DisconnectDB()

	if cfg.SeedOnStart {
		seeder.SeedStaff(repository.NewStaffRepository(), repository.NewCounterRepository())
	}

	app := fiber.New()

	config.SetupCORS(app)
	app.Use(logger.New())

	router.SetupRoutes(app)

	log.Printf("Server running on port %s", cfg.Port)
	log.Printf("API documentation: http://localhost:%s/docs/index.html", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
