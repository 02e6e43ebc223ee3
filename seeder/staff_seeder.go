package seeder

import (
	"context"
	"log"
	"time"

	"staff-administration/models"
	"staff-administration/pkg/staffid"
	"staff-administration/repository"
)

type fixtureStaff struct {
	Name           string
	Email          string
	Phone          string
	Role           string
	Department     models.Department
	EmploymentType models.EmploymentType
	JoinDate       string
	Salary         float64
}

var fixtures = []fixtureStaff{
	{"Amelia Hart", "amelia.hart@institution.example", "+1-555-0101", "Senior Lecturer", models.DepartmentTeaching, models.EmploymentFullTime, "2019-08-01", 75000},
	{"Rajan Mehta", "rajan.mehta@institution.example", "+1-555-0102", "Lecturer", models.DepartmentTeaching, models.EmploymentFullTime, "2021-01-15", 55000},
	{"Sofia Alvarez", "sofia.alvarez@institution.example", "+1-555-0103", "Lab Assistant", models.DepartmentSupport, models.EmploymentPartTime, "2022-06-20", 28000},
	{"Daniel Okoro", "daniel.okoro@institution.example", "+1-555-0104", "Facilities Coordinator", models.DepartmentSupport, models.EmploymentFullTime, "2020-03-09", 40000},
	{"Mei Tanaka", "mei.tanaka@institution.example", "+1-555-0105", "Registrar", models.DepartmentAdministration, models.EmploymentFullTime, "2018-11-05", 60000},
	{"Lucas Bauer", "lucas.bauer@institution.example", "+1-555-0106", "Accounts Officer", models.DepartmentAdministration, models.EmploymentContract, "2023-02-01", 45000},
}

// SeedStaff loads the fixture directory through the normal creation path,
// so seeded members get real sequential staff IDs. Members that already
// exist by email are skipped.
func SeedStaff(staffRepo repository.StaffRepository, counterRepo repository.CounterRepository) {
	log.Println("Seeding staff directory...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, f := range fixtures {
		existing, _, err := staffRepo.FindAll(ctx, models.StaffFilter{Q: f.Email}, 0, 0)
		if err != nil {
			log.Printf("Seeder: lookup for %s failed: %v", f.Email, err)
			continue
		}
		if len(existing) > 0 {
			continue
		}

		prefix, err := staffid.Prefix(string(f.Department))
		if err != nil {
			log.Printf("Seeder: %v", err)
			continue
		}
		seq, err := counterRepo.Next(ctx, string(f.Department))
		if err != nil {
			log.Printf("Seeder: counter for %s failed: %v", f.Department, err)
			continue
		}

		member := &models.StaffMember{
			StaffID:        staffid.Format(prefix, seq),
			Name:           f.Name,
			Email:          f.Email,
			Phone:          f.Phone,
			Role:           f.Role,
			Department:     f.Department,
			EmploymentType: f.EmploymentType,
			JoinDate:       f.JoinDate,
			Salary:         f.Salary,
			Status:         models.StaffActive,
			LeaveBalance:   models.DefaultLeaveBalance(),
		}
		if _, err := staffRepo.Create(ctx, member); err != nil {
			log.Printf("Seeder: failed to create %s: %v", f.Name, err)
			continue
		}
		log.Printf("Seeded %s (%s)", member.Name, member.StaffID)
	}

	log.Println("Staff seeding complete")
}
