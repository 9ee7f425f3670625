package payroll

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupPayrollRoutes(app *fiber.App) {
	payroll := app.Group("/api/payroll")
	payroll.Use(auth.AuthMiddleware)

	payroll.Get("/staff", ListStaffAPI)
	payroll.Post("/staff", CreateStaffAPI)
	payroll.Get("/staff/:id", GetStaffAPI)
	payroll.Put("/staff/:id", UpdateStaffAPI)

	payroll.Post("/attendance", RecordAttendanceAPI)

	payroll.Get("/salaries", ListSalariesAPI)
	payroll.Post("/salaries/generate", auth.RequireRole("admin", "accountant"), GenerateSalaryAPI)
	payroll.Post("/salaries/:id/pay", auth.RequireRole("admin", "accountant"), MarkSalaryPaidAPI)
}
