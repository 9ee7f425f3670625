package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupStudentsRoutes(app *fiber.App) {
	students := app.Group("/api/students")
	students.Use(auth.AuthMiddleware)

	students.Get("/", ListStudentsAPI)
	students.Post("/", CreateStudentAPI)
	students.Get("/:id", GetStudentAPI)
	students.Put("/:id", UpdateStudentAPI)
	students.Delete("/:id", DeactivateStudentAPI)
	students.Get("/:id/balance", StudentBalanceAPI)
	students.Get("/:id/ledger", StudentLedgerAPI)
	students.Get("/:id/payments", StudentPaymentsAPI)
}
