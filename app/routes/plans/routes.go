package plans

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupPlansRoutes(app *fiber.App) {
	plans := app.Group("/api/plans")
	plans.Use(auth.AuthMiddleware)

	plans.Post("/", CreatePlanAPI)
	plans.Get("/:id", GetPlanAPI)
	plans.Delete("/:id", DeletePlanAPI)
	plans.Get("/student/:studentId", GetStudentPlanAPI)
	plans.Post("/installments/:id/hold", HoldInstallmentAPI)
}
