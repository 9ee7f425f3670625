package fees

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupFeesRoutes(app *fiber.App) {
	fees := app.Group("/api/fees")
	fees.Use(auth.AuthMiddleware)

	fees.Get("/categories", ListCategoriesAPI)
	fees.Post("/categories", CreateCategoryAPI)

	fees.Get("/structures", ListStructuresAPI)
	fees.Post("/structures", CreateStructureAPI)
	fees.Get("/structures/:id", GetStructureAPI)
	fees.Put("/structures/:id", UpdateStructureAPI)

	fees.Post("/assignments", AssignFeeAPI)
	fees.Get("/assignments/student/:studentId", ListAssignmentsAPI)
	fees.Put("/assignments/:id", UpdateAssignmentAPI)
}
