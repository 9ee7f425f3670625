package reports

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupReportsRoutes(app *fiber.App) {
	reports := app.Group("/api/reports")
	reports.Use(auth.AuthMiddleware)

	reports.Get("/dashboard", DashboardAPI)
	reports.Get("/overdue", OverdueReportAPI)
	reports.Get("/defaulters", DefaultersAPI)
	reports.Get("/payments/summary", PaymentSummaryAPI)
}
