package finance

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupFinanceRoutes(app *fiber.App) {
	finance := app.Group("/api/finance")
	finance.Use(auth.AuthMiddleware)

	finance.Get("/incomes", ListIncomesAPI)
	finance.Post("/incomes", CreateIncomeAPI)
	finance.Get("/expenses", ListExpensesAPI)
	finance.Post("/expenses", CreateExpenseAPI)
	finance.Get("/balance-sheet", BalanceSheetAPI)
}
