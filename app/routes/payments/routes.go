package payments

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupPaymentsRoutes(app *fiber.App) {
	payments := app.Group("/api/payments")
	payments.Use(auth.AuthMiddleware)

	payments.Get("/", ListPaymentsAPI)
	payments.Post("/", RecordPaymentAPI)
	payments.Get("/validate-amount", ValidateAmountAPI)
	payments.Get("/receipt/:receiptNo", GetPaymentByReceiptAPI)
	payments.Get("/:id", GetPaymentAPI)
	payments.Post("/:id/reverse", ReversePaymentAPI)
}
