package payments

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
	"github.com/pramodthundathil/blossom-school/app/routes/auth"
	"github.com/pramodthundathil/blossom-school/app/services"
)

var validate = validator.New()

func RecordPaymentAPI(c *fiber.Ctx) error {
	var req services.RecordPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	req.CollectedBy = auth.CurrentUserID(c)

	payment, err := services.RecordPayment(config.GetDB(), req)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(payment)
}

func ListPaymentsAPI(c *fiber.Ctx) error {
	filter := database.PaymentFilter{
		StudentID: c.Query("student_id"),
		Method:    models.PaymentMethod(c.Query("method")),
		Status:    models.PaymentStatus(c.Query("status")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid from date, expected YYYY-MM-DD"})
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid to date, expected YYYY-MM-DD"})
		}
		filter.To = t
	}

	payments, err := database.ListPayments(config.GetDB(), filter)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"payments": payments, "count": len(payments)})
}

func ValidateAmountAPI(c *fiber.Ctx) error {
	studentID := c.Query("student_id")
	if studentID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "student_id is required"})
	}
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid amount"})
	}

	check, err := services.ValidatePaymentAmount(config.GetDB(), studentID, amount, c.QueryInt("academic_year"))
	if err != nil {
		return err
	}
	return c.JSON(check)
}

func GetPaymentAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByID(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(payment)
}

func GetPaymentByReceiptAPI(c *fiber.Ctx) error {
	payment, err := database.GetPaymentByReceiptNumber(config.GetDB(), c.Params("receiptNo"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(payment)
}

func ReversePaymentAPI(c *fiber.Ctx) error {
	type ReverseRequest struct {
		Reason string `json:"reason" validate:"required"`
	}
	var req ReverseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	reversal, err := services.ReversePayment(config.GetDB(), c.Params("id"), req.Reason, auth.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.Status(201).JSON(reversal)
}
