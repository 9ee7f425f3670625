package finance

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
	"github.com/pramodthundathil/blossom-school/app/services"
)

var validate = validator.New()

// dateRange reads from/to query parameters, defaulting to the current
// month.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, err
		}
		to = parsed
	}
	return from, to, nil
}

func ListIncomesAPI(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	incomes, err := database.ListIncomes(config.GetDB(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	total := decimal.Zero
	for _, in := range incomes {
		total = total.Add(in.Amount)
	}
	return c.JSON(fiber.Map{"incomes": incomes, "total": total})
}

func CreateIncomeAPI(c *fiber.Ctx) error {
	type IncomeRequest struct {
		Particulars string          `json:"particulars" validate:"required"`
		Amount      decimal.Decimal `json:"amount"`
		Date        *time.Time      `json:"date"`
		BillNumber  *string         `json:"bill_number"`
	}
	var req IncomeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return c.Status(422).JSON(fiber.Map{"error": "Amount must be greater than zero"})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	income := &models.Income{
		Particulars: req.Particulars,
		Amount:      req.Amount,
		Date:        date,
		BillNumber:  req.BillNumber,
	}
	if err := database.InsertIncome(config.GetDB(), income); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(201).JSON(income)
}

func ListExpensesAPI(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	expenses, err := database.ListExpenses(config.GetDB(), from, to)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return c.JSON(fiber.Map{"expenses": expenses, "total": total})
}

func CreateExpenseAPI(c *fiber.Ctx) error {
	type ExpenseRequest struct {
		Category string          `json:"category" validate:"required"`
		Title    string          `json:"title" validate:"required"`
		Amount   decimal.Decimal `json:"amount"`
		Date     *time.Time      `json:"date"`
		Notes    string          `json:"notes"`
	}
	var req ExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return c.Status(422).JSON(fiber.Map{"error": "Amount must be greater than zero"})
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}
	expense := &models.Expense{
		Category: req.Category,
		Title:    req.Title,
		Amount:   req.Amount,
		Date:     date,
		Notes:    req.Notes,
	}
	if err := database.InsertExpense(config.GetDB(), expense); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(201).JSON(expense)
}

func BalanceSheetAPI(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}
	lines, income, expense, err := services.BalanceSheet(config.GetDB(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"lines":         lines,
		"total_income":  income,
		"total_expense": expense,
		"net":           income.Sub(expense),
	})
}
