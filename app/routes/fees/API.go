package fees

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

func ListCategoriesAPI(c *fiber.Ctx) error {
	categories, err := database.ListFeeCategories(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func CreateCategoryAPI(c *fiber.Ctx) error {
	type CategoryRequest struct {
		Name string `json:"name" validate:"required"`
	}
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	category := &models.FeeCategory{Name: req.Name}
	if err := database.CreateFeeCategory(config.GetDB(), category); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "Category name already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(201).JSON(category)
}

type StructureRequest struct {
	AcademicYear      int             `json:"academic_year" validate:"required"`
	FeeCategoryID     string          `json:"fee_category_id" validate:"required,uuid"`
	Amount            decimal.Decimal `json:"amount"`
	Frequency         string          `json:"frequency" validate:"omitempty,oneof=one_time monthly quarterly yearly"`
	IsMandatory       bool            `json:"is_mandatory"`
	LateFeePercentage decimal.Decimal `json:"late_fee_percentage"`
	DueDay            int             `json:"due_day" validate:"omitempty,min=1,max=31"`
}

func ListStructuresAPI(c *fiber.Ctx) error {
	academicYear := c.QueryInt("academic_year", 0)
	activeOnly := c.QueryBool("active", true)
	structures, err := database.ListFeeStructures(config.GetDB(), academicYear, activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"structures": structures})
}

func CreateStructureAPI(c *fiber.Ctx) error {
	var req StructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Amount.IsNegative() {
		return c.Status(422).JSON(fiber.Map{"error": "Amount must not be negative"})
	}

	frequency := models.Frequency(req.Frequency)
	if frequency == "" {
		frequency = models.FrequencyMonthly
	}
	dueDay := req.DueDay
	if dueDay == 0 {
		dueDay = 10
	}
	structure := &models.FeeStructure{
		AcademicYear:      req.AcademicYear,
		FeeCategoryID:     req.FeeCategoryID,
		Amount:            req.Amount,
		Frequency:         frequency,
		IsMandatory:       req.IsMandatory,
		LateFeePercentage: req.LateFeePercentage,
		DueDay:            dueDay,
		IsActive:          true,
	}
	if err := database.CreateFeeStructure(config.GetDB(), structure); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "A structure for this category and year already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(201).JSON(structure)
}

func GetStructureAPI(c *fiber.Ctx) error {
	structure, err := database.GetFeeStructure(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Fee structure not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(structure)
}

func UpdateStructureAPI(c *fiber.Ctx) error {
	structure, err := database.GetFeeStructure(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Fee structure not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req StructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.Amount.IsNegative() {
		return c.Status(422).JSON(fiber.Map{"error": "Amount must not be negative"})
	}

	structure.Amount = req.Amount
	if req.Frequency != "" {
		structure.Frequency = models.Frequency(req.Frequency)
	}
	structure.IsMandatory = req.IsMandatory
	structure.LateFeePercentage = req.LateFeePercentage
	if req.DueDay > 0 {
		structure.DueDay = req.DueDay
	}
	if err := database.UpdateFeeStructure(config.GetDB(), structure); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(structure)
}

func AssignFeeAPI(c *fiber.Ctx) error {
	var req services.AssignFeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	if req.StartDate.IsZero() {
		req.StartDate = time.Now()
	}
	req.CreatedBy = auth.CurrentUserID(c)

	assignment, err := services.AssignFee(config.GetDB(), req)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(assignment)
}

func ListAssignmentsAPI(c *fiber.Ctx) error {
	academicYear := c.QueryInt("academic_year", 0)
	activeOnly := c.QueryBool("active", true)
	assignments, err := database.ListFeeAssignmentsForStudent(config.GetDB(), c.Params("studentId"), academicYear, activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"assignments": assignments})
}

func UpdateAssignmentAPI(c *fiber.Ctx) error {
	type UpdateRequest struct {
		CustomAmount       decimal.NullDecimal `json:"custom_amount"`
		DiscountPercentage decimal.Decimal     `json:"discount_percentage"`
		DiscountAmount     decimal.Decimal     `json:"discount_amount"`
	}
	var req UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	assignment, err := services.UpdateAssignmentDiscounts(config.GetDB(), c.Params("id"),
		req.DiscountPercentage, req.DiscountAmount, req.CustomAmount)
	if err != nil {
		return err
	}
	return c.JSON(assignment)
}
