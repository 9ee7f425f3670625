package plans

import (
	"database/sql"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/routes/auth"
	"github.com/pramodthundathil/blossom-school/app/services"
)

var validate = validator.New()

func CreatePlanAPI(c *fiber.Ctx) error {
	var req services.CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	req.CreatedBy = auth.CurrentUserID(c)

	plan, err := services.CreatePaymentPlan(config.GetDB(), req)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(plan)
}

func GetPlanAPI(c *fiber.Ctx) error {
	plan, err := database.GetPaymentPlan(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Payment plan not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(plan)
}

func GetStudentPlanAPI(c *fiber.Ctx) error {
	academicYear := c.QueryInt("academic_year", 0)
	if academicYear == 0 {
		return c.Status(422).JSON(fiber.Map{"error": "academic_year query parameter is required"})
	}
	plan, err := database.GetPaymentPlanForStudent(config.GetDB(), c.Params("studentId"), academicYear)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "No plan for this student and year"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(plan)
}

func DeletePlanAPI(c *fiber.Ctx) error {
	if err := services.DeletePaymentPlan(config.GetDB(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Payment plan deleted"})
}

func HoldInstallmentAPI(c *fiber.Ctx) error {
	inst, err := services.HoldInstallment(config.GetDB(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(inst)
}
