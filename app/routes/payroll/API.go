package payroll

import (
	"database/sql"
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

type StaffRequest struct {
	FirstName               string          `json:"first_name" validate:"required"`
	LastName                string          `json:"last_name" validate:"required"`
	Designation             string          `json:"designation" validate:"required"`
	Phone                   string          `json:"phone"`
	BasicSalary             decimal.Decimal `json:"basic_salary"`
	AccommodationAllowance  decimal.Decimal `json:"accommodation_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	JoinedDate              *time.Time      `json:"joined_date"`
}

func ListStaffAPI(c *fiber.Ctx) error {
	activeOnly := c.QueryBool("active", true)
	staff, err := database.ListStaffMembers(config.GetDB(), activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"staff": staff, "count": len(staff)})
}

func CreateStaffAPI(c *fiber.Ctx) error {
	var req StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	if req.BasicSalary.IsNegative() {
		return c.Status(422).JSON(fiber.Map{"error": "Basic salary must not be negative"})
	}

	joined := time.Now()
	if req.JoinedDate != nil {
		joined = *req.JoinedDate
	}
	staff := &models.StaffMember{
		FirstName:               req.FirstName,
		LastName:                req.LastName,
		Designation:             req.Designation,
		Phone:                   req.Phone,
		BasicSalary:             req.BasicSalary,
		AccommodationAllowance:  req.AccommodationAllowance,
		TransportationAllowance: req.TransportationAllowance,
		JoinedDate:              joined,
		IsActive:                true,
	}
	if err := database.CreateStaffMember(config.GetDB(), staff); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(201).JSON(staff)
}

func GetStaffAPI(c *fiber.Ctx) error {
	staff, err := database.GetStaffMember(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Staff member not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(staff)
}

func UpdateStaffAPI(c *fiber.Ctx) error {
	staff, err := database.GetStaffMember(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Staff member not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req StaffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.BasicSalary.IsNegative() {
		return c.Status(422).JSON(fiber.Map{"error": "Basic salary must not be negative"})
	}

	staff.FirstName = req.FirstName
	staff.LastName = req.LastName
	staff.Designation = req.Designation
	staff.Phone = req.Phone
	staff.BasicSalary = req.BasicSalary
	staff.AccommodationAllowance = req.AccommodationAllowance
	staff.TransportationAllowance = req.TransportationAllowance

	if err := database.UpdateStaffMember(config.GetDB(), staff); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(staff)
}

func RecordAttendanceAPI(c *fiber.Ctx) error {
	type AttendanceRequest struct {
		StaffID string    `json:"staff_id" validate:"required,uuid"`
		Date    time.Time `json:"date" validate:"required"`
		Status  string    `json:"status" validate:"required,oneof=present absent half_day leave"`
	}
	var req AttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	err := services.RecordStaffAttendance(config.GetDB(), req.StaffID, req.Date, models.AttendanceStatus(req.Status))
	if err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"message": "Attendance recorded"})
}

func ListSalariesAPI(c *fiber.Ctx) error {
	now := time.Now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	salaries, err := database.ListSalariesForMonth(config.GetDB(), year, month)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"salaries": salaries, "count": len(salaries)})
}

func GenerateSalaryAPI(c *fiber.Ctx) error {
	type GenerateRequest struct {
		StaffID string          `json:"staff_id" validate:"required,uuid"`
		Year    int             `json:"year" validate:"required"`
		Month   int             `json:"month" validate:"required"`
		Bonus   decimal.Decimal `json:"bonus"`
	}
	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	salary, err := services.GenerateMonthlySalary(config.GetDB(), req.StaffID, req.Year, req.Month, req.Bonus)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(salary)
}

func MarkSalaryPaidAPI(c *fiber.Ctx) error {
	type PayRequest struct {
		Method   string     `json:"payment_method" validate:"required"`
		PaidDate *time.Time `json:"paid_date"`
	}
	var req PayRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	paidDate := time.Now()
	if req.PaidDate != nil {
		paidDate = *req.PaidDate
	}
	salary, err := services.MarkSalaryPaid(config.GetDB(), c.Params("id"), req.Method, paidDate)
	if err != nil {
		return err
	}
	return c.JSON(salary)
}
