package students

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
	"github.com/pramodthundathil/blossom-school/app/services"
)

var validate = validator.New()

type StudentRequest struct {
	AdmissionNo   string     `json:"admission_no" validate:"required"`
	FirstName     string     `json:"first_name" validate:"required"`
	LastName      string     `json:"last_name" validate:"required"`
	DateOfBirth   *time.Time `json:"date_of_birth"`
	Gender        string     `json:"gender" validate:"omitempty,oneof=male female other"`
	GuardianName  string     `json:"guardian_name"`
	GuardianPhone string     `json:"guardian_phone"`
	Address       string     `json:"address"`
	AdmissionDate *time.Time `json:"admission_date"`
}

func ListStudentsAPI(c *fiber.Ctx) error {
	search := c.Query("search")
	activeOnly := c.QueryBool("active", true)
	students, err := database.ListStudents(config.GetDB(), search, activeOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"students": students, "count": len(students)})
}

func CreateStudentAPI(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	admissionDate := time.Now()
	if req.AdmissionDate != nil {
		admissionDate = *req.AdmissionDate
	}
	student := &models.Student{
		AdmissionNo:   req.AdmissionNo,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        models.Gender(req.Gender),
		GuardianName:  req.GuardianName,
		GuardianPhone: req.GuardianPhone,
		Address:       req.Address,
		AdmissionDate: admissionDate,
	}
	if err := database.CreateStudent(config.GetDB(), student); err != nil {
		if database.IsUniqueViolation(err) {
			return c.Status(409).JSON(fiber.Map{"error": "Admission number already exists"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.Status(201).JSON(student)
}

func GetStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(student)
}

func UpdateStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.DateOfBirth = req.DateOfBirth
	student.Gender = models.Gender(req.Gender)
	student.GuardianName = req.GuardianName
	student.GuardianPhone = req.GuardianPhone
	student.Address = req.Address

	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(student)
}

func DeactivateStudentAPI(c *fiber.Ctx) error {
	student, err := database.GetStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	student.IsActive = false
	if err := database.UpdateStudent(config.GetDB(), student); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"message": "Student deactivated"})
}

func StudentBalanceAPI(c *fiber.Ctx) error {
	academicYear := c.QueryInt("academic_year", 0)
	balance, err := services.StudentBalance(config.GetDB(), c.Params("id"), academicYear)
	if err != nil {
		return err
	}
	return c.JSON(balance)
}

func StudentLedgerAPI(c *fiber.Ctx) error {
	entries, err := database.ListLedgerForStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"entries": entries, "count": len(entries)})
}

func StudentPaymentsAPI(c *fiber.Ctx) error {
	payments, err := database.ListPaymentsForStudent(config.GetDB(), c.Params("id"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"payments": payments, "count": len(payments)})
}
