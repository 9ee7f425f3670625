package notifications

import (
	"database/sql"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/routes/auth"
	"github.com/pramodthundathil/blossom-school/app/services"
)

var validate = validator.New()

func ListNotificationsAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	unreadOnly := c.QueryBool("unread", false)
	list, err := database.ListNotificationsForUser(config.GetDB(), userID, unreadOnly)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"notifications": list, "count": len(list)})
}

func MarkReadAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	err := database.MarkNotificationRead(config.GetDB(), c.Params("id"), userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "Notification not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked read"})
}

// RunSweepAPI triggers the overdue sweep on demand, outside the nightly
// schedule.
func RunSweepAPI(c *fiber.Ctx) error {
	result, err := services.Sweep(config.GetDB(), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func BulkRemindersAPI(c *fiber.Ctx) error {
	var req services.BulkReminderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": err.Error()})
	}
	req.CreatedBy = auth.CurrentUserID(c)

	created, err := services.CreateBulkReminders(config.GetDB(), req)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(fiber.Map{"reminders_created": created})
}

func ListRemindersAPI(c *fiber.Ctx) error {
	reminders, err := database.ListRemindersForStudent(config.GetDB(), c.Params("studentId"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"reminders": reminders, "count": len(reminders)})
}
