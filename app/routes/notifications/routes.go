package notifications

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/routes/auth"
)

func SetupNotificationsRoutes(app *fiber.App) {
	notifications := app.Group("/api/notifications")
	notifications.Use(auth.AuthMiddleware)

	notifications.Get("/", ListNotificationsAPI)
	notifications.Post("/:id/read", MarkReadAPI)
	notifications.Post("/sweep", RunSweepAPI)
	notifications.Post("/reminders/bulk", BulkRemindersAPI)
	notifications.Get("/reminders/student/:studentId", ListRemindersAPI)
}
