package main

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/routes/auth"
	"github.com/pramodthundathil/blossom-school/app/routes/fees"
	"github.com/pramodthundathil/blossom-school/app/routes/finance"
	"github.com/pramodthundathil/blossom-school/app/routes/notifications"
	"github.com/pramodthundathil/blossom-school/app/routes/payments"
	"github.com/pramodthundathil/blossom-school/app/routes/payroll"
	"github.com/pramodthundathil/blossom-school/app/routes/plans"
	"github.com/pramodthundathil/blossom-school/app/routes/reports"
	"github.com/pramodthundathil/blossom-school/app/routes/students"
	"github.com/pramodthundathil/blossom-school/app/services"
)

// customErrorHandler maps service errors onto HTTP status codes.
func customErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		body := fiber.Map{"error": validationErr.Message}
		if len(validationErr.Fields) > 0 {
			body["fields"] = validationErr.Fields
		}
		return c.Status(422).JSON(body)
	}

	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(404).JSON(fiber.Map{"error": notFoundErr.Error()})
	}

	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return c.Status(409).JSON(fiber.Map{"error": conflictErr.Message})
	}

	var concurrencyErr *services.ConcurrencyError
	if errors.As(err, &concurrencyErr) {
		return c.Status(409).JSON(fiber.Map{"error": concurrencyErr.Message})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
		"code":    code,
	})
}

func main() {
	// Initialize database
	config.Load()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start the nightly overdue sweep
	scheduler := services.StartOverdueScheduler(config.GetDB())
	defer scheduler.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Setup auth routes
	auth.SetupAuthRoutes(app)

	// Setup students routes
	students.SetupStudentsRoutes(app)

	// Setup fees routes
	fees.SetupFeesRoutes(app)

	// Setup payment plan routes
	plans.SetupPlansRoutes(app)

	// Setup payments routes
	payments.SetupPaymentsRoutes(app)

	// Setup finance routes
	finance.SetupFinanceRoutes(app)

	// Setup payroll routes
	payroll.SetupPayrollRoutes(app)

	// Setup notifications routes
	notifications.SetupNotificationsRoutes(app)

	// Setup reports routes
	reports.SetupReportsRoutes(app)

	log.Printf("Server starting on port %s", config.AppConfig.Port)
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
