package reports

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pramodthundathil/blossom-school/app/config"
	"github.com/pramodthundathil/blossom-school/app/services"
)

func DashboardAPI(c *fiber.Ctx) error {
	stats, err := services.Dashboard(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(stats)
}

func OverdueReportAPI(c *fiber.Ctx) error {
	rows, total, err := services.OverdueReport(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{
		"installments":      rows,
		"count":             len(rows),
		"total_outstanding": total,
	})
}

func DefaultersAPI(c *fiber.Ctx) error {
	minDays := c.QueryInt("min_days", 0)
	entries, err := services.Defaulters(config.GetDB(), minDays)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(fiber.Map{"defaulters": entries, "count": len(entries)})
}

func PaymentSummaryAPI(c *fiber.Ctx) error {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(422).JSON(fiber.Map{"error": "Invalid from date, expected YYYY-MM-DD"})
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return c.Status(422).JSON(fiber.Map{"error": "Invalid to date, expected YYYY-MM-DD"})
		}
		to = parsed
	}

	summary, err := services.PaymentSummary(config.GetDB(), from, to)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
