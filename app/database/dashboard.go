package database

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// DashboardStats gathers the landing-page counters: headcounts, the
// current month's income, installment backlogs and the expected
// collection for next month.
func DashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE is_active = true`).Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM staff_members WHERE is_active = true`).Scan(&stats.TotalStaff)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM incomes
	                   WHERE date >= date_trunc('month', CURRENT_DATE)`).Scan(&stats.MonthlyRevenue)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT
	                     COUNT(*) FILTER (WHERE status IN ('pending', 'partially_paid')),
	                     COUNT(*) FILTER (WHERE status = 'overdue')
	                   FROM payment_installments`).Scan(&stats.PendingInstallments, &stats.OverdueInstallments)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COALESCE(SUM(amount + late_fee - paid_amount), 0)
	                   FROM payment_installments
	                   WHERE status IN ('pending', 'partially_paid', 'overdue')
	                     AND due_date >= date_trunc('month', CURRENT_DATE + interval '1 month')
	                     AND due_date < date_trunc('month', CURRENT_DATE + interval '2 month')`).
		Scan(&stats.ForecastNextMonth)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// PaymentSummaryBetween aggregates completed payments in a date range,
// grouped by payment method and by fee category.
func PaymentSummaryBetween(db *sql.DB, from, to time.Time) (*models.PaymentSummary, error) {
	summary := &models.PaymentSummary{
		From:          from,
		To:            to,
		TotalNet:      decimal.Zero,
		ByMethod:      make(map[string]decimal.Decimal),
		ByFeeCategory: make(map[string]decimal.Decimal),
	}

	err := db.QueryRow(`SELECT COALESCE(SUM(net_amount), 0), COUNT(*)
	                    FROM payments
	                    WHERE payment_status = 'completed' AND payment_date BETWEEN $1 AND $2`,
		from, to).Scan(&summary.TotalNet, &summary.PaymentCount)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT payment_method, SUM(net_amount)
	                       FROM payments
	                       WHERE payment_status = 'completed' AND payment_date BETWEEN $1 AND $2
	                       GROUP BY payment_method`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var method string
		var amount decimal.Decimal
		if err := rows.Scan(&method, &amount); err != nil {
			return nil, err
		}
		summary.ByMethod[method] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	catRows, err := db.Query(`SELECT fc.name, SUM(pi.net_amount)
	                          FROM payment_items pi
	                          JOIN payments p ON p.id = pi.payment_id
	                          JOIN fee_categories fc ON fc.id = pi.fee_category_id
	                          WHERE p.payment_status = 'completed' AND p.payment_date BETWEEN $1 AND $2
	                          GROUP BY fc.name`, from, to)
	if err != nil {
		return nil, err
	}
	defer catRows.Close()
	for catRows.Next() {
		var name string
		var amount decimal.Decimal
		if err := catRows.Scan(&name, &amount); err != nil {
			return nil, err
		}
		summary.ByFeeCategory[name] = amount
	}
	return summary, catRows.Err()
}
