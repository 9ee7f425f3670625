package services

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

// StudentBalance assembles one student's fee position for an academic year:
// annual fees, amounts paid against them, and pending installments. A zero
// academicYear covers the student's whole history.
func StudentBalance(db *sql.DB, studentID string, academicYear int) (*models.StudentBalance, error) {
	student, err := database.GetStudent(db, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "student", ID: studentID}
		}
		return nil, err
	}

	annual, err := AnnualFees(db, studentID, academicYear)
	if err != nil {
		return nil, err
	}

	paid, err := database.SumLedgerCredits(db, studentID)
	if err != nil {
		return nil, err
	}

	pending, err := database.ListPendingInstallmentsForStudent(db, studentID, academicYear)
	if err != nil {
		return nil, err
	}

	balance := annual.Sub(paid)
	if balance.IsNegative() {
		balance = decimal.Zero
	}

	return &models.StudentBalance{
		StudentID:           student.ID,
		StudentName:         student.FullName(),
		AcademicYear:        academicYear,
		TotalAnnualFees:     annual,
		TotalPaid:           paid,
		Balance:             balance,
		PendingInstallments: pending,
	}, nil
}

// OverdueReport lists overdue installments with the aggregate outstanding.
func OverdueReport(db *sql.DB) ([]models.InstallmentResponse, decimal.Decimal, error) {
	rows, err := database.ListOverdueInstallments(db)
	if err != nil {
		return nil, decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Outstanding)
	}
	return rows, total, nil
}

// Defaulters lists students whose installments have been overdue for at
// least minDays, with their aggregate outstanding.
func Defaulters(db *sql.DB, minDays int) ([]models.DefaulterEntry, error) {
	if minDays < 0 {
		minDays = 0
	}
	return database.ListDefaulters(db, minDays)
}

// PaymentSummary aggregates completed payments over a date range, grouped
// by payment method and fee category.
func PaymentSummary(db *sql.DB, from, to time.Time) (*models.PaymentSummary, error) {
	if to.Before(from) {
		return nil, NewValidationError("invalid date range").WithField("to", "must not precede from")
	}
	return database.PaymentSummaryBetween(db, from, to)
}

// Dashboard gathers the headline counters for the admin landing page.
func Dashboard(db *sql.DB) (*models.DashboardStats, error) {
	return database.DashboardStats(db)
}

// BalanceSheet lists income and expense entries for a date range together
// with the running totals.
func BalanceSheet(db *sql.DB, from, to time.Time) ([]models.BalanceSheetLine, decimal.Decimal, decimal.Decimal, error) {
	if to.Before(from) {
		return nil, decimal.Zero, decimal.Zero, NewValidationError("invalid date range").WithField("to", "must not precede from")
	}
	lines, err := database.ListBalanceSheet(db, from, to)
	if err != nil {
		return nil, decimal.Zero, decimal.Zero, err
	}
	income := decimal.Zero
	expense := decimal.Zero
	for _, l := range lines {
		if l.Type == models.TransactionCredit {
			income = income.Add(l.Amount)
		} else {
			expense = expense.Add(l.Amount)
		}
	}
	return lines, income, expense, nil
}
