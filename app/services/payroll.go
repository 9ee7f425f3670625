package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

// AttendanceCounts summarise one staff member's month.
type AttendanceCounts struct {
	WorkingDays int
	DaysPresent int
	DaysAbsent  int
	HalfDays    int
}

// ComputeMonthlySalary derives the salary figures for a month. Each full
// absent day deducts one day's basic pay, a half day deducts half of that.
func ComputeMonthlySalary(staff *models.StaffMember, counts AttendanceCounts, bonus decimal.Decimal) *models.MonthlySalary {
	gross := staff.BasicSalary.Add(staff.AccommodationAllowance).Add(staff.TransportationAllowance)

	deductions := decimal.Zero
	if counts.WorkingDays > 0 {
		perDay := staff.BasicSalary.DivRound(decimal.NewFromInt(int64(counts.WorkingDays)), 2)
		absent := perDay.Mul(decimal.NewFromInt(int64(counts.DaysAbsent)))
		half := perDay.Mul(decimal.NewFromInt(int64(counts.HalfDays))).DivRound(decimal.NewFromInt(2), 2)
		deductions = absent.Add(half)
	}

	net := gross.Add(bonus).Sub(deductions).Round(2)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return &models.MonthlySalary{
		StaffID:                 staff.ID,
		BasicSalary:             staff.BasicSalary,
		AccommodationAllowance:  staff.AccommodationAllowance,
		TransportationAllowance: staff.TransportationAllowance,
		GrossSalary:             gross,
		TotalWorkingDays:        counts.WorkingDays,
		DaysPresent:             counts.DaysPresent,
		DaysAbsent:              counts.DaysAbsent,
		HalfDays:                counts.HalfDays,
		Bonus:                   bonus,
		Deductions:              deductions,
		NetSalary:               net,
		PaymentStatus:           models.SalaryPending,
	}
}

// WorkingDaysInMonth counts the days of a month excluding Sundays.
func WorkingDaysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()
	count := 0
	for d := 1; d <= days; d++ {
		if time.Date(year, month, d, 0, 0, 0, 0, time.UTC).Weekday() != time.Sunday {
			count++
		}
	}
	return count
}

// GenerateMonthlySalary computes and stores a staff member's salary for a
// month from recorded attendance.
func GenerateMonthlySalary(db *sql.DB, staffID string, year int, month int, bonus decimal.Decimal) (*models.MonthlySalary, error) {
	if month < 1 || month > 12 {
		return nil, NewValidationError("invalid salary period").WithField("month", "must be between 1 and 12")
	}

	staff, err := database.GetStaffMember(db, staffID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "staff member", ID: staffID}
		}
		return nil, err
	}

	present, absent, halfDays, err := database.AttendanceCountsForMonth(db, staffID, year, month)
	if err != nil {
		return nil, err
	}

	salary := ComputeMonthlySalary(staff, AttendanceCounts{
		WorkingDays: WorkingDaysInMonth(year, time.Month(month)),
		DaysPresent: present,
		DaysAbsent:  absent,
		HalfDays:    halfDays,
	}, bonus)
	salary.Month = month
	salary.Year = year

	if err := database.InsertMonthlySalary(db, salary); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &ConflictError{Message: fmt.Sprintf("salary for %d-%02d already generated", year, month)}
		}
		return nil, err
	}
	return salary, nil
}

// MarkSalaryPaid marks a pending or processed salary as paid and mirrors
// the net amount into the expense book in the same transaction.
func MarkSalaryPaid(db *sql.DB, salaryID string, method string, paidDate time.Time) (*models.MonthlySalary, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	salary, err := database.GetMonthlySalaryForUpdateTx(tx, salaryID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "salary", ID: salaryID}
		}
		return nil, err
	}
	if salary.PaymentStatus == models.SalaryPaid {
		return nil, &ConflictError{Message: "salary is already paid"}
	}
	if salary.PaymentStatus == models.SalaryHold {
		return nil, &ConflictError{Message: "salary is on hold"}
	}

	staff, err := database.GetStaffMember(db, salary.StaffID)
	if err != nil {
		return nil, err
	}

	salary.PaymentStatus = models.SalaryPaid
	salary.PaidDate = &paidDate
	salary.PaymentMethod = &method
	if err := database.UpdateMonthlySalaryTx(tx, salary); err != nil {
		return nil, err
	}

	if err := database.InsertExpenseTx(tx, &models.Expense{
		Category: "Salaries",
		Title:    fmt.Sprintf("Salary Payout: %s", staff.FullName()),
		Amount:   salary.NetSalary,
		Date:     paidDate,
		Notes:    fmt.Sprintf("Payroll disbursement for %d-%02d", salary.Year, salary.Month),
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return salary, nil
}

// RecordStaffAttendance upserts one attendance mark.
func RecordStaffAttendance(db *sql.DB, staffID string, date time.Time, status models.AttendanceStatus) error {
	if _, err := database.GetStaffMember(db, staffID); err != nil {
		if err == sql.ErrNoRows {
			return &NotFoundError{Entity: "staff member", ID: staffID}
		}
		return err
	}
	return database.UpsertStaffAttendance(db, staffID, date, status)
}
