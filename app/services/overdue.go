package services

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

// SweepResult reports what one overdue sweep did.
type SweepResult struct {
	OverdueMarked    int `json:"overdue_marked"`
	RemindersCreated int `json:"reminders_created"`
	UpcomingNotified int `json:"upcoming_notified"`
}

// LateFeeFor computes the one-time late fee for an installment.
func LateFeeFor(amount, lateFeePercentage decimal.Decimal) decimal.Decimal {
	return amount.Mul(lateFeePercentage).Div(hundred).Round(2)
}

// OverduePriority grades an overdue notification by how late it is.
func OverduePriority(daysOverdue int) models.NotificationPriority {
	switch {
	case daysOverdue > 30:
		return models.PriorityUrgent
	case daysOverdue > 14:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}

// Sweep reclassifies past-due installments, computes late fees once and
// raises deduplicated notifications. Safe to run repeatedly and
// concurrently with payment recording: installment rows are locked and
// the (user, installment, type) unique key absorbs notification races.
func Sweep(db *sql.DB, today time.Time) (SweepResult, error) {
	var res SweepResult

	tx, err := db.Begin()
	if err != nil {
		return res, err
	}
	defer tx.Rollback()

	installments, err := database.FindPastDueInstallmentsTx(tx, today)
	if err != nil {
		return res, err
	}

	recipients, err := database.ListActiveStaffUserIDs(db)
	if err != nil {
		return res, err
	}

	for _, inst := range installments {
		daysOverdue := int(truncateDay(today).Sub(truncateDay(inst.DueDate)).Hours() / 24)

		inst.IsOverdue = true
		if inst.PaidAmount.IsZero() {
			inst.Status = models.InstallmentOverdue
		} else {
			inst.Status = models.InstallmentPartiallyPaid
		}

		if inst.LateFee.IsZero() {
			pct, err := database.LateFeePercentageForInstallmentTx(tx, inst.ID)
			if err != nil && err != sql.ErrNoRows {
				return res, err
			}
			if err == nil && pct.GreaterThan(decimal.Zero) {
				inst.LateFee = LateFeeFor(inst.Amount, pct)
			}
		}

		if err := database.UpdateInstallmentTx(tx, inst); err != nil {
			return res, err
		}
		res.OverdueMarked++

		studentID, studentName, planCreator, err := database.InstallmentContactsTx(tx, inst.ID)
		if err != nil {
			return res, err
		}

		users := notifyList(planCreator, recipients)
		for _, userID := range users {
			created, err := database.InsertNotificationIfAbsentTx(tx, &models.Notification{
				UserID:        userID,
				StudentID:     &studentID,
				InstallmentID: &inst.ID,
				Type:          models.NotificationOverdue,
				Priority:      OverduePriority(daysOverdue),
				Title:         fmt.Sprintf("Overdue Payment - %s", studentName),
				Message: fmt.Sprintf("Installment #%d is %d days overdue. Due date: %s. Outstanding amount: %s",
					inst.InstallmentNumber, daysOverdue, inst.DueDate.Format("02 Jan 2006"), inst.OutstandingAmount().StringFixed(2)),
			})
			if err != nil {
				return res, err
			}
			if created {
				res.RemindersCreated++
			}
		}
	}

	upcoming, err := sweepUpcomingTx(tx, today, recipients)
	if err != nil {
		return res, err
	}
	res.UpcomingNotified = upcoming

	if err := tx.Commit(); err != nil {
		return res, err
	}
	log.Printf("Installment sweep done: %d marked overdue, %d notifications, %d upcoming", res.OverdueMarked, res.RemindersCreated, res.UpcomingNotified)
	return res, nil
}

// upcomingNoticeDays is how many days before the due date the upcoming
// payment notification goes out.
const upcomingNoticeDays = 3

func sweepUpcomingTx(tx *sql.Tx, today time.Time, recipients []string) (int, error) {
	dueOn := truncateDay(today).AddDate(0, 0, upcomingNoticeDays)
	installments, err := database.FindPendingInstallmentsDueOnTx(tx, dueOn)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, inst := range installments {
		studentID, studentName, planCreator, err := database.InstallmentContactsTx(tx, inst.ID)
		if err != nil {
			return count, err
		}
		for _, userID := range notifyList(planCreator, recipients) {
			created, err := database.InsertNotificationIfAbsentTx(tx, &models.Notification{
				UserID:        userID,
				StudentID:     &studentID,
				InstallmentID: &inst.ID,
				Type:          models.NotificationUpcoming,
				Priority:      models.PriorityMedium,
				Title:         fmt.Sprintf("Upcoming Payment - %s", studentName),
				Message: fmt.Sprintf("Installment #%d is due in %d days. Due date: %s. Amount: %s",
					inst.InstallmentNumber, upcomingNoticeDays, inst.DueDate.Format("02 Jan 2006"), inst.Amount.StringFixed(2)),
			})
			if err != nil {
				return count, err
			}
			if created {
				count++
			}
		}
	}
	return count, nil
}

// notifyList merges the plan creator with the staff recipients, dropping
// duplicates.
func notifyList(planCreator *string, staff []string) []string {
	seen := make(map[string]bool, len(staff)+1)
	var users []string
	if planCreator != nil && *planCreator != "" {
		seen[*planCreator] = true
		users = append(users, *planCreator)
	}
	for _, id := range staff {
		if !seen[id] {
			seen[id] = true
			users = append(users, id)
		}
	}
	return users
}

// BulkReminderRequest creates payment reminders for all overdue installments.
type BulkReminderRequest struct {
	ReminderType models.ReminderType `json:"reminder_type" validate:"required,oneof=email sms phone letter"`
	Template     string              `json:"message" validate:"required"`
	CreatedBy    *string             `json:"-"`
}

// CreateBulkReminders writes one reminder per overdue installment using
// the message template. Placeholders: {student_name}, {amount}, {due_date}.
func CreateBulkReminders(db *sql.DB, req BulkReminderRequest) (int, error) {
	overdue, err := database.ListOverdueInstallments(db)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, inst := range overdue {
		msg := expandTemplate(req.Template, map[string]string{
			"student_name": inst.StudentName,
			"amount":       inst.Outstanding.StringFixed(2),
			"due_date":     inst.DueDate.Format("2006-01-02"),
		})
		err := database.InsertReminder(db, &models.PaymentReminder{
			StudentID:     inst.StudentID,
			InstallmentID: inst.ID,
			ReminderType:  req.ReminderType,
			ScheduledDate: time.Now(),
			Status:        "scheduled",
			Message:       msg,
			CreatedBy:     req.CreatedBy,
		})
		if err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func expandTemplate(template string, vars map[string]string) string {
	out := template
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{"+key+"}", val)
	}
	return out
}
