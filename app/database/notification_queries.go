package database

import (
	"database/sql"
	"fmt"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// InsertNotificationIfAbsentTx inserts a notification unless one already
// exists for the same (user, installment, type). Returns whether a row was
// created.
func InsertNotificationIfAbsentTx(tx *sql.Tx, n *models.Notification) (bool, error) {
	query := `INSERT INTO notifications
	          (user_id, student_id, installment_id, notification_type, priority, title, message)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          ON CONFLICT (user_id, installment_id, notification_type) DO NOTHING
	          RETURNING id`
	err := tx.QueryRow(query,
		n.UserID, n.StudentID, n.InstallmentID, n.Type, n.Priority, n.Title, n.Message,
	).Scan(&n.ID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to insert notification: %v", err)
	}
	return true, nil
}

// ListNotificationsForUser retrieves a user's notifications, unread first.
func ListNotificationsForUser(db *sql.DB, userID string, unreadOnly bool) ([]*models.Notification, error) {
	query := `SELECT id, user_id, student_id, installment_id, notification_type, priority,
	                 title, message, is_read, created_at
	          FROM notifications
	          WHERE user_id = $1 AND (NOT $2 OR is_read = false)
	          ORDER BY is_read, created_at DESC`
	rows, err := db.Query(query, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		err := rows.Scan(&n.ID, &n.UserID, &n.StudentID, &n.InstallmentID, &n.Type, &n.Priority,
			&n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(db *sql.DB, id, userID string) error {
	result, err := db.Exec(`UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// InsertReminder queues one payment reminder.
func InsertReminder(db *sql.DB, r *models.PaymentReminder) error {
	query := `INSERT INTO payment_reminders
	          (student_id, installment_id, reminder_type, scheduled_date, status, message, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at`
	err := db.QueryRow(query,
		r.StudentID, r.InstallmentID, r.ReminderType, r.ScheduledDate, r.Status, r.Message, r.CreatedBy,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert reminder: %v", err)
	}
	return nil
}

// ListOverdueInstallments retrieves every overdue installment with its
// student and plan context for reports and bulk reminders.
func ListOverdueInstallments(db *sql.DB) ([]models.InstallmentResponse, error) {
	query := `SELECT i.id, i.payment_plan_id, i.installment_number, i.due_date, i.amount,
	                 i.paid_amount, i.late_fee, i.status, i.paid_date, i.is_overdue,
	                 s.id, s.first_name || ' ' || s.last_name, p.plan_type,
	                 GREATEST(i.amount + i.late_fee - i.paid_amount, 0),
	                 GREATEST((CURRENT_DATE - i.due_date), 0)
	          FROM payment_installments i
	          JOIN payment_plans p ON p.id = i.payment_plan_id
	          JOIN students s ON s.id = p.student_id
	          WHERE i.status = 'overdue' OR (i.is_overdue AND i.status = 'partially_paid')
	          ORDER BY i.due_date`
	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InstallmentResponse
	for rows.Next() {
		var r models.InstallmentResponse
		err := rows.Scan(&r.ID, &r.PaymentPlanID, &r.InstallmentNumber, &r.DueDate, &r.Amount,
			&r.PaidAmount, &r.LateFee, &r.Status, &r.PaidDate, &r.IsOverdue,
			&r.StudentID, &r.StudentName, &r.PlanType, &r.Outstanding, &r.DaysOverdue)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListDefaulters aggregates overdue installments per student, keeping
// students whose oldest overdue installment is at least minDays old.
func ListDefaulters(db *sql.DB, minDays int) ([]models.DefaulterEntry, error) {
	query := `SELECT s.id, s.first_name || ' ' || s.last_name, s.admission_no,
	                 COUNT(*),
	                 SUM(GREATEST(i.amount + i.late_fee - i.paid_amount, 0)),
	                 MIN(i.due_date)
	          FROM payment_installments i
	          JOIN payment_plans p ON p.id = i.payment_plan_id
	          JOIN students s ON s.id = p.student_id
	          WHERE i.status = 'overdue' OR (i.is_overdue AND i.status = 'partially_paid')
	          GROUP BY s.id, s.first_name, s.last_name, s.admission_no
	          HAVING MIN(i.due_date) <= CURRENT_DATE - $1::int
	          ORDER BY MIN(i.due_date)`
	rows, err := db.Query(query, minDays)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.DefaulterEntry
	for rows.Next() {
		var e models.DefaulterEntry
		err := rows.Scan(&e.StudentID, &e.StudentName, &e.AdmissionNo,
			&e.OverdueCount, &e.TotalOutstanding, &e.OldestDueDate)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListRemindersForStudent retrieves reminders for a student, newest first.
func ListRemindersForStudent(db *sql.DB, studentID string) ([]*models.PaymentReminder, error) {
	query := `SELECT id, student_id, installment_id, reminder_type, scheduled_date, sent_date,
	                 status, message, created_by, created_at
	          FROM payment_reminders
	          WHERE student_id = $1
	          ORDER BY created_at DESC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []*models.PaymentReminder
	for rows.Next() {
		r := &models.PaymentReminder{}
		err := rows.Scan(&r.ID, &r.StudentID, &r.InstallmentID, &r.ReminderType, &r.ScheduledDate,
			&r.SentDate, &r.Status, &r.Message, &r.CreatedBy, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
