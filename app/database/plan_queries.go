package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// InsertPaymentPlanTx inserts a payment plan and fills in the generated id.
func InsertPaymentPlanTx(tx *sql.Tx, p *models.PaymentPlan) error {
	query := `INSERT INTO payment_plans
	          (student_id, plan_type, academic_year, total_amount, advance_amount, balance_amount,
	           number_of_installments, installment_amount, start_date, status, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING id, created_at`
	return tx.QueryRow(query,
		p.StudentID, p.PlanType, p.AcademicYear, p.TotalAmount, p.AdvanceAmount, p.BalanceAmount,
		p.NumberOfInstallments, p.InstallmentAmount, p.StartDate, p.Status, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt)
}

// InsertInstallmentTx inserts an installment and fills in the generated id.
func InsertInstallmentTx(tx *sql.Tx, i *models.PaymentInstallment) error {
	query := `INSERT INTO payment_installments
	          (payment_plan_id, installment_number, due_date, amount, paid_amount, late_fee, status, is_overdue)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	return tx.QueryRow(query,
		i.PaymentPlanID, i.InstallmentNumber, i.DueDate, i.Amount, i.PaidAmount, i.LateFee, i.Status, i.IsOverdue,
	).Scan(&i.ID)
}

const planColumns = `id, student_id, plan_type, academic_year, total_amount, advance_amount,
	balance_amount, number_of_installments, installment_amount, start_date, status, created_by, created_at`

func scanPlan(row *sql.Row) (*models.PaymentPlan, error) {
	p := &models.PaymentPlan{}
	err := row.Scan(
		&p.ID, &p.StudentID, &p.PlanType, &p.AcademicYear, &p.TotalAmount, &p.AdvanceAmount,
		&p.BalanceAmount, &p.NumberOfInstallments, &p.InstallmentAmount, &p.StartDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPaymentPlanTx retrieves a plan inside a transaction.
func GetPaymentPlanTx(tx *sql.Tx, id string) (*models.PaymentPlan, error) {
	return scanPlan(tx.QueryRow(`SELECT `+planColumns+` FROM payment_plans WHERE id = $1`, id))
}

// GetPaymentPlan retrieves a plan with its installments.
func GetPaymentPlan(db *sql.DB, id string) (*models.PaymentPlan, error) {
	p, err := scanPlan(db.QueryRow(`SELECT `+planColumns+` FROM payment_plans WHERE id = $1`, id))
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT id, payment_plan_id, installment_number, due_date, amount,
	                              paid_amount, late_fee, status, paid_date, is_overdue
	                       FROM payment_installments
	                       WHERE payment_plan_id = $1
	                       ORDER BY installment_number`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		i := &models.PaymentInstallment{}
		err := rows.Scan(&i.ID, &i.PaymentPlanID, &i.InstallmentNumber, &i.DueDate, &i.Amount,
			&i.PaidAmount, &i.LateFee, &i.Status, &i.PaidDate, &i.IsOverdue)
		if err != nil {
			return nil, err
		}
		p.Installments = append(p.Installments, i)
	}
	return p, rows.Err()
}

// GetPaymentPlanForStudent retrieves a student's plan for an academic year.
func GetPaymentPlanForStudent(db *sql.DB, studentID string, academicYear int) (*models.PaymentPlan, error) {
	p, err := scanPlan(db.QueryRow(
		`SELECT `+planColumns+` FROM payment_plans WHERE student_id = $1 AND academic_year = $2`,
		studentID, academicYear))
	if err != nil {
		return nil, err
	}
	return GetPaymentPlan(db, p.ID)
}

// DeletePaymentPlanTx deletes a plan; installments cascade.
func DeletePaymentPlanTx(tx *sql.Tx, id string) error {
	result, err := tx.Exec(`DELETE FROM payment_plans WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete payment plan: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetPlanInstallmentsTx retrieves a plan's installments ordered by number,
// locking the rows when forUpdate is set.
func GetPlanInstallmentsTx(tx *sql.Tx, planID string, forUpdate bool) ([]*models.PaymentInstallment, error) {
	query := `SELECT id, payment_plan_id, installment_number, due_date, amount,
	                 paid_amount, late_fee, status, paid_date, is_overdue
	          FROM payment_installments
	          WHERE payment_plan_id = $1
	          ORDER BY installment_number`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := tx.Query(query, planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.PaymentInstallment
	for rows.Next() {
		i := &models.PaymentInstallment{}
		err := rows.Scan(&i.ID, &i.PaymentPlanID, &i.InstallmentNumber, &i.DueDate, &i.Amount,
			&i.PaidAmount, &i.LateFee, &i.Status, &i.PaidDate, &i.IsOverdue)
		if err != nil {
			return nil, err
		}
		installments = append(installments, i)
	}
	return installments, rows.Err()
}

// GetInstallmentForUpdateTx retrieves one installment with a row lock.
func GetInstallmentForUpdateTx(tx *sql.Tx, id string) (*models.PaymentInstallment, error) {
	query := `SELECT id, payment_plan_id, installment_number, due_date, amount,
	                 paid_amount, late_fee, status, paid_date, is_overdue
	          FROM payment_installments
	          WHERE id = $1
	          FOR UPDATE`
	i := &models.PaymentInstallment{}
	err := tx.QueryRow(query, id).Scan(&i.ID, &i.PaymentPlanID, &i.InstallmentNumber, &i.DueDate,
		&i.Amount, &i.PaidAmount, &i.LateFee, &i.Status, &i.PaidDate, &i.IsOverdue)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// UpdateInstallmentTx writes back the mutable columns of an installment.
func UpdateInstallmentTx(tx *sql.Tx, i *models.PaymentInstallment) error {
	query := `UPDATE payment_installments
	          SET amount = $2, paid_amount = $3, late_fee = $4, status = $5,
	              paid_date = $6, is_overdue = $7
	          WHERE id = $1`
	result, err := tx.Exec(query, i.ID, i.Amount, i.PaidAmount, i.LateFee, i.Status, i.PaidDate, i.IsOverdue)
	if err != nil {
		return fmt.Errorf("failed to update installment: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindPastDueInstallmentsTx locks and returns the unpaid installments
// whose due date has passed. Held installments never surface here.
func FindPastDueInstallmentsTx(tx *sql.Tx, today time.Time) ([]*models.PaymentInstallment, error) {
	query := `SELECT id, payment_plan_id, installment_number, due_date, amount,
	                 paid_amount, late_fee, status, paid_date, is_overdue
	          FROM payment_installments
	          WHERE due_date < $1::date
	            AND status IN ('pending', 'partially_paid', 'overdue')
	          ORDER BY due_date
	          FOR UPDATE`
	rows, err := tx.Query(query, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.PaymentInstallment
	for rows.Next() {
		i := &models.PaymentInstallment{}
		err := rows.Scan(&i.ID, &i.PaymentPlanID, &i.InstallmentNumber, &i.DueDate, &i.Amount,
			&i.PaidAmount, &i.LateFee, &i.Status, &i.PaidDate, &i.IsOverdue)
		if err != nil {
			return nil, err
		}
		installments = append(installments, i)
	}
	return installments, rows.Err()
}

// FindPendingInstallmentsDueOnTx returns pending installments due on the
// given date, for upcoming payment notices.
func FindPendingInstallmentsDueOnTx(tx *sql.Tx, dueOn time.Time) ([]*models.PaymentInstallment, error) {
	query := `SELECT id, payment_plan_id, installment_number, due_date, amount,
	                 paid_amount, late_fee, status, paid_date, is_overdue
	          FROM payment_installments
	          WHERE due_date = $1::date AND status = 'pending'
	          ORDER BY id`
	rows, err := tx.Query(query, dueOn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []*models.PaymentInstallment
	for rows.Next() {
		i := &models.PaymentInstallment{}
		err := rows.Scan(&i.ID, &i.PaymentPlanID, &i.InstallmentNumber, &i.DueDate, &i.Amount,
			&i.PaidAmount, &i.LateFee, &i.Status, &i.PaidDate, &i.IsOverdue)
		if err != nil {
			return nil, err
		}
		installments = append(installments, i)
	}
	return installments, rows.Err()
}

// ListPendingInstallmentsForStudent returns a student's unpaid
// installments. A zero academicYear includes every year.
func ListPendingInstallmentsForStudent(db *sql.DB, studentID string, academicYear int) ([]models.PaymentInstallment, error) {
	query := `SELECT i.id, i.payment_plan_id, i.installment_number, i.due_date, i.amount,
	                 i.paid_amount, i.late_fee, i.status, i.paid_date, i.is_overdue
	          FROM payment_installments i
	          JOIN payment_plans p ON p.id = i.payment_plan_id
	          WHERE p.student_id = $1
	            AND ($2 = 0 OR p.academic_year = $2)
	            AND i.status IN ('pending', 'partially_paid', 'overdue')
	          ORDER BY i.due_date`
	rows, err := db.Query(query, studentID, academicYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var installments []models.PaymentInstallment
	for rows.Next() {
		var i models.PaymentInstallment
		err := rows.Scan(&i.ID, &i.PaymentPlanID, &i.InstallmentNumber, &i.DueDate, &i.Amount,
			&i.PaidAmount, &i.LateFee, &i.Status, &i.PaidDate, &i.IsOverdue)
		if err != nil {
			return nil, err
		}
		installments = append(installments, i)
	}
	return installments, rows.Err()
}

// LateFeePercentageForInstallmentTx resolves the late fee percentage for an
// installment from the student's fee assignments in the plan's academic
// year, falling back to the earliest assignment. sql.ErrNoRows when the
// student has no assignments.
func LateFeePercentageForInstallmentTx(tx *sql.Tx, installmentID string) (decimal.Decimal, error) {
	query := `SELECT fs.late_fee_percentage
	          FROM payment_installments i
	          JOIN payment_plans p ON p.id = i.payment_plan_id
	          JOIN student_fee_assignments a ON a.student_id = p.student_id AND a.is_active = true
	          JOIN fee_structures fs ON fs.id = a.fee_structure_id
	          WHERE i.id = $1
	          ORDER BY (fs.academic_year = p.academic_year) DESC, a.created_at
	          LIMIT 1`
	var pct decimal.Decimal
	if err := tx.QueryRow(query, installmentID).Scan(&pct); err != nil {
		return decimal.Zero, err
	}
	return pct, nil
}

// InstallmentContactsTx resolves who an installment notification concerns:
// the student and the user who created the plan.
func InstallmentContactsTx(tx *sql.Tx, installmentID string) (string, string, *string, error) {
	query := `SELECT s.id, s.first_name || ' ' || s.last_name, p.created_by
	          FROM payment_installments i
	          JOIN payment_plans p ON p.id = i.payment_plan_id
	          JOIN students s ON s.id = p.student_id
	          WHERE i.id = $1`
	var studentID, studentName string
	var planCreator *string
	if err := tx.QueryRow(query, installmentID).Scan(&studentID, &studentName, &planCreator); err != nil {
		return "", "", nil, err
	}
	return studentID, studentName, planCreator, nil
}
