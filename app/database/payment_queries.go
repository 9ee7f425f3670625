package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// NextPaymentIDTx reserves the next receipt number for the payment date's
// month, in the form PAY<yyyy><mm><seq>. The sequence row is upserted
// atomically so concurrent transactions never receive the same number.
func NextPaymentIDTx(tx *sql.Tx, date time.Time) (string, error) {
	prefix := fmt.Sprintf("PAY%s", date.Format("200601"))
	query := `INSERT INTO payment_sequences (prefix, last_seq) VALUES ($1, 1)
	          ON CONFLICT (prefix) DO UPDATE SET last_seq = payment_sequences.last_seq + 1
	          RETURNING last_seq`
	var seq int
	if err := tx.QueryRow(query, prefix).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to reserve payment id: %v", err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// InsertPaymentTx inserts a payment and fills in the generated id.
func InsertPaymentTx(tx *sql.Tx, p *models.Payment) error {
	query := `INSERT INTO payments
	          (payment_id, student_id, total_amount, discount_amount, late_fee_amount, net_amount,
	           payment_method, payment_status, transaction_reference, payment_date, remarks,
	           reversal_of, collected_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	          RETURNING id, created_at`
	return tx.QueryRow(query,
		p.PaymentID, p.StudentID, p.TotalAmount, p.DiscountAmount, p.LateFeeAmount, p.NetAmount,
		p.PaymentMethod, p.PaymentStatus, p.TransactionReference, p.PaymentDate, p.Remarks,
		p.ReversalOf, p.CollectedBy,
	).Scan(&p.ID, &p.CreatedAt)
}

// InsertPaymentItemTx inserts a payment line and fills in the generated id.
func InsertPaymentItemTx(tx *sql.Tx, it *models.PaymentItem) error {
	query := `INSERT INTO payment_items
	          (payment_id, fee_category_id, installment_id, description, amount,
	           discount_amount, late_fee, net_amount)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id`
	return tx.QueryRow(query,
		it.PaymentID, it.FeeCategoryID, it.InstallmentID, it.Description, it.Amount,
		it.DiscountAmount, it.LateFee, it.NetAmount,
	).Scan(&it.ID)
}

const paymentColumns = `id, payment_id, student_id, total_amount, discount_amount, late_fee_amount,
	net_amount, payment_method, payment_status, transaction_reference, payment_date, remarks,
	reversal_of, collected_by, created_at`

func scanPayment(scan func(dest ...any) error) (*models.Payment, error) {
	p := &models.Payment{}
	err := scan(
		&p.ID, &p.PaymentID, &p.StudentID, &p.TotalAmount, &p.DiscountAmount, &p.LateFeeAmount,
		&p.NetAmount, &p.PaymentMethod, &p.PaymentStatus, &p.TransactionReference, &p.PaymentDate,
		&p.Remarks, &p.ReversalOf, &p.CollectedBy, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPaymentByID retrieves a payment with its items.
func GetPaymentByID(db *sql.DB, id string) (*models.Payment, error) {
	p, err := scanPayment(db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id).Scan)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(`SELECT id, payment_id, fee_category_id, installment_id, description,
	                              amount, discount_amount, late_fee, net_amount
	                       FROM payment_items
	                       WHERE payment_id = $1
	                       ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		it := &models.PaymentItem{}
		err := rows.Scan(&it.ID, &it.PaymentID, &it.FeeCategoryID, &it.InstallmentID, &it.Description,
			&it.Amount, &it.DiscountAmount, &it.LateFee, &it.NetAmount)
		if err != nil {
			return nil, err
		}
		p.Items = append(p.Items, it)
	}
	return p, rows.Err()
}

// GetPaymentForUpdateTx retrieves a payment with a row lock so its status
// cannot change under the transaction.
func GetPaymentForUpdateTx(tx *sql.Tx, id string) (*models.Payment, error) {
	return scanPayment(tx.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id).Scan)
}

// GetPaymentByReceiptNumber retrieves a payment by its PAY receipt number.
func GetPaymentByReceiptNumber(db *sql.DB, receiptNo string) (*models.Payment, error) {
	p, err := scanPayment(db.QueryRow(`SELECT `+paymentColumns+` FROM payments WHERE payment_id = $1`, receiptNo).Scan)
	if err != nil {
		return nil, err
	}
	return GetPaymentByID(db, p.ID)
}

// ListPaymentsForStudent retrieves a student's payments, newest first.
func ListPaymentsForStudent(db *sql.DB, studentID string) ([]*models.Payment, error) {
	rows, err := db.Query(`SELECT `+paymentColumns+`
	                       FROM payments
	                       WHERE student_id = $1
	                       ORDER BY payment_date DESC, created_at DESC`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// PaymentFilter narrows a payment listing. Zero values mean "any".
type PaymentFilter struct {
	StudentID string
	Method    models.PaymentMethod
	Status    models.PaymentStatus
	From      time.Time
	To        time.Time
}

// ListPayments retrieves payments matching the filter, newest first.
func ListPayments(db *sql.DB, f PaymentFilter) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE 1=1`
	var args []any
	if f.StudentID != "" {
		args = append(args, f.StudentID)
		query += fmt.Sprintf(" AND student_id = $%d", len(args))
	}
	if f.Method != "" {
		args = append(args, f.Method)
		query += fmt.Sprintf(" AND payment_method = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += fmt.Sprintf(" AND payment_status = $%d", len(args))
	}
	if !f.From.IsZero() {
		args = append(args, f.From)
		query += fmt.Sprintf(" AND payment_date >= $%d::date", len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		query += fmt.Sprintf(" AND payment_date <= $%d::date", len(args))
	}
	query += " ORDER BY payment_date DESC, created_at DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// MarkPaymentStatusTx moves a payment from one status to another. The
// update is conditional on the current status so a concurrent writer that
// already moved the row makes this report sql.ErrNoRows instead of
// overwriting.
func MarkPaymentStatusTx(tx *sql.Tx, id string, from, to models.PaymentStatus) error {
	result, err := tx.Exec(`UPDATE payments SET payment_status = $3, updated_at = NOW()
	                        WHERE id = $1 AND payment_status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
