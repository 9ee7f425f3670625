package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// InsertLedgerEntryTx appends one entry to the student ledger. Entries are
// never updated or deleted.
func InsertLedgerEntryTx(tx *sql.Tx, e *models.StudentLedger) error {
	query := `INSERT INTO student_ledger
	          (student_id, transaction_date, transaction_type, fee_category_id, payment_id,
	           amount, description, reference_number)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`
	return tx.QueryRow(query,
		e.StudentID, e.TransactionDate, e.TransactionType, e.FeeCategoryID, e.PaymentID,
		e.Amount, e.Description, e.ReferenceNumber,
	).Scan(&e.ID, &e.CreatedAt)
}

// ListLedgerForStudent retrieves a student's ledger entries in
// chronological order.
func ListLedgerForStudent(db *sql.DB, studentID string) ([]*models.StudentLedger, error) {
	query := `SELECT id, student_id, transaction_date, transaction_type, fee_category_id,
	                 payment_id, amount, description, reference_number, created_at
	          FROM student_ledger
	          WHERE student_id = $1
	          ORDER BY transaction_date, created_at`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.StudentLedger
	for rows.Next() {
		e := &models.StudentLedger{}
		err := rows.Scan(&e.ID, &e.StudentID, &e.TransactionDate, &e.TransactionType, &e.FeeCategoryID,
			&e.PaymentID, &e.Amount, &e.Description, &e.ReferenceNumber, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SumLedgerCredits totals a student's credits net of debit reversals
// linked to payments.
func SumLedgerCredits(db *sql.DB, studentID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(CASE WHEN transaction_type = 'credit' THEN amount ELSE -amount END), 0)
	          FROM student_ledger
	          WHERE student_id = $1 AND payment_id IS NOT NULL`
	var total decimal.Decimal
	if err := db.QueryRow(query, studentID).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// InsertIncomeTx inserts an income book entry inside a transaction.
func InsertIncomeTx(tx *sql.Tx, in *models.Income) error {
	query := `INSERT INTO incomes (particulars, amount, date, bill_number)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	return tx.QueryRow(query, in.Particulars, in.Amount, in.Date, in.BillNumber).
		Scan(&in.ID, &in.CreatedAt)
}

// InsertIncome inserts a directly recorded income entry.
func InsertIncome(db *sql.DB, in *models.Income) error {
	query := `INSERT INTO incomes (particulars, amount, date, bill_number)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at`
	err := db.QueryRow(query, in.Particulars, in.Amount, in.Date, in.BillNumber).
		Scan(&in.ID, &in.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert income: %v", err)
	}
	return nil
}

// ListIncomes retrieves income entries within a date range, newest first.
func ListIncomes(db *sql.DB, from, to time.Time) ([]*models.Income, error) {
	query := `SELECT id, particulars, amount, date, bill_number, created_at
	          FROM incomes
	          WHERE date BETWEEN $1 AND $2
	          ORDER BY date DESC, created_at DESC`
	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var incomes []*models.Income
	for rows.Next() {
		in := &models.Income{}
		if err := rows.Scan(&in.ID, &in.Particulars, &in.Amount, &in.Date, &in.BillNumber, &in.CreatedAt); err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// InsertExpenseTx inserts an expense book entry inside a transaction.
func InsertExpenseTx(tx *sql.Tx, e *models.Expense) error {
	query := `INSERT INTO expenses (category, title, amount, date, notes)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	return tx.QueryRow(query, e.Category, e.Title, e.Amount, e.Date, e.Notes).
		Scan(&e.ID, &e.CreatedAt)
}

// InsertExpense inserts a directly recorded expense entry.
func InsertExpense(db *sql.DB, e *models.Expense) error {
	query := `INSERT INTO expenses (category, title, amount, date, notes)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at`
	err := db.QueryRow(query, e.Category, e.Title, e.Amount, e.Date, e.Notes).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %v", err)
	}
	return nil
}

// ListExpenses retrieves expense entries within a date range, newest first.
func ListExpenses(db *sql.DB, from, to time.Time) ([]*models.Expense, error) {
	query := `SELECT id, category, title, amount, date, notes, created_at
	          FROM expenses
	          WHERE date BETWEEN $1 AND $2
	          ORDER BY date DESC, created_at DESC`
	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		e := &models.Expense{}
		if err := rows.Scan(&e.ID, &e.Category, &e.Title, &e.Amount, &e.Date, &e.Notes, &e.CreatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// ListBalanceSheet merges incomes and expenses over a date range into one
// chronological statement. Incomes surface as credits, expenses as debits.
func ListBalanceSheet(db *sql.DB, from, to time.Time) ([]models.BalanceSheetLine, error) {
	query := `SELECT 'credit' AS type, date, particulars, amount FROM incomes
	          WHERE date BETWEEN $1 AND $2
	          UNION ALL
	          SELECT 'debit' AS type, date, category || ': ' || title, amount FROM expenses
	          WHERE date BETWEEN $1 AND $2
	          ORDER BY date, type`
	rows, err := db.Query(query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []models.BalanceSheetLine
	for rows.Next() {
		var l models.BalanceSheetLine
		if err := rows.Scan(&l.Type, &l.Date, &l.Particulars, &l.Amount); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
