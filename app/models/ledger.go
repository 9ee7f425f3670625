package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentLedger is an append-only audit trail of debits and credits per
// student. Entries are never mutated after creation.
type StudentLedger struct {
	ID              string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID       string          `json:"student_id" gorm:"not null;index;type:uuid"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"type:date;not null"`
	TransactionType TransactionType `json:"transaction_type" gorm:"type:varchar(10);not null"`
	FeeCategoryID   *string         `json:"fee_category_id,omitempty" gorm:"type:uuid"`
	PaymentID       *string         `json:"payment_id,omitempty" gorm:"type:uuid"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Description     string          `json:"description"`
	ReferenceNumber *string         `json:"reference_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// Income is a general income book entry, mirrored from completed payments.
type Income struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Particulars string          `json:"particulars" gorm:"not null" validate:"required"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Date        time.Time       `json:"date" gorm:"type:date;default:CURRENT_DATE"`
	BillNumber  *string         `json:"bill_number,omitempty"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// Expense is a general expense book entry, mirrored from payroll
// disbursements and recorded directly for other outgoings.
type Expense struct {
	ID        string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Category  string          `json:"category" gorm:"not null" validate:"required"`
	Title     string          `json:"title" gorm:"not null" validate:"required"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	Date      time.Time       `json:"date" gorm:"type:date;default:CURRENT_DATE"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// BalanceSheetLine is one combined credit/debit row on the month balance sheet.
type BalanceSheetLine struct {
	Type        TransactionType `json:"type"`
	Date        time.Time       `json:"date"`
	Particulars string          `json:"particulars"`
	Amount      decimal.Decimal `json:"amount"`
}
