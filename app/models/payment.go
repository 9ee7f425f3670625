package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is the main payment transaction record. Payments are immutable
// once created; corrections are made through reversal payments that
// reference the original via ReversalOf.
type Payment struct {
	ID                   string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PaymentID            string          `json:"payment_id" gorm:"uniqueIndex;not null"`
	StudentID            string          `json:"student_id" gorm:"not null;index;type:uuid"`
	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	DiscountAmount       decimal.Decimal `json:"discount_amount" gorm:"type:numeric(10,2);default:0"`
	LateFeeAmount        decimal.Decimal `json:"late_fee_amount" gorm:"type:numeric(10,2);default:0"`
	NetAmount            decimal.Decimal `json:"net_amount" gorm:"type:numeric(10,2);not null"`
	PaymentMethod        PaymentMethod   `json:"payment_method" gorm:"type:varchar(20);not null"`
	PaymentStatus        PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	TransactionReference string          `json:"transaction_reference,omitempty"`
	PaymentDate          time.Time       `json:"payment_date" gorm:"type:date;not null;index"`
	Remarks              string          `json:"remarks,omitempty"`
	ReversalOf           *string         `json:"reversal_of,omitempty" gorm:"type:uuid"`
	CollectedBy          *string         `json:"collected_by,omitempty" gorm:"type:uuid"`
	CreatedAt            time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Student *Student       `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Items   []*PaymentItem `json:"items,omitempty" gorm:"foreignKey:PaymentID;references:ID"`
}

// PaymentItem is one fee line inside a payment.
type PaymentItem struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PaymentID      string          `json:"payment_id" gorm:"not null;index;type:uuid"`
	FeeCategoryID  string          `json:"fee_category_id" gorm:"not null;type:uuid"`
	InstallmentID  *string         `json:"installment_id,omitempty" gorm:"type:uuid"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:numeric(10,2);not null"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(10,2);default:0"`
	LateFee        decimal.Decimal `json:"late_fee" gorm:"type:numeric(10,2);default:0"`
	NetAmount      decimal.Decimal `json:"net_amount" gorm:"type:numeric(10,2);not null"`

	FeeCategory *FeeCategory `json:"fee_category,omitempty" gorm:"foreignKey:FeeCategoryID;references:ID"`
}
