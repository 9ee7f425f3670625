package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentPlan splits a student's obligation for an academic year into
// installments. Unique per (student, academic_year).
type PaymentPlan struct {
	ID                   string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID            string          `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	PlanType             PlanType        `json:"plan_type" gorm:"type:varchar(20);not null" validate:"required"`
	AcademicYear         int             `json:"academic_year" gorm:"not null" validate:"required"`
	TotalAmount          decimal.Decimal `json:"total_amount" gorm:"type:numeric(10,2);not null"`
	AdvanceAmount        decimal.Decimal `json:"advance_amount" gorm:"type:numeric(10,2);default:0"`
	BalanceAmount        decimal.Decimal `json:"balance_amount" gorm:"type:numeric(10,2);not null"`
	NumberOfInstallments int             `json:"number_of_installments" gorm:"default:1"`
	InstallmentAmount    decimal.Decimal `json:"installment_amount" gorm:"type:numeric(10,2);default:0"`
	StartDate            time.Time       `json:"start_date" gorm:"type:date;not null" validate:"required"`
	Status               PlanStatus      `json:"status" gorm:"type:varchar(20);default:'active'"`
	CreatedBy            *string         `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt            time.Time       `json:"created_at" gorm:"autoCreateTime"`

	Student      *Student              `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	Installments []*PaymentInstallment `json:"installments,omitempty" gorm:"foreignKey:PaymentPlanID;references:ID"`
}

// PaymentInstallment is one scheduled partial payment within a plan.
// Unique per (plan, installment_number).
type PaymentInstallment struct {
	ID                string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PaymentPlanID     string            `json:"payment_plan_id" gorm:"not null;index;type:uuid"`
	InstallmentNumber int               `json:"installment_number" gorm:"not null"`
	DueDate           time.Time         `json:"due_date" gorm:"type:date;not null"`
	Amount            decimal.Decimal   `json:"amount" gorm:"type:numeric(10,2);not null"`
	PaidAmount        decimal.Decimal   `json:"paid_amount" gorm:"type:numeric(10,2);default:0"`
	LateFee           decimal.Decimal   `json:"late_fee" gorm:"type:numeric(10,2);default:0"`
	Status            InstallmentStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	PaidDate          *time.Time        `json:"paid_date,omitempty" gorm:"type:date"`
	IsOverdue         bool              `json:"is_overdue" gorm:"default:false"`

	Plan *PaymentPlan `json:"plan,omitempty" gorm:"foreignKey:PaymentPlanID;references:ID"`
}

// OutstandingAmount returns amount + late_fee - paid_amount, clamped to
// zero so reports never show a negative balance.
func (i *PaymentInstallment) OutstandingAmount() decimal.Decimal {
	out := i.Amount.Add(i.LateFee).Sub(i.PaidAmount)
	if out.IsNegative() {
		return decimal.Zero
	}
	return out
}
