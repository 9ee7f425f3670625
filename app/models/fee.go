package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FeeCategory is a named fee bucket referenced by structures, assignments
// and payment items.
type FeeCategory struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// FeeStructure defines the fee amount for a category within an academic
// year. Unique per (academic_year, fee_category).
type FeeStructure struct {
	ID                string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AcademicYear      int             `json:"academic_year" gorm:"not null" validate:"required"`
	FeeCategoryID     string          `json:"fee_category_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Amount            decimal.Decimal `json:"amount" gorm:"not null;type:numeric(10,2)"`
	Frequency         Frequency       `json:"frequency" gorm:"type:varchar(20);default:'monthly'"`
	IsMandatory       bool            `json:"is_mandatory" gorm:"default:true"`
	LateFeePercentage decimal.Decimal `json:"late_fee_percentage" gorm:"type:numeric(5,2);default:0"`
	DueDay            int             `json:"due_day" gorm:"default:10" validate:"min=1,max=31"`
	IsActive          bool            `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt         time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	FeeCategory *FeeCategory `json:"fee_category,omitempty" gorm:"foreignKey:FeeCategoryID;references:ID"`
}

// StudentFeeAssignment binds a student to a fee structure with optional
// per-student overrides. Unique per (student, fee_structure).
type StudentFeeAssignment struct {
	ID                 string              `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID          string              `json:"student_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	FeeStructureID     string              `json:"fee_structure_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	CustomAmount       decimal.NullDecimal `json:"custom_amount,omitempty" gorm:"type:numeric(10,2)"`
	DiscountPercentage decimal.Decimal     `json:"discount_percentage" gorm:"type:numeric(5,2);default:0"`
	DiscountAmount     decimal.Decimal     `json:"discount_amount" gorm:"type:numeric(10,2);default:0"`
	FinalAmount        decimal.Decimal     `json:"final_amount" gorm:"type:numeric(10,2);default:0"`
	StartDate          time.Time           `json:"start_date" gorm:"type:date;not null" validate:"required"`
	EndDate            *time.Time          `json:"end_date,omitempty" gorm:"type:date"`
	IsActive           bool                `json:"is_active" gorm:"default:true"`
	CreatedBy          *string             `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt          time.Time           `json:"created_at" gorm:"autoCreateTime"`

	Student      *Student      `json:"student,omitempty" gorm:"foreignKey:StudentID;references:ID"`
	FeeStructure *FeeStructure `json:"fee_structure,omitempty" gorm:"foreignKey:FeeStructureID;references:ID"`
}

// BaseAmount returns the custom amount when set, otherwise the structure
// amount. The fee structure must be loaded.
func (a *StudentFeeAssignment) BaseAmount() decimal.Decimal {
	if a.CustomAmount.Valid {
		return a.CustomAmount.Decimal
	}
	return a.FeeStructure.Amount
}
