package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StaffMember represents a salaried staff member.
type StaffMember struct {
	ID                      string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FirstName               string          `json:"first_name" gorm:"not null" validate:"required"`
	LastName                string          `json:"last_name" gorm:"not null" validate:"required"`
	Designation             string          `json:"designation" gorm:"not null" validate:"required"`
	Phone                   string          `json:"phone,omitempty" gorm:"type:varchar(20)"`
	BasicSalary             decimal.Decimal `json:"basic_salary" gorm:"type:numeric(10,2);default:0"`
	AccommodationAllowance  decimal.Decimal `json:"accommodation_allowance" gorm:"type:numeric(10,2);default:0"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance" gorm:"type:numeric(10,2);default:0"`
	JoinedDate              time.Time       `json:"joined_date" gorm:"type:date;default:CURRENT_DATE"`
	IsActive                bool            `json:"is_active" gorm:"default:true"`
	CreatedAt               time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (s *StaffMember) FullName() string {
	return s.FirstName + " " + s.LastName
}

// StaffAttendance is one attendance mark per staff member per day.
type StaffAttendance struct {
	ID        string           `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StaffID   string           `json:"staff_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Date      time.Time        `json:"date" gorm:"type:date;not null" validate:"required"`
	Status    AttendanceStatus `json:"status" gorm:"type:varchar(10);not null" validate:"required"`
	CreatedAt time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// MonthlySalary is the computed salary of a staff member for one month.
// Unique per (staff, month, year).
type MonthlySalary struct {
	ID                      string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StaffID                 string          `json:"staff_id" gorm:"not null;index;type:uuid"`
	Month                   int             `json:"month" gorm:"not null" validate:"min=1,max=12"`
	Year                    int             `json:"year" gorm:"not null" validate:"min=2020"`
	BasicSalary             decimal.Decimal `json:"basic_salary" gorm:"type:numeric(10,2);not null"`
	AccommodationAllowance  decimal.Decimal `json:"accommodation_allowance" gorm:"type:numeric(10,2);default:0"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance" gorm:"type:numeric(10,2);default:0"`
	GrossSalary             decimal.Decimal `json:"gross_salary" gorm:"type:numeric(10,2);not null"`
	TotalWorkingDays        int             `json:"total_working_days" gorm:"default:0"`
	DaysPresent             int             `json:"days_present" gorm:"default:0"`
	DaysAbsent              int             `json:"days_absent" gorm:"default:0"`
	HalfDays                int             `json:"half_days" gorm:"default:0"`
	Bonus                   decimal.Decimal `json:"bonus" gorm:"type:numeric(10,2);default:0"`
	Deductions              decimal.Decimal `json:"deductions" gorm:"type:numeric(10,2);default:0"`
	NetSalary               decimal.Decimal `json:"net_salary" gorm:"type:numeric(10,2);not null"`
	PaymentStatus           SalaryStatus    `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	PaidDate                *time.Time      `json:"paid_date,omitempty" gorm:"type:date"`
	PaymentMethod           *string         `json:"payment_method,omitempty" gorm:"type:varchar(50)"`
	CreatedAt               time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt               time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	Staff *StaffMember `json:"staff,omitempty" gorm:"foreignKey:StaffID;references:ID"`
}
