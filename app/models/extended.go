package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StudentBalance summarises a student's financial position for one
// academic year.
type StudentBalance struct {
	StudentID           string               `json:"student_id"`
	StudentName         string               `json:"student_name"`
	AcademicYear        int                  `json:"academic_year"`
	TotalAnnualFees     decimal.Decimal      `json:"total_annual_fees"`
	TotalPaid           decimal.Decimal      `json:"total_paid"`
	Balance             decimal.Decimal      `json:"balance"`
	PendingInstallments []PaymentInstallment `json:"pending_installments"`
}

// InstallmentResponse extends an installment with plan and student details
// for report listings.
type InstallmentResponse struct {
	PaymentInstallment
	StudentID   string          `json:"student_id"`
	StudentName string          `json:"student_name"`
	PlanType    PlanType        `json:"plan_type"`
	Outstanding decimal.Decimal `json:"outstanding"`
	DaysOverdue int             `json:"days_overdue,omitempty"`
}

// DefaulterEntry is one row of the defaulter report.
type DefaulterEntry struct {
	StudentID        string          `json:"student_id"`
	StudentName      string          `json:"student_name"`
	AdmissionNo      string          `json:"admission_no"`
	OverdueCount     int             `json:"overdue_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OldestDueDate    time.Time       `json:"oldest_due_date"`
}

// PaymentSummary aggregates payments for a date range.
type PaymentSummary struct {
	From          time.Time                  `json:"from"`
	To            time.Time                  `json:"to"`
	TotalNet      decimal.Decimal            `json:"total_net"`
	PaymentCount  int                        `json:"payment_count"`
	ByMethod      map[string]decimal.Decimal `json:"by_method"`
	ByFeeCategory map[string]decimal.Decimal `json:"by_fee_category"`
}

// DashboardStats is the landing-page summary.
type DashboardStats struct {
	TotalStudents       int             `json:"total_students"`
	TotalStaff          int             `json:"total_staff"`
	MonthlyRevenue      decimal.Decimal `json:"monthly_revenue"`
	PendingInstallments int             `json:"pending_installments"`
	OverdueInstallments int             `json:"overdue_installments"`
	ForecastNextMonth   decimal.Decimal `json:"forecast_next_month"`
}
