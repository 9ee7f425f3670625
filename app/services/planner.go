package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

// customTolerance is the maximum difference allowed between the sum of
// custom installments and the plan balance.
var customTolerance = decimal.NewFromFloat(0.01)

// InstallmentSpec is one scheduled installment produced by BuildSchedule.
type InstallmentSpec struct {
	Number  int             `json:"number"`
	DueDate time.Time       `json:"due_date"`
	Amount  decimal.Decimal `json:"amount"`
}

// CustomInstallment is a caller-supplied (date, amount) pair for custom plans.
type CustomInstallment struct {
	DueDate time.Time       `json:"due_date" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
}

// ScheduleParams describes how to split a plan balance into installments.
type ScheduleParams struct {
	PlanType             models.PlanType
	TotalAmount          decimal.Decimal
	AdvanceAmount        decimal.Decimal
	NumberOfInstallments int
	StartDate            time.Time
	Frequency            string // weekly, monthly, quarterly, 3_months, 6_months, custom
	FrequencyDays        int    // step for Frequency == "custom"
	CustomInstallments   []CustomInstallment
}

// Balance returns total minus advance.
func (p ScheduleParams) Balance() decimal.Decimal {
	return p.TotalAmount.Sub(p.AdvanceAmount)
}

// BuildSchedule produces the ordered installment sequence for a plan.
// Non-custom plans split the balance into equal two-decimal amounts with
// the last installment absorbing the rounding remainder. Custom plans use
// the supplied pairs after checking their sum against the balance.
func BuildSchedule(p ScheduleParams) ([]InstallmentSpec, error) {
	if p.TotalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("invalid plan").WithField("total_amount", "must be greater than zero")
	}
	if p.AdvanceAmount.IsNegative() || p.AdvanceAmount.GreaterThan(p.TotalAmount) {
		return nil, NewValidationError("invalid plan").WithField("advance_amount", "must be between zero and the total amount")
	}
	balance := p.Balance()

	if p.PlanType == models.PlanCustom {
		return buildCustomSchedule(balance, p.CustomInstallments)
	}

	n := p.NumberOfInstallments
	if p.PlanType == models.PlanFull {
		n = 1
	}
	if n <= 0 {
		return nil, NewValidationError("invalid plan").WithField("number_of_installments", "must be at least 1")
	}

	per := balance.DivRound(decimal.NewFromInt(int64(n)), 2)
	specs := make([]InstallmentSpec, 0, n)
	due := p.StartDate
	for i := 1; i <= n; i++ {
		amount := per
		if i == n {
			// Last installment absorbs the division remainder.
			amount = balance.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))
		}
		specs = append(specs, InstallmentSpec{Number: i, DueDate: due, Amount: amount})

		next, err := nextDueDate(p, due, i)
		if err != nil {
			return nil, err
		}
		due = next
	}
	return specs, nil
}

func buildCustomSchedule(balance decimal.Decimal, items []CustomInstallment) ([]InstallmentSpec, error) {
	if len(items) == 0 {
		return nil, NewValidationError("invalid plan").WithField("installments", "custom plan requires explicit installments")
	}
	sum := decimal.Zero
	for _, it := range items {
		if it.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, NewValidationError("invalid plan").WithField("installments", "installment amounts must be greater than zero")
		}
		sum = sum.Add(it.Amount)
	}
	if sum.Sub(balance).Abs().GreaterThan(customTolerance) {
		return nil, NewValidationError("invalid plan").WithField("installments",
			fmt.Sprintf("installments sum to %s but plan balance is %s", sum.StringFixed(2), balance.StringFixed(2)))
	}
	specs := make([]InstallmentSpec, 0, len(items))
	for i, it := range items {
		specs = append(specs, InstallmentSpec{Number: i + 1, DueDate: it.DueDate, Amount: it.Amount})
	}
	return specs, nil
}

func nextDueDate(p ScheduleParams, current time.Time, step int) (time.Time, error) {
	freq := p.Frequency
	if freq == "" {
		switch p.PlanType {
		case models.PlanMonthly:
			freq = "monthly"
		case models.PlanQuarterly:
			freq = "quarterly"
		default:
			freq = "monthly"
		}
	}

	switch freq {
	case "weekly":
		return current.AddDate(0, 0, 7), nil
	case "monthly":
		// Step from the start date so a day-31 start clamps per month
		// instead of drifting to whatever the clamped date allows.
		return addMonthsClamped(p.StartDate, step), nil
	case "quarterly", "3_months":
		return current.AddDate(0, 0, 90), nil
	case "6_months":
		return current.AddDate(0, 0, 180), nil
	case "custom":
		if p.FrequencyDays <= 0 {
			return time.Time{}, NewValidationError("invalid plan").WithField("frequency_days", "must be greater than zero")
		}
		return current.AddDate(0, 0, p.FrequencyDays), nil
	default:
		return time.Time{}, NewValidationError("invalid plan").WithField("frequency", "unknown frequency "+freq)
	}
}

// addMonthsClamped adds months keeping the day-of-month, clamped to the
// length of the target month (Jan 31 + 1 month = Feb 28/29).
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, t.Location())
}

// CreatePlanRequest creates a payment plan plus its installments.
type CreatePlanRequest struct {
	StudentID            string               `json:"student_id" validate:"required,uuid"`
	PlanType             models.PlanType      `json:"plan_type" validate:"required,oneof=full monthly quarterly custom"`
	AcademicYear         int                  `json:"academic_year" validate:"required"`
	TotalAmount          decimal.Decimal      `json:"total_amount"`
	AdvanceAmount        decimal.Decimal      `json:"advance_amount"`
	NumberOfInstallments int                  `json:"number_of_installments"`
	StartDate            time.Time            `json:"start_date" validate:"required"`
	Frequency            string               `json:"frequency"`
	FrequencyDays        int                  `json:"frequency_days"`
	CustomInstallments   []CustomInstallment  `json:"custom_installments"`
	AdvanceMethod        models.PaymentMethod `json:"advance_method"`
	CreatedBy            *string              `json:"-"`
}

// CreatePaymentPlan creates the plan, its installments, a ledger debit for
// the total obligation and, when an advance was taken, the advance payment
// with its ledger and income entries — all in one transaction.
func CreatePaymentPlan(db *sql.DB, req CreatePlanRequest) (*models.PaymentPlan, error) {
	student, err := database.GetStudent(db, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "student", ID: req.StudentID}
		}
		return nil, err
	}

	specs, err := BuildSchedule(ScheduleParams{
		PlanType:             req.PlanType,
		TotalAmount:          req.TotalAmount,
		AdvanceAmount:        req.AdvanceAmount,
		NumberOfInstallments: req.NumberOfInstallments,
		StartDate:            req.StartDate,
		Frequency:            req.Frequency,
		FrequencyDays:        req.FrequencyDays,
		CustomInstallments:   req.CustomInstallments,
	})
	if err != nil {
		return nil, err
	}

	balance := req.TotalAmount.Sub(req.AdvanceAmount)
	installmentAmount := decimal.Zero
	if req.PlanType != models.PlanCustom && len(specs) > 0 {
		installmentAmount = specs[0].Amount
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	plan := &models.PaymentPlan{
		StudentID:            req.StudentID,
		PlanType:             req.PlanType,
		AcademicYear:         req.AcademicYear,
		TotalAmount:          req.TotalAmount,
		AdvanceAmount:        req.AdvanceAmount,
		BalanceAmount:        balance,
		NumberOfInstallments: len(specs),
		InstallmentAmount:    installmentAmount,
		StartDate:            req.StartDate,
		Status:               models.PlanActive,
		CreatedBy:            req.CreatedBy,
	}
	if err := database.InsertPaymentPlanTx(tx, plan); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &ConflictError{Message: "student already has a payment plan for this academic year"}
		}
		return nil, err
	}

	for _, spec := range specs {
		inst := &models.PaymentInstallment{
			PaymentPlanID:     plan.ID,
			InstallmentNumber: spec.Number,
			DueDate:           spec.DueDate,
			Amount:            spec.Amount,
			PaidAmount:        decimal.Zero,
			LateFee:           decimal.Zero,
			Status:            models.InstallmentPending,
		}
		if err := database.InsertInstallmentTx(tx, inst); err != nil {
			return nil, err
		}
		plan.Installments = append(plan.Installments, inst)
	}

	// Debit the full obligation onto the student ledger.
	if err := database.InsertLedgerEntryTx(tx, &models.StudentLedger{
		StudentID:       req.StudentID,
		TransactionDate: req.StartDate,
		TransactionType: models.TransactionDebit,
		Amount:          req.TotalAmount,
		Description:     fmt.Sprintf("Fee plan %d (%s)", req.AcademicYear, req.PlanType),
	}); err != nil {
		return nil, err
	}

	if req.AdvanceAmount.GreaterThan(decimal.Zero) {
		method := req.AdvanceMethod
		if method == "" {
			method = models.MethodCash
		}
		if _, err := recordAdvanceTx(tx, student, plan, method, req.CreatedBy); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return plan, nil
}

// recordAdvanceTx books the advance taken at plan creation: a completed
// payment, a ledger credit and an income entry.
func recordAdvanceTx(tx *sql.Tx, student *models.Student, plan *models.PaymentPlan, method models.PaymentMethod, collectedBy *string) (*models.Payment, error) {
	paymentID, err := database.NextPaymentIDTx(tx, plan.StartDate)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		PaymentID:     paymentID,
		StudentID:     student.ID,
		TotalAmount:   plan.AdvanceAmount,
		NetAmount:     plan.AdvanceAmount,
		PaymentMethod: method,
		PaymentStatus: models.PaymentCompleted,
		PaymentDate:   plan.StartDate,
		Remarks:       fmt.Sprintf("Advance for payment plan %d", plan.AcademicYear),
		CollectedBy:   collectedBy,
	}
	if err := database.InsertPaymentTx(tx, payment); err != nil {
		return nil, err
	}

	if err := database.InsertLedgerEntryTx(tx, &models.StudentLedger{
		StudentID:       student.ID,
		TransactionDate: plan.StartDate,
		TransactionType: models.TransactionCredit,
		PaymentID:       &payment.ID,
		Amount:          plan.AdvanceAmount,
		Description:     "Advance payment",
		ReferenceNumber: &payment.PaymentID,
	}); err != nil {
		return nil, err
	}

	if err := database.InsertIncomeTx(tx, &models.Income{
		Particulars: fmt.Sprintf("Advance fee payment of %s by %s", student.FullName(), method),
		Amount:      plan.AdvanceAmount,
		Date:        plan.StartDate,
		BillNumber:  &payment.PaymentID,
	}); err != nil {
		return nil, err
	}
	return payment, nil
}

// DeletePaymentPlan removes a plan and its installments. Plans with any
// recorded installment payment cannot be deleted.
func DeletePaymentPlan(db *sql.DB, planID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	installments, err := database.GetPlanInstallmentsTx(tx, planID, true)
	if err != nil {
		return err
	}
	if len(installments) == 0 {
		if _, err := database.GetPaymentPlanTx(tx, planID); err != nil {
			if err == sql.ErrNoRows {
				return &NotFoundError{Entity: "payment plan", ID: planID}
			}
			return err
		}
	}
	for _, inst := range installments {
		if inst.PaidAmount.GreaterThan(decimal.Zero) {
			return &ConflictError{Message: fmt.Sprintf("installment %d has recorded payments; plan cannot be deleted", inst.InstallmentNumber)}
		}
	}

	if err := database.DeletePaymentPlanTx(tx, planID); err != nil {
		return err
	}
	return tx.Commit()
}
