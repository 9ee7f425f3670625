package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

// PaymentItemRequest is one fee line of a payment request.
type PaymentItemRequest struct {
	FeeCategoryID string          `json:"fee_category_id" validate:"required,uuid"`
	InstallmentID *string         `json:"installment_id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Discount      decimal.Decimal `json:"discount"`
	LateFee       decimal.Decimal `json:"late_fee"`
}

// RecordPaymentRequest records a payment against one or more fee categories.
type RecordPaymentRequest struct {
	StudentID            string               `json:"student_id" validate:"required,uuid"`
	PaymentMethod        models.PaymentMethod `json:"payment_method" validate:"required,oneof=cash bank_transfer credit_card debit_card check online"`
	PaymentDate          time.Time            `json:"payment_date" validate:"required"`
	Items                []PaymentItemRequest `json:"items" validate:"required,min=1"`
	TransactionReference string               `json:"transaction_reference"`
	Remarks              string               `json:"remarks"`
	CollectedBy          *string              `json:"-"`
}

// PaymentTotals are the payment-level sums over the valid items.
type PaymentTotals struct {
	Total    decimal.Decimal
	Discount decimal.Decimal
	LateFee  decimal.Decimal
}

// Net returns total - discount + late_fee.
func (t PaymentTotals) Net() decimal.Decimal {
	return t.Total.Sub(t.Discount).Add(t.LateFee)
}

// SumItems aggregates the payment-level totals from the valid items.
func SumItems(items []PaymentItemRequest) PaymentTotals {
	var t PaymentTotals
	t.Total, t.Discount, t.LateFee = decimal.Zero, decimal.Zero, decimal.Zero
	for _, it := range items {
		t.Total = t.Total.Add(it.Amount)
		t.Discount = t.Discount.Add(it.Discount)
		t.LateFee = t.LateFee.Add(it.LateFee)
	}
	return t
}

// FilterItems drops items with non-positive amounts and rejects items
// whose discount exceeds their amount or whose late fee is negative.
func FilterItems(items []PaymentItemRequest) ([]PaymentItemRequest, error) {
	valid := make([]PaymentItemRequest, 0, len(items))
	for i, it := range items {
		if it.Amount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		if it.Discount.IsNegative() || it.Discount.GreaterThan(it.Amount) {
			return nil, NewValidationError("invalid payment item").
				WithField(fmt.Sprintf("items[%d].discount", i), "must be between 0 and the item amount")
		}
		if it.LateFee.IsNegative() {
			return nil, NewValidationError("invalid payment item").
				WithField(fmt.Sprintf("items[%d].late_fee", i), "must not be negative")
		}
		valid = append(valid, it)
	}
	return valid, nil
}

// RecordPayment creates the payment, its items, the matching student
// ledger credits and the income mirror, and applies installment payments,
// all in one transaction. Either everything commits or nothing does.
func RecordPayment(db *sql.DB, req RecordPaymentRequest) (*models.Payment, error) {
	student, err := database.GetStudent(db, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "student", ID: req.StudentID}
		}
		return nil, err
	}

	items, err := FilterItems(req.Items)
	if err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Resolve fee categories inside the transaction; unresolvable
	// categories drop their item.
	resolved := make([]PaymentItemRequest, 0, len(items))
	categories := make(map[string]*models.FeeCategory, len(items))
	for _, it := range items {
		cat, ok := categories[it.FeeCategoryID]
		if !ok {
			cat, err = database.GetFeeCategoryTx(tx, it.FeeCategoryID)
			if err == sql.ErrNoRows {
				continue
			}
			if err != nil {
				return nil, err
			}
			categories[it.FeeCategoryID] = cat
		}
		if it.Description == "" {
			it.Description = cat.Name
		}
		resolved = append(resolved, it)
	}
	if len(resolved) == 0 {
		return nil, NewValidationError("no valid payment items")
	}

	totals := SumItems(resolved)
	if totals.Net().LessThanOrEqual(decimal.Zero) {
		return nil, NewValidationError("net payment amount must be greater than zero")
	}

	paymentID, err := database.NextPaymentIDTx(tx, req.PaymentDate)
	if err != nil {
		return nil, err
	}

	payment := &models.Payment{
		PaymentID:            paymentID,
		StudentID:            req.StudentID,
		TotalAmount:          totals.Total,
		DiscountAmount:       totals.Discount,
		LateFeeAmount:        totals.LateFee,
		NetAmount:            totals.Net(),
		PaymentMethod:        req.PaymentMethod,
		PaymentStatus:        models.PaymentCompleted,
		TransactionReference: req.TransactionReference,
		PaymentDate:          req.PaymentDate,
		Remarks:              req.Remarks,
		CollectedBy:          req.CollectedBy,
	}
	if err := database.InsertPaymentTx(tx, payment); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &ConcurrencyError{Message: "payment id collision, retry the payment"}
		}
		return nil, err
	}

	// Mirror the net amount into the income book.
	if err := database.InsertIncomeTx(tx, &models.Income{
		Particulars: fmt.Sprintf("Fee payment of %s by %s", student.FullName(), req.PaymentMethod),
		Amount:      payment.NetAmount,
		Date:        req.PaymentDate,
		BillNumber:  &payment.PaymentID,
	}); err != nil {
		return nil, err
	}

	for _, it := range resolved {
		netItem := it.Amount.Sub(it.Discount).Add(it.LateFee)
		item := &models.PaymentItem{
			PaymentID:      payment.ID,
			FeeCategoryID:  it.FeeCategoryID,
			InstallmentID:  it.InstallmentID,
			Description:    it.Description,
			Amount:         it.Amount,
			DiscountAmount: it.Discount,
			LateFee:        it.LateFee,
			NetAmount:      netItem,
		}
		if err := database.InsertPaymentItemTx(tx, item); err != nil {
			return nil, err
		}
		payment.Items = append(payment.Items, item)

		catID := it.FeeCategoryID
		if err := database.InsertLedgerEntryTx(tx, &models.StudentLedger{
			StudentID:       req.StudentID,
			TransactionDate: req.PaymentDate,
			TransactionType: models.TransactionCredit,
			FeeCategoryID:   &catID,
			PaymentID:       &payment.ID,
			Amount:          netItem,
			Description:     "Payment - " + it.Description,
			ReferenceNumber: &payment.PaymentID,
		}); err != nil {
			return nil, err
		}

		if it.InstallmentID != nil {
			if err := applyInstallmentPaymentTx(tx, *it.InstallmentID, req.StudentID, it.Amount, req.PaymentDate); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return payment, nil
}

// applyInstallmentPaymentTx locks the installment row, checks it belongs
// to the paying student, increments its paid amount by the item amount and
// runs the status transition.
func applyInstallmentPaymentTx(tx *sql.Tx, installmentID, studentID string, amount decimal.Decimal, paymentDate time.Time) error {
	inst, err := database.GetInstallmentForUpdateTx(tx, installmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return &NotFoundError{Entity: "installment", ID: installmentID}
		}
		return err
	}
	plan, err := database.GetPaymentPlanTx(tx, inst.PaymentPlanID)
	if err != nil {
		return err
	}
	if err := checkInstallmentOwnership(plan.StudentID, studentID, installmentID); err != nil {
		return err
	}
	if inst.Status == models.InstallmentHeld {
		return &ConflictError{Message: "cannot record a payment against a held installment"}
	}

	inst.PaidAmount = inst.PaidAmount.Add(amount)
	paid := paymentDate
	inst.PaidDate = &paid
	UpdateInstallmentStatus(inst, time.Now())
	return database.UpdateInstallmentTx(tx, inst)
}

// checkInstallmentOwnership rejects a payment item whose installment sits
// on another student's plan.
func checkInstallmentOwnership(planStudentID, payerStudentID, installmentID string) error {
	if planStudentID != payerStudentID {
		return NewValidationError("invalid payment item").
			WithField("installment_id", "installment "+installmentID+" does not belong to this student")
	}
	return nil
}

// PaymentAmountCheck reports whether a proposed payment amount fits within
// the student's outstanding balance.
type PaymentAmountCheck struct {
	Valid       bool            `json:"valid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Message     string          `json:"message,omitempty"`
}

// CheckPaymentAmount compares a proposed amount against an outstanding
// balance.
func CheckPaymentAmount(amount, outstanding decimal.Decimal) PaymentAmountCheck {
	if amount.LessThanOrEqual(decimal.Zero) {
		return PaymentAmountCheck{Outstanding: outstanding, Message: "payment amount must be greater than zero"}
	}
	if amount.GreaterThan(outstanding) {
		return PaymentAmountCheck{
			Outstanding: outstanding,
			Message:     fmt.Sprintf("payment amount exceeds outstanding balance of %s", outstanding.StringFixed(2)),
		}
	}
	return PaymentAmountCheck{Valid: true, Outstanding: outstanding}
}

// ValidatePaymentAmount checks a proposed payment amount against the
// student's balance for an academic year before any payment is recorded.
func ValidatePaymentAmount(db *sql.DB, studentID string, amount decimal.Decimal, academicYear int) (*PaymentAmountCheck, error) {
	balance, err := StudentBalance(db, studentID, academicYear)
	if err != nil {
		return nil, err
	}
	check := CheckPaymentAmount(amount, balance.Balance)
	return &check, nil
}

// ensureReversible rejects reversal of any payment that is not completed.
func ensureReversible(p *models.Payment) error {
	if p.PaymentStatus != models.PaymentCompleted {
		return &ConflictError{Message: "only completed payments can be reversed"}
	}
	return nil
}

// ReversePayment books a correcting payment for a completed one. The
// original record is never edited; a reversal payment with mirrored
// negative ledger effect (a debit) is created and the original is marked
// refunded.
func ReversePayment(db *sql.DB, paymentID string, reason string, collectedBy *string) (*models.Payment, error) {
	original, err := database.GetPaymentByID(db, paymentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "payment", ID: paymentID}
		}
		return nil, err
	}
	if err := ensureReversible(original); err != nil {
		return nil, err
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Re-read under a row lock: a concurrent reversal that committed
	// between the check above and here flips the status, and booking a
	// second correction would double the ledger debit.
	locked, err := database.GetPaymentForUpdateTx(tx, original.ID)
	if err != nil {
		return nil, err
	}
	if locked.PaymentStatus != models.PaymentCompleted {
		return nil, &ConcurrencyError{Message: "payment was already reversed"}
	}

	now := time.Now()
	reversalID, err := database.NextPaymentIDTx(tx, now)
	if err != nil {
		return nil, err
	}

	reversal := &models.Payment{
		PaymentID:      reversalID,
		StudentID:      original.StudentID,
		TotalAmount:    original.TotalAmount,
		DiscountAmount: original.DiscountAmount,
		LateFeeAmount:  original.LateFeeAmount,
		NetAmount:      original.NetAmount,
		PaymentMethod:  original.PaymentMethod,
		PaymentStatus:  models.PaymentRefunded,
		PaymentDate:    now,
		Remarks:        "Reversal of " + original.PaymentID + ": " + reason,
		ReversalOf:     &original.ID,
		CollectedBy:    collectedBy,
	}
	if err := database.InsertPaymentTx(tx, reversal); err != nil {
		return nil, err
	}

	if err := database.InsertLedgerEntryTx(tx, &models.StudentLedger{
		StudentID:       original.StudentID,
		TransactionDate: now,
		TransactionType: models.TransactionDebit,
		PaymentID:       &reversal.ID,
		Amount:          original.NetAmount,
		Description:     "Reversal of payment " + original.PaymentID,
		ReferenceNumber: &reversal.PaymentID,
	}); err != nil {
		return nil, err
	}

	// Roll the paid amounts back off any installments the original touched.
	for _, item := range original.Items {
		if item.InstallmentID == nil {
			continue
		}
		inst, err := database.GetInstallmentForUpdateTx(tx, *item.InstallmentID)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, err
		}
		inst.PaidAmount = inst.PaidAmount.Sub(item.Amount)
		if inst.PaidAmount.IsNegative() {
			inst.PaidAmount = decimal.Zero
		}
		UpdateInstallmentStatus(inst, now)
		if err := database.UpdateInstallmentTx(tx, inst); err != nil {
			return nil, err
		}
	}

	if err := database.MarkPaymentStatusTx(tx, original.ID, models.PaymentCompleted, models.PaymentRefunded); err != nil {
		if err == sql.ErrNoRows {
			return nil, &ConcurrencyError{Message: "payment was already reversed"}
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return reversal, nil
}
