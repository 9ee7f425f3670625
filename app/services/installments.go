package services

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

// UpdateInstallmentStatus recomputes an installment's status after a
// paid_amount mutation. Check order matters: a partial payment on a past
// due date stays partially_paid, overdue is only reachable while nothing
// has been paid. Held installments are a manual state and are left alone.
func UpdateInstallmentStatus(inst *models.PaymentInstallment, today time.Time) {
	if inst.Status == models.InstallmentHeld {
		return
	}
	switch {
	case inst.PaidAmount.GreaterThanOrEqual(inst.Amount.Add(inst.LateFee)):
		inst.Status = models.InstallmentPaid
	case inst.PaidAmount.GreaterThan(decimal.Zero):
		inst.Status = models.InstallmentPartiallyPaid
	case truncateDay(today).After(truncateDay(inst.DueDate)):
		inst.Status = models.InstallmentOverdue
		inst.IsOverdue = true
	default:
		inst.Status = models.InstallmentPending
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ApplyHold moves installments[idx] to held and transfers its outstanding
// balance onto the next pending installment in the slice. The slice must
// be ordered by installment number and belong to one plan.
func ApplyHold(installments []*models.PaymentInstallment, idx int) error {
	target := installments[idx]
	if target.Status == models.InstallmentPaid {
		return &ConflictError{Message: "a paid installment cannot be held"}
	}
	if target.Status == models.InstallmentHeld {
		return &ConflictError{Message: "installment is already held"}
	}

	var receiver *models.PaymentInstallment
	for _, inst := range installments[idx+1:] {
		if inst.Status == models.InstallmentPending {
			receiver = inst
			break
		}
	}
	if receiver == nil {
		return &ConflictError{Message: "no later pending installment to receive the held balance"}
	}

	transferred := target.OutstandingAmount()
	receiver.Amount = receiver.Amount.Add(transferred)
	target.Amount = decimal.Zero
	target.LateFee = decimal.Zero
	target.Status = models.InstallmentHeld
	return nil
}

// HoldInstallment performs the hold transfer against the database: the
// plan's installments are locked, mutated in memory via ApplyHold and
// written back in one transaction.
func HoldInstallment(db *sql.DB, installmentID string) (*models.PaymentInstallment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	target, err := database.GetInstallmentForUpdateTx(tx, installmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "installment", ID: installmentID}
		}
		return nil, err
	}

	installments, err := database.GetPlanInstallmentsTx(tx, target.PaymentPlanID, true)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, inst := range installments {
		if inst.ID == target.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, &NotFoundError{Entity: "installment", ID: installmentID}
	}

	before := make(map[string]models.PaymentInstallment, len(installments))
	for _, inst := range installments {
		before[inst.ID] = *inst
	}

	if err := ApplyHold(installments, idx); err != nil {
		return nil, err
	}

	for _, inst := range installments {
		prev := before[inst.ID]
		if prev.Amount.Equal(inst.Amount) && prev.LateFee.Equal(inst.LateFee) && prev.Status == inst.Status {
			continue
		}
		if err := database.UpdateInstallmentTx(tx, inst); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return installments[idx], nil
}
