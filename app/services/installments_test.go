package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pramodthundathil/blossom-school/app/models"
)

func TestUpdateInstallmentStatus(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name       string
		amount     string
		paid       string
		lateFee    string
		dueDate    time.Time
		status     models.InstallmentStatus
		wantStatus models.InstallmentStatus
	}{
		{"untouched pending", "200", "0", "0", date(2024, time.April, 1), models.InstallmentPending, models.InstallmentPending},
		{"past due becomes overdue", "200", "0", "0", date(2024, time.March, 1), models.InstallmentPending, models.InstallmentOverdue},
		{"partial payment", "200", "150", "0", date(2024, time.April, 1), models.InstallmentPending, models.InstallmentPartiallyPaid},
		{"partial beats overdue", "200", "150", "0", date(2024, time.March, 1), models.InstallmentOverdue, models.InstallmentPartiallyPaid},
		{"fully paid", "200", "200", "0", date(2024, time.April, 1), models.InstallmentPending, models.InstallmentPaid},
		{"paid beats overdue", "200", "200", "0", date(2024, time.January, 1), models.InstallmentOverdue, models.InstallmentPaid},
		{"late fee raises the bar", "200", "200", "10", date(2024, time.March, 1), models.InstallmentOverdue, models.InstallmentPartiallyPaid},
		{"paid including late fee", "200", "210", "10", date(2024, time.March, 1), models.InstallmentOverdue, models.InstallmentPaid},
		{"held stays held", "200", "0", "0", date(2024, time.March, 1), models.InstallmentHeld, models.InstallmentHeld},
		{"due today is not overdue", "200", "0", "0", date(2024, time.March, 15), models.InstallmentPending, models.InstallmentPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := &models.PaymentInstallment{
				Amount:     d(tt.amount),
				PaidAmount: d(tt.paid),
				LateFee:    d(tt.lateFee),
				DueDate:    tt.dueDate,
				Status:     tt.status,
			}
			UpdateInstallmentStatus(inst, today)
			assert.Equal(t, tt.wantStatus, inst.Status)
		})
	}
}

func TestOutstandingAmount(t *testing.T) {
	inst := &models.PaymentInstallment{Amount: d("200"), PaidAmount: d("150"), LateFee: d("0")}
	assert.True(t, inst.OutstandingAmount().Equal(d("50")))

	inst = &models.PaymentInstallment{Amount: d("200"), PaidAmount: d("100"), LateFee: d("10")}
	assert.True(t, inst.OutstandingAmount().Equal(d("110")))

	// Overpayment never reports negative.
	inst = &models.PaymentInstallment{Amount: d("200"), PaidAmount: d("250"), LateFee: d("0")}
	assert.True(t, inst.OutstandingAmount().Equal(decimal.Zero))
}

func planOf(amounts ...string) []*models.PaymentInstallment {
	installments := make([]*models.PaymentInstallment, 0, len(amounts))
	for i, a := range amounts {
		installments = append(installments, &models.PaymentInstallment{
			InstallmentNumber: i + 1,
			Amount:            d(a),
			PaidAmount:        decimal.Zero,
			LateFee:           decimal.Zero,
			Status:            models.InstallmentPending,
		})
	}
	return installments
}

func planTotal(installments []*models.PaymentInstallment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Amount)
	}
	return sum
}

func TestApplyHoldTransfersBalance(t *testing.T) {
	installments := planOf("300", "300", "400")
	before := planTotal(installments)

	require.NoError(t, ApplyHold(installments, 1))

	assert.Equal(t, models.InstallmentHeld, installments[1].Status)
	assert.True(t, installments[1].Amount.IsZero())
	assert.True(t, installments[1].LateFee.IsZero())
	assert.True(t, installments[2].Amount.Equal(d("700")))

	// The plan total is conserved.
	assert.True(t, planTotal(installments).Equal(before))
}

func TestApplyHoldIncludesLateFee(t *testing.T) {
	installments := planOf("300", "300")
	installments[0].LateFee = d("15")
	installments[0].Status = models.InstallmentOverdue

	require.NoError(t, ApplyHold(installments, 0))

	assert.True(t, installments[1].Amount.Equal(d("615")))
	assert.True(t, installments[0].LateFee.IsZero())
}

func TestApplyHoldPartiallyPaidTransfersOutstanding(t *testing.T) {
	installments := planOf("300", "300")
	installments[0].PaidAmount = d("100")
	installments[0].Status = models.InstallmentPartiallyPaid

	require.NoError(t, ApplyHold(installments, 0))

	assert.True(t, installments[1].Amount.Equal(d("500")))
}

func TestApplyHoldRejections(t *testing.T) {
	var conflict *ConflictError

	installments := planOf("300", "300")
	installments[0].Status = models.InstallmentPaid
	assert.ErrorAs(t, ApplyHold(installments, 0), &conflict)

	installments = planOf("300", "300")
	installments[0].Status = models.InstallmentHeld
	assert.ErrorAs(t, ApplyHold(installments, 0), &conflict)

	// Last installment has no later receiver.
	installments = planOf("300", "300")
	assert.ErrorAs(t, ApplyHold(installments, 1), &conflict)

	// A held later installment cannot receive.
	installments = planOf("300", "300", "300")
	installments[2].Status = models.InstallmentHeld
	installments[1].Status = models.InstallmentPaid
	assert.ErrorAs(t, ApplyHold(installments, 0), &conflict)
}
