package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pramodthundathil/blossom-school/app/models"
)

func TestSumItems(t *testing.T) {
	items := []PaymentItemRequest{
		{Amount: d("500"), Discount: d("50"), LateFee: d("10")},
		{Amount: d("300"), Discount: d("0"), LateFee: d("0")},
	}
	totals := SumItems(items)
	assert.True(t, totals.Total.Equal(d("800")))
	assert.True(t, totals.Discount.Equal(d("50")))
	assert.True(t, totals.LateFee.Equal(d("10")))
	assert.True(t, totals.Net().Equal(d("760")))
}

func TestSumItemsEmpty(t *testing.T) {
	totals := SumItems(nil)
	assert.True(t, totals.Net().IsZero())
}

func TestFilterItemsDropsNonPositiveAmounts(t *testing.T) {
	items := []PaymentItemRequest{
		{FeeCategoryID: "a", Amount: d("500")},
		{FeeCategoryID: "b", Amount: d("0")},
		{FeeCategoryID: "c", Amount: d("-20")},
		{FeeCategoryID: "d", Amount: d("100")},
	}
	valid, err := FilterItems(items)
	require.NoError(t, err)
	require.Len(t, valid, 2)
	assert.Equal(t, "a", valid[0].FeeCategoryID)
	assert.Equal(t, "d", valid[1].FeeCategoryID)
}

func TestFilterItemsRejectsExcessiveDiscount(t *testing.T) {
	items := []PaymentItemRequest{
		{FeeCategoryID: "a", Amount: d("100"), Discount: d("150")},
	}
	_, err := FilterItems(items)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFilterItemsRejectsNegativeLateFee(t *testing.T) {
	items := []PaymentItemRequest{
		{FeeCategoryID: "a", Amount: d("100"), LateFee: d("-5")},
	}
	_, err := FilterItems(items)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestFilterItemsDiscountEqualToAmount(t *testing.T) {
	items := []PaymentItemRequest{
		{FeeCategoryID: "a", Amount: d("100"), Discount: d("100")},
	}
	valid, err := FilterItems(items)
	require.NoError(t, err)
	assert.Len(t, valid, 1)
}

func TestEnsureReversible(t *testing.T) {
	assert.NoError(t, ensureReversible(&models.Payment{PaymentStatus: models.PaymentCompleted}))

	// A payment a reversal already moved off completed must stay refused,
	// otherwise a second reversal would double the ledger debit.
	for _, status := range []models.PaymentStatus{
		models.PaymentRefunded,
		models.PaymentPending,
		models.PaymentFailed,
		models.PaymentCancelled,
	} {
		err := ensureReversible(&models.Payment{PaymentStatus: status})
		var conflict *ConflictError
		assert.ErrorAs(t, err, &conflict, "status %s", status)
	}
}

func TestCheckInstallmentOwnership(t *testing.T) {
	assert.NoError(t, checkInstallmentOwnership("s1", "s1", "i1"))

	err := checkInstallmentOwnership("s1", "s2", "i1")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "installment_id")
}

func TestCheckPaymentAmount(t *testing.T) {
	within := CheckPaymentAmount(d("400"), d("500"))
	assert.True(t, within.Valid)

	exact := CheckPaymentAmount(d("500"), d("500"))
	assert.True(t, exact.Valid)

	over := CheckPaymentAmount(d("500.01"), d("500"))
	assert.False(t, over.Valid)
	assert.Contains(t, over.Message, "500.00")

	zero := CheckPaymentAmount(d("0"), d("500"))
	assert.False(t, zero.Valid)
}
