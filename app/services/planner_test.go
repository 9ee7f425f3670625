package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pramodthundathil/blossom-school/app/models"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestBuildScheduleEqualSplit(t *testing.T) {
	specs, err := BuildSchedule(ScheduleParams{
		PlanType:             models.PlanMonthly,
		TotalAmount:          d("1000"),
		AdvanceAmount:        d("0"),
		NumberOfInstallments: 3,
		StartDate:            date(2024, time.January, 10),
		Frequency:            "monthly",
	})
	require.NoError(t, err)
	require.Len(t, specs, 3)

	assert.True(t, specs[0].Amount.Equal(d("333.33")))
	assert.True(t, specs[1].Amount.Equal(d("333.33")))
	// Last installment absorbs the rounding remainder.
	assert.True(t, specs[2].Amount.Equal(d("333.34")))

	sum := decimal.Zero
	for _, s := range specs {
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(d("1000")))
}

func TestBuildScheduleWithAdvance(t *testing.T) {
	specs, err := BuildSchedule(ScheduleParams{
		PlanType:             models.PlanMonthly,
		TotalAmount:          d("1200"),
		AdvanceAmount:        d("200"),
		NumberOfInstallments: 5,
		StartDate:            date(2024, time.January, 10),
		Frequency:            "monthly",
	})
	require.NoError(t, err)
	require.Len(t, specs, 5)

	sum := decimal.Zero
	for i, s := range specs {
		assert.Equal(t, i+1, s.Number)
		sum = sum.Add(s.Amount)
	}
	assert.True(t, sum.Equal(d("1000")), "installments must cover total minus advance")

	assert.Equal(t, date(2024, time.January, 10), specs[0].DueDate)
	assert.Equal(t, date(2024, time.February, 10), specs[1].DueDate)
	assert.Equal(t, date(2024, time.May, 10), specs[4].DueDate)
}

func TestBuildScheduleMonthlyClampsDayOfMonth(t *testing.T) {
	specs, err := BuildSchedule(ScheduleParams{
		PlanType:             models.PlanMonthly,
		TotalAmount:          d("400"),
		NumberOfInstallments: 4,
		StartDate:            date(2024, time.January, 31),
		Frequency:            "monthly",
	})
	require.NoError(t, err)
	require.Len(t, specs, 4)

	assert.Equal(t, date(2024, time.January, 31), specs[0].DueDate)
	// 2024 is a leap year.
	assert.Equal(t, date(2024, time.February, 29), specs[1].DueDate)
	// March has 31 days again, no drift from the February clamp.
	assert.Equal(t, date(2024, time.March, 31), specs[2].DueDate)
	assert.Equal(t, date(2024, time.April, 30), specs[3].DueDate)
}

func TestBuildScheduleFullPlan(t *testing.T) {
	specs, err := BuildSchedule(ScheduleParams{
		PlanType:    models.PlanFull,
		TotalAmount: d("5000"),
		StartDate:   date(2024, time.June, 1),
	})
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.True(t, specs[0].Amount.Equal(d("5000")))
}

func TestBuildScheduleWeekly(t *testing.T) {
	specs, err := BuildSchedule(ScheduleParams{
		PlanType:             models.PlanMonthly,
		TotalAmount:          d("300"),
		NumberOfInstallments: 3,
		StartDate:            date(2024, time.March, 4),
		Frequency:            "weekly",
	})
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 4), specs[0].DueDate)
	assert.Equal(t, date(2024, time.March, 11), specs[1].DueDate)
	assert.Equal(t, date(2024, time.March, 18), specs[2].DueDate)
}

func TestBuildScheduleCustom(t *testing.T) {
	params := ScheduleParams{
		PlanType:    models.PlanCustom,
		TotalAmount: d("1000"),
		StartDate:   date(2024, time.January, 1),
		CustomInstallments: []CustomInstallment{
			{DueDate: date(2024, time.February, 1), Amount: d("600")},
			{DueDate: date(2024, time.April, 1), Amount: d("400")},
		},
	}
	specs, err := BuildSchedule(params)
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, 1, specs[0].Number)
	assert.True(t, specs[1].Amount.Equal(d("400")))
}

func TestBuildScheduleCustomSumTolerance(t *testing.T) {
	base := ScheduleParams{
		PlanType:    models.PlanCustom,
		TotalAmount: d("1000"),
		StartDate:   date(2024, time.January, 1),
	}

	// A penny off is within tolerance.
	base.CustomInstallments = []CustomInstallment{
		{DueDate: date(2024, time.February, 1), Amount: d("600")},
		{DueDate: date(2024, time.April, 1), Amount: d("400.01")},
	}
	_, err := BuildSchedule(base)
	assert.NoError(t, err)

	// Two pennies off is not.
	base.CustomInstallments = []CustomInstallment{
		{DueDate: date(2024, time.February, 1), Amount: d("600")},
		{DueDate: date(2024, time.April, 1), Amount: d("400.02")},
	}
	_, err = BuildSchedule(base)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestBuildScheduleRejectsBadInputs(t *testing.T) {
	var verr *ValidationError

	_, err := BuildSchedule(ScheduleParams{
		PlanType:    models.PlanMonthly,
		TotalAmount: d("0"),
		StartDate:   date(2024, time.January, 1),
	})
	assert.ErrorAs(t, err, &verr)

	_, err = BuildSchedule(ScheduleParams{
		PlanType:      models.PlanMonthly,
		TotalAmount:   d("100"),
		AdvanceAmount: d("150"),
		StartDate:     date(2024, time.January, 1),
	})
	assert.ErrorAs(t, err, &verr)

	_, err = BuildSchedule(ScheduleParams{
		PlanType:             models.PlanMonthly,
		TotalAmount:          d("100"),
		NumberOfInstallments: 0,
		StartDate:            date(2024, time.January, 1),
	})
	assert.ErrorAs(t, err, &verr)

	_, err = BuildSchedule(ScheduleParams{
		PlanType:             models.PlanMonthly,
		TotalAmount:          d("100"),
		NumberOfInstallments: 2,
		StartDate:            date(2024, time.January, 1),
		Frequency:            "custom",
		FrequencyDays:        0,
	})
	assert.ErrorAs(t, err, &verr)
}

func TestAddMonthsClamped(t *testing.T) {
	assert.Equal(t, date(2023, time.February, 28), addMonthsClamped(date(2023, time.January, 31), 1))
	assert.Equal(t, date(2024, time.February, 29), addMonthsClamped(date(2024, time.January, 31), 1))
	assert.Equal(t, date(2024, time.March, 15), addMonthsClamped(date(2024, time.January, 15), 2))
	assert.Equal(t, date(2025, time.January, 31), addMonthsClamped(date(2024, time.December, 31), 1))
}
