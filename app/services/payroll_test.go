package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pramodthundathil/blossom-school/app/models"
)

func staffOf(basic, accom, transport string) *models.StaffMember {
	return &models.StaffMember{
		BasicSalary:             d(basic),
		AccommodationAllowance:  d(accom),
		TransportationAllowance: d(transport),
	}
}

func TestComputeMonthlySalary(t *testing.T) {
	staff := staffOf("26000", "2000", "1000")
	counts := AttendanceCounts{WorkingDays: 26, DaysPresent: 23, DaysAbsent: 2, HalfDays: 1}

	salary := ComputeMonthlySalary(staff, counts, d("500"))

	require.NotNil(t, salary)
	assert.True(t, salary.GrossSalary.Equal(d("29000")))
	// per day 1000: two absents 2000, one half day 500
	assert.True(t, salary.Deductions.Equal(d("2500")))
	assert.True(t, salary.NetSalary.Equal(d("27000")))
	assert.Equal(t, models.SalaryPending, salary.PaymentStatus)
	assert.Equal(t, 26, salary.TotalWorkingDays)
}

func TestComputeMonthlySalaryNoAbsences(t *testing.T) {
	salary := ComputeMonthlySalary(staffOf("15000", "0", "0"), AttendanceCounts{WorkingDays: 25, DaysPresent: 25}, d("0"))
	assert.True(t, salary.Deductions.IsZero())
	assert.True(t, salary.NetSalary.Equal(d("15000")))
}

func TestComputeMonthlySalaryNetNeverNegative(t *testing.T) {
	// everyone absent all month plus nothing else should clamp at zero
	staff := staffOf("10000", "0", "0")
	counts := AttendanceCounts{WorkingDays: 20, DaysAbsent: 25}
	salary := ComputeMonthlySalary(staff, counts, d("0"))
	assert.True(t, salary.NetSalary.IsZero())
}

func TestComputeMonthlySalaryZeroWorkingDays(t *testing.T) {
	salary := ComputeMonthlySalary(staffOf("10000", "500", "0"), AttendanceCounts{WorkingDays: 0, DaysAbsent: 3}, d("0"))
	assert.True(t, salary.Deductions.IsZero())
	assert.True(t, salary.NetSalary.Equal(d("10500")))
}

func TestComputeMonthlySalaryFractionalPerDay(t *testing.T) {
	// 20000 / 26 = 769.23 per day
	staff := staffOf("20000", "0", "0")
	counts := AttendanceCounts{WorkingDays: 26, DaysAbsent: 1, HalfDays: 1}
	salary := ComputeMonthlySalary(staff, counts, d("0"))
	assert.True(t, salary.Deductions.Equal(d("1153.85")), "got %s", salary.Deductions)
}

func TestWorkingDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.September, 26}, // 30 days, 4 Sundays
		{2025, time.June, 25},      // 30 days, 5 Sundays
		{2024, time.February, 25},  // leap, 29 days, 4 Sundays
		{2025, time.March, 26},     // 31 days, 5 Sundays
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WorkingDaysInMonth(tt.year, tt.month), "%d-%s", tt.year, tt.month)
	}
}
