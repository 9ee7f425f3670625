package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pramodthundathil/blossom-school/app/models"
)

func TestLateFeeFor(t *testing.T) {
	assert.True(t, LateFeeFor(d("200"), d("2.5")).Equal(d("5")))
	assert.True(t, LateFeeFor(d("1000"), d("10")).Equal(d("100")))
	// rounded to two places
	assert.True(t, LateFeeFor(d("333.33"), d("5")).Equal(d("16.67")))
	assert.True(t, LateFeeFor(d("500"), d("0")).IsZero())
}

func TestOverduePriority(t *testing.T) {
	tests := []struct {
		days int
		want models.NotificationPriority
	}{
		{0, models.PriorityMedium},
		{14, models.PriorityMedium},
		{15, models.PriorityHigh},
		{30, models.PriorityHigh},
		{31, models.PriorityUrgent},
		{120, models.PriorityUrgent},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OverduePriority(tt.days), "daysOverdue=%d", tt.days)
	}
}

func TestNotifyListDeduplicates(t *testing.T) {
	creator := "u1"
	users := notifyList(&creator, []string{"u1", "u2", "u3"})
	assert.Equal(t, []string{"u1", "u2", "u3"}, users)
}

func TestNotifyListNilCreator(t *testing.T) {
	users := notifyList(nil, []string{"u2", "u3"})
	assert.Equal(t, []string{"u2", "u3"}, users)
}

func TestNotifyListCreatorFirst(t *testing.T) {
	creator := "u9"
	users := notifyList(&creator, []string{"u2"})
	assert.Equal(t, []string{"u9", "u2"}, users)
}

func TestExpandTemplate(t *testing.T) {
	msg := expandTemplate("Dear parent of {student_name}, {amount} was due on {due_date}.", map[string]string{
		"student_name": "Amina K",
		"amount":       "450.00",
		"due_date":     "2025-06-10",
	})
	assert.Equal(t, "Dear parent of Amina K, 450.00 was due on 2025-06-10.", msg)
}

func TestExpandTemplateUnknownPlaceholderLeftAlone(t *testing.T) {
	msg := expandTemplate("Hi {student_name}, ref {receipt_no}", map[string]string{"student_name": "Sam"})
	assert.Equal(t, "Hi Sam, ref {receipt_no}", msg)
}
