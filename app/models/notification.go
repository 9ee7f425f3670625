package models

import "time"

// Notification alerts a user about an installment. Unique per
// (user, installment, notification_type) so sweeps stay idempotent.
type Notification struct {
	ID            string               `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID        string               `json:"user_id" gorm:"not null;index;type:uuid"`
	StudentID     *string              `json:"student_id,omitempty" gorm:"type:uuid"`
	InstallmentID *string              `json:"installment_id,omitempty" gorm:"type:uuid"`
	Type          NotificationType     `json:"notification_type" gorm:"type:varchar(20);not null"`
	Priority      NotificationPriority `json:"priority" gorm:"type:varchar(10);default:'medium'"`
	Title         string               `json:"title" gorm:"not null"`
	Message       string               `json:"message" gorm:"not null"`
	IsRead        bool                 `json:"is_read" gorm:"default:false"`
	CreatedAt     time.Time            `json:"created_at" gorm:"autoCreateTime"`
}

// PaymentReminder is a queued reminder to a student about an overdue
// installment.
type PaymentReminder struct {
	ID            string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	StudentID     string       `json:"student_id" gorm:"not null;index;type:uuid"`
	InstallmentID string       `json:"installment_id" gorm:"not null;type:uuid"`
	ReminderType  ReminderType `json:"reminder_type" gorm:"type:varchar(20);not null"`
	ScheduledDate time.Time    `json:"scheduled_date" gorm:"not null"`
	SentDate      *time.Time   `json:"sent_date,omitempty"`
	Status        string       `json:"status" gorm:"type:varchar(20);default:'scheduled'"`
	Message       string       `json:"message" gorm:"not null"`
	CreatedBy     *string      `json:"created_by,omitempty" gorm:"type:uuid"`
	CreatedAt     time.Time    `json:"created_at" gorm:"autoCreateTime"`
}
