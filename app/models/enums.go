package models

// Frequency defines how often a fee structure recurs.
type Frequency string

const (
	FrequencyYearly    Frequency = "yearly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyOneTime   Frequency = "one_time"
)

// PlanType defines how a student's obligation is split across payments.
type PlanType string

const (
	PlanFull      PlanType = "full"
	PlanMonthly   PlanType = "monthly"
	PlanQuarterly PlanType = "quarterly"
	PlanCustom    PlanType = "custom"
)

// PlanStatus defines the lifecycle state of a payment plan.
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanCancelled PlanStatus = "cancelled"
)

// InstallmentStatus defines the state of a single installment.
type InstallmentStatus string

const (
	InstallmentPending       InstallmentStatus = "pending"
	InstallmentPartiallyPaid InstallmentStatus = "partially_paid"
	InstallmentPaid          InstallmentStatus = "paid"
	InstallmentOverdue       InstallmentStatus = "overdue"
	InstallmentHeld          InstallmentStatus = "held"
)

// PaymentStatus defines the status of a payment transaction.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
	PaymentCancelled PaymentStatus = "cancelled"
)

// PaymentMethod defines the accepted payment channels.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodCreditCard   PaymentMethod = "credit_card"
	MethodDebitCard    PaymentMethod = "debit_card"
	MethodCheck        PaymentMethod = "check"
	MethodOnline       PaymentMethod = "online"
)

// TransactionType defines the direction of a student ledger entry.
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// NotificationType defines the kinds of payment notifications.
type NotificationType string

const (
	NotificationOverdue  NotificationType = "overdue"
	NotificationUpcoming NotificationType = "upcoming"
)

// NotificationPriority defines how urgent a notification is.
type NotificationPriority string

const (
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// ReminderType defines the delivery channel of a payment reminder.
type ReminderType string

const (
	ReminderEmail  ReminderType = "email"
	ReminderSMS    ReminderType = "sms"
	ReminderPhone  ReminderType = "phone"
	ReminderLetter ReminderType = "letter"
)

// AttendanceStatus defines the possible status values for staff attendance.
type AttendanceStatus string

const (
	Present AttendanceStatus = "present"
	Absent  AttendanceStatus = "absent"
	HalfDay AttendanceStatus = "half_day"
	Leave   AttendanceStatus = "leave"
)

// SalaryStatus defines the payment state of a monthly salary.
type SalaryStatus string

const (
	SalaryPending   SalaryStatus = "pending"
	SalaryProcessed SalaryStatus = "processed"
	SalaryPaid      SalaryStatus = "paid"
	SalaryHold      SalaryStatus = "hold"
)

// Gender defines the possible gender values for a student.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
	Other  Gender = "other"
)
