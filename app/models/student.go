package models

import "time"

// Student represents an admitted student.
type Student struct {
	ID            string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AdmissionNo   string     `json:"admission_no" gorm:"uniqueIndex;not null" validate:"required"`
	FirstName     string     `json:"first_name" gorm:"not null" validate:"required"`
	LastName      string     `json:"last_name" gorm:"not null" validate:"required"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty" gorm:"type:date"`
	Gender        Gender     `json:"gender,omitempty" gorm:"type:varchar(10)"`
	GuardianName  string     `json:"guardian_name,omitempty"`
	GuardianPhone string     `json:"guardian_phone,omitempty" gorm:"type:varchar(20)"`
	Address       string     `json:"address,omitempty"`
	AdmissionDate time.Time  `json:"admission_date" gorm:"type:date;default:CURRENT_DATE"`
	IsActive      bool       `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
