package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// CreateStaffMember inserts a staff member and fills in the generated id.
func CreateStaffMember(db *sql.DB, s *models.StaffMember) error {
	query := `INSERT INTO staff_members
	          (first_name, last_name, designation, phone, basic_salary,
	           accommodation_allowance, transportation_allowance, joined_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`
	err := db.QueryRow(query,
		s.FirstName, s.LastName, s.Designation, s.Phone, s.BasicSalary,
		s.AccommodationAllowance, s.TransportationAllowance, s.JoinedDate,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert staff member: %v", err)
	}
	return nil
}

// GetStaffMember retrieves a staff member by id.
func GetStaffMember(db *sql.DB, id string) (*models.StaffMember, error) {
	query := `SELECT id, first_name, last_name, designation, phone, basic_salary,
	                 accommodation_allowance, transportation_allowance, joined_date, is_active, created_at
	          FROM staff_members WHERE id = $1`
	s := &models.StaffMember{}
	err := db.QueryRow(query, id).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Designation, &s.Phone, &s.BasicSalary,
		&s.AccommodationAllowance, &s.TransportationAllowance, &s.JoinedDate, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ListStaffMembers retrieves staff members, active first.
func ListStaffMembers(db *sql.DB, activeOnly bool) ([]*models.StaffMember, error) {
	query := `SELECT id, first_name, last_name, designation, phone, basic_salary,
	                 accommodation_allowance, transportation_allowance, joined_date, is_active, created_at
	          FROM staff_members
	          WHERE NOT $1 OR is_active = true
	          ORDER BY is_active DESC, first_name, last_name`
	rows, err := db.Query(query, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []*models.StaffMember
	for rows.Next() {
		s := &models.StaffMember{}
		err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Designation, &s.Phone, &s.BasicSalary,
			&s.AccommodationAllowance, &s.TransportationAllowance, &s.JoinedDate, &s.IsActive, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// UpdateStaffMember updates the editable columns of a staff member.
func UpdateStaffMember(db *sql.DB, s *models.StaffMember) error {
	query := `UPDATE staff_members
	          SET first_name = $2, last_name = $3, designation = $4, phone = $5, basic_salary = $6,
	              accommodation_allowance = $7, transportation_allowance = $8, is_active = $9
	          WHERE id = $1`
	result, err := db.Exec(query,
		s.ID, s.FirstName, s.LastName, s.Designation, s.Phone, s.BasicSalary,
		s.AccommodationAllowance, s.TransportationAllowance, s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update staff member: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertStaffAttendance records one attendance mark, replacing any
// earlier mark for the same day.
func UpsertStaffAttendance(db *sql.DB, staffID string, date time.Time, status models.AttendanceStatus) error {
	query := `INSERT INTO staff_attendance (staff_id, date, status)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (staff_id, date) DO UPDATE SET status = EXCLUDED.status`
	if _, err := db.Exec(query, staffID, date, status); err != nil {
		return fmt.Errorf("failed to record attendance: %v", err)
	}
	return nil
}

// AttendanceCountsForMonth tallies one staff member's attendance marks for
// a month. Leave days count as present.
func AttendanceCountsForMonth(db *sql.DB, staffID string, year, month int) (present, absent, halfDays int, err error) {
	query := `SELECT
	            COUNT(*) FILTER (WHERE status IN ('present', 'leave')),
	            COUNT(*) FILTER (WHERE status = 'absent'),
	            COUNT(*) FILTER (WHERE status = 'half_day')
	          FROM staff_attendance
	          WHERE staff_id = $1
	            AND EXTRACT(YEAR FROM date) = $2
	            AND EXTRACT(MONTH FROM date) = $3`
	err = db.QueryRow(query, staffID, year, month).Scan(&present, &absent, &halfDays)
	return present, absent, halfDays, err
}

// InsertMonthlySalary inserts a computed monthly salary.
func InsertMonthlySalary(db *sql.DB, s *models.MonthlySalary) error {
	query := `INSERT INTO monthly_salaries
	          (staff_id, month, year, basic_salary, accommodation_allowance, transportation_allowance,
	           gross_salary, total_working_days, days_present, days_absent, half_days,
	           bonus, deductions, net_salary, payment_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id, created_at`
	return db.QueryRow(query,
		s.StaffID, s.Month, s.Year, s.BasicSalary, s.AccommodationAllowance, s.TransportationAllowance,
		s.GrossSalary, s.TotalWorkingDays, s.DaysPresent, s.DaysAbsent, s.HalfDays,
		s.Bonus, s.Deductions, s.NetSalary, s.PaymentStatus,
	).Scan(&s.ID, &s.CreatedAt)
}

const salaryColumns = `id, staff_id, month, year, basic_salary, accommodation_allowance,
	transportation_allowance, gross_salary, total_working_days, days_present, days_absent,
	half_days, bonus, deductions, net_salary, payment_status, paid_date, payment_method, created_at`

func scanSalary(scan func(dest ...any) error) (*models.MonthlySalary, error) {
	s := &models.MonthlySalary{}
	err := scan(
		&s.ID, &s.StaffID, &s.Month, &s.Year, &s.BasicSalary, &s.AccommodationAllowance,
		&s.TransportationAllowance, &s.GrossSalary, &s.TotalWorkingDays, &s.DaysPresent,
		&s.DaysAbsent, &s.HalfDays, &s.Bonus, &s.Deductions, &s.NetSalary,
		&s.PaymentStatus, &s.PaidDate, &s.PaymentMethod, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// GetMonthlySalaryForUpdateTx retrieves one salary row with a row lock.
func GetMonthlySalaryForUpdateTx(tx *sql.Tx, id string) (*models.MonthlySalary, error) {
	return scanSalary(tx.QueryRow(`SELECT `+salaryColumns+` FROM monthly_salaries WHERE id = $1 FOR UPDATE`, id).Scan)
}

// UpdateMonthlySalaryTx writes back the payment columns of a salary.
func UpdateMonthlySalaryTx(tx *sql.Tx, s *models.MonthlySalary) error {
	query := `UPDATE monthly_salaries
	          SET bonus = $2, deductions = $3, net_salary = $4, payment_status = $5,
	              paid_date = $6, payment_method = $7, updated_at = NOW()
	          WHERE id = $1`
	result, err := tx.Exec(query, s.ID, s.Bonus, s.Deductions, s.NetSalary, s.PaymentStatus, s.PaidDate, s.PaymentMethod)
	if err != nil {
		return fmt.Errorf("failed to update salary: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListSalariesForMonth retrieves all salaries generated for a month with
// the staff loaded.
func ListSalariesForMonth(db *sql.DB, year, month int) ([]*models.MonthlySalary, error) {
	query := `SELECT ms.id, ms.staff_id, ms.month, ms.year, ms.basic_salary, ms.accommodation_allowance,
	                 ms.transportation_allowance, ms.gross_salary, ms.total_working_days, ms.days_present,
	                 ms.days_absent, ms.half_days, ms.bonus, ms.deductions, ms.net_salary,
	                 ms.payment_status, ms.paid_date, ms.payment_method, ms.created_at,
	                 sm.first_name, sm.last_name, sm.designation
	          FROM monthly_salaries ms
	          JOIN staff_members sm ON sm.id = ms.staff_id
	          WHERE ms.year = $1 AND ms.month = $2
	          ORDER BY sm.first_name, sm.last_name`
	rows, err := db.Query(query, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var salaries []*models.MonthlySalary
	for rows.Next() {
		s := &models.MonthlySalary{Staff: &models.StaffMember{}}
		err := rows.Scan(
			&s.ID, &s.StaffID, &s.Month, &s.Year, &s.BasicSalary, &s.AccommodationAllowance,
			&s.TransportationAllowance, &s.GrossSalary, &s.TotalWorkingDays, &s.DaysPresent,
			&s.DaysAbsent, &s.HalfDays, &s.Bonus, &s.Deductions, &s.NetSalary,
			&s.PaymentStatus, &s.PaidDate, &s.PaymentMethod, &s.CreatedAt,
			&s.Staff.FirstName, &s.Staff.LastName, &s.Staff.Designation,
		)
		if err != nil {
			return nil, err
		}
		s.Staff.ID = s.StaffID
		salaries = append(salaries, s)
	}
	return salaries, rows.Err()
}
