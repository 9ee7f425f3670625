package database

import (
	"database/sql"
	"fmt"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// CreateUser inserts a user and fills in the generated id.
func CreateUser(db *sql.DB, user *models.User) error {
	query := `INSERT INTO users (email, password, first_name, last_name, phone, is_staff)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, created_at`
	err := db.QueryRow(query, user.Email, user.Password, user.FirstName, user.LastName, user.Phone, user.IsStaff).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %v", err)
	}
	return nil
}

// GetUserByEmail retrieves an active user by email.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	query := `SELECT id, email, password, first_name, last_name, phone, is_staff, is_active, created_at
	          FROM users WHERE email = $1 AND is_active = true`
	u := &models.User{}
	err := db.QueryRow(query, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.IsStaff, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserByID retrieves a user by id.
func GetUserByID(db *sql.DB, id string) (*models.User, error) {
	query := `SELECT id, email, password, first_name, last_name, phone, is_staff, is_active, created_at
	          FROM users WHERE id = $1`
	u := &models.User{}
	err := db.QueryRow(query, id).Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Phone, &u.IsStaff, &u.IsActive, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetUserRoles retrieves the roles assigned to a user.
func GetUserRoles(db *sql.DB, userID string) ([]*models.Role, error) {
	query := `SELECT r.id, r.name
	          FROM roles r
	          JOIN user_roles ur ON ur.role_id = r.id
	          WHERE ur.user_id = $1
	          ORDER BY r.name`
	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []*models.Role
	for rows.Next() {
		r := &models.Role{}
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, rows.Err()
}

// ListActiveStaffUserIDs returns the ids of all active staff users, the
// default audience for payment notifications.
func ListActiveStaffUserIDs(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT id FROM users WHERE is_staff = true AND is_active = true`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// EnsureRole returns the id of the named role, creating it if absent.
func EnsureRole(db *sql.DB, name string) (string, error) {
	var id string
	err := db.QueryRow(`SELECT id FROM roles WHERE name = $1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		err = db.QueryRow(`INSERT INTO roles (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	}
	if err != nil {
		return "", fmt.Errorf("failed to ensure role %s: %v", name, err)
	}
	return id, nil
}

// AssignUserRole grants a role to a user. Already-granted roles are a
// no-op.
func AssignUserRole(db *sql.DB, userID, roleID string) error {
	_, err := db.Exec(`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)
	                   ON CONFLICT DO NOTHING`, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to assign role: %v", err)
	}
	return nil
}

// UpdateUserPassword replaces a user's password hash.
func UpdateUserPassword(db *sql.DB, userID, hashedPassword string) error {
	result, err := db.Exec(`UPDATE users SET password = $2, updated_at = NOW() WHERE id = $1`, userID, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to update password: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateStudent inserts a student and fills in the generated id.
func CreateStudent(db *sql.DB, s *models.Student) error {
	query := `INSERT INTO students (admission_no, first_name, last_name, date_of_birth, gender,
	                                guardian_name, guardian_phone, address, admission_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	          RETURNING id, created_at`
	err := db.QueryRow(query,
		s.AdmissionNo, s.FirstName, s.LastName, s.DateOfBirth, s.Gender,
		s.GuardianName, s.GuardianPhone, s.Address, s.AdmissionDate,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert student: %v", err)
	}
	return nil
}

// GetStudent retrieves a student by id.
func GetStudent(db *sql.DB, id string) (*models.Student, error) {
	query := `SELECT id, admission_no, first_name, last_name, date_of_birth, gender,
	                 guardian_name, guardian_phone, address, admission_date, is_active, created_at
	          FROM students WHERE id = $1`
	s := &models.Student{}
	var gender sql.NullString
	err := db.QueryRow(query, id).Scan(
		&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.DateOfBirth, &gender,
		&s.GuardianName, &s.GuardianPhone, &s.Address, &s.AdmissionDate, &s.IsActive, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Gender = models.Gender(gender.String)
	return s, nil
}

// ListStudents retrieves students, optionally matching admission number or
// name against a search term.
func ListStudents(db *sql.DB, search string, activeOnly bool) ([]*models.Student, error) {
	query := `SELECT id, admission_no, first_name, last_name, date_of_birth, gender,
	                 guardian_name, guardian_phone, address, admission_date, is_active, created_at
	          FROM students
	          WHERE ($1 = '' OR admission_no ILIKE '%' || $1 || '%'
	                 OR first_name ILIKE '%' || $1 || '%' OR last_name ILIKE '%' || $1 || '%')
	            AND (NOT $2 OR is_active = true)
	          ORDER BY admission_no`
	rows, err := db.Query(query, search, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		s := &models.Student{}
		var gender sql.NullString
		err := rows.Scan(
			&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName, &s.DateOfBirth, &gender,
			&s.GuardianName, &s.GuardianPhone, &s.Address, &s.AdmissionDate, &s.IsActive, &s.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		s.Gender = models.Gender(gender.String)
		students = append(students, s)
	}
	return students, rows.Err()
}

// UpdateStudent updates the editable columns of a student.
func UpdateStudent(db *sql.DB, s *models.Student) error {
	query := `UPDATE students
	          SET first_name = $2, last_name = $3, date_of_birth = $4, gender = $5,
	              guardian_name = $6, guardian_phone = $7, address = $8, is_active = $9,
	              updated_at = NOW()
	          WHERE id = $1`
	result, err := db.Exec(query,
		s.ID, s.FirstName, s.LastName, s.DateOfBirth, s.Gender,
		s.GuardianName, s.GuardianPhone, s.Address, s.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to update student: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
