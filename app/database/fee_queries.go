package database

import (
	"database/sql"
	"fmt"

	"github.com/pramodthundathil/blossom-school/app/models"
)

// CreateFeeCategory inserts a fee category and fills in the generated id.
func CreateFeeCategory(db *sql.DB, c *models.FeeCategory) error {
	err := db.QueryRow(`INSERT INTO fee_categories (name) VALUES ($1) RETURNING id, created_at`, c.Name).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fee category: %v", err)
	}
	return nil
}

// ListFeeCategories retrieves all fee categories ordered by name.
func ListFeeCategories(db *sql.DB) ([]*models.FeeCategory, error) {
	rows, err := db.Query(`SELECT id, name, created_at FROM fee_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*models.FeeCategory
	for rows.Next() {
		c := &models.FeeCategory{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// GetFeeCategoryTx retrieves one fee category inside a transaction.
func GetFeeCategoryTx(tx *sql.Tx, id string) (*models.FeeCategory, error) {
	c := &models.FeeCategory{}
	err := tx.QueryRow(`SELECT id, name, created_at FROM fee_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateFeeStructure inserts a fee structure and fills in the generated id.
func CreateFeeStructure(db *sql.DB, s *models.FeeStructure) error {
	query := `INSERT INTO fee_structures (academic_year, fee_category_id, amount, frequency,
	                                      is_mandatory, late_fee_percentage, due_day, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING id, created_at`
	err := db.QueryRow(query,
		s.AcademicYear, s.FeeCategoryID, s.Amount, s.Frequency,
		s.IsMandatory, s.LateFeePercentage, s.DueDay, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert fee structure: %v", err)
	}
	return nil
}

// GetFeeStructure retrieves a fee structure with its category.
func GetFeeStructure(db *sql.DB, id string) (*models.FeeStructure, error) {
	query := `SELECT fs.id, fs.academic_year, fs.fee_category_id, fs.amount, fs.frequency,
	                 fs.is_mandatory, fs.late_fee_percentage, fs.due_day, fs.is_active, fs.created_at,
	                 fc.name
	          FROM fee_structures fs
	          JOIN fee_categories fc ON fc.id = fs.fee_category_id
	          WHERE fs.id = $1`
	s := &models.FeeStructure{FeeCategory: &models.FeeCategory{}}
	err := db.QueryRow(query, id).Scan(
		&s.ID, &s.AcademicYear, &s.FeeCategoryID, &s.Amount, &s.Frequency,
		&s.IsMandatory, &s.LateFeePercentage, &s.DueDay, &s.IsActive, &s.CreatedAt,
		&s.FeeCategory.Name,
	)
	if err != nil {
		return nil, err
	}
	s.FeeCategory.ID = s.FeeCategoryID
	return s, nil
}

// ListFeeStructures retrieves fee structures for an academic year. A zero
// year lists every year.
func ListFeeStructures(db *sql.DB, academicYear int, activeOnly bool) ([]*models.FeeStructure, error) {
	query := `SELECT fs.id, fs.academic_year, fs.fee_category_id, fs.amount, fs.frequency,
	                 fs.is_mandatory, fs.late_fee_percentage, fs.due_day, fs.is_active, fs.created_at,
	                 fc.name
	          FROM fee_structures fs
	          JOIN fee_categories fc ON fc.id = fs.fee_category_id
	          WHERE ($1 = 0 OR fs.academic_year = $1)
	            AND (NOT $2 OR fs.is_active = true)
	          ORDER BY fs.academic_year DESC, fc.name`
	rows, err := db.Query(query, academicYear, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var structures []*models.FeeStructure
	for rows.Next() {
		s := &models.FeeStructure{FeeCategory: &models.FeeCategory{}}
		err := rows.Scan(
			&s.ID, &s.AcademicYear, &s.FeeCategoryID, &s.Amount, &s.Frequency,
			&s.IsMandatory, &s.LateFeePercentage, &s.DueDay, &s.IsActive, &s.CreatedAt,
			&s.FeeCategory.Name,
		)
		if err != nil {
			return nil, err
		}
		s.FeeCategory.ID = s.FeeCategoryID
		structures = append(structures, s)
	}
	return structures, rows.Err()
}

// UpdateFeeStructure updates the editable columns of a fee structure.
func UpdateFeeStructure(db *sql.DB, s *models.FeeStructure) error {
	query := `UPDATE fee_structures
	          SET amount = $2, frequency = $3, is_mandatory = $4, late_fee_percentage = $5,
	              due_day = $6, is_active = $7, updated_at = NOW()
	          WHERE id = $1`
	result, err := db.Exec(query, s.ID, s.Amount, s.Frequency, s.IsMandatory, s.LateFeePercentage, s.DueDay, s.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update fee structure: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// InsertFeeAssignment inserts a student fee assignment and fills in the
// generated id.
func InsertFeeAssignment(db *sql.DB, a *models.StudentFeeAssignment) error {
	query := `INSERT INTO student_fee_assignments
	          (student_id, fee_structure_id, custom_amount, discount_percentage, discount_amount,
	           final_amount, start_date, end_date, is_active, created_by)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING id, created_at`
	err := db.QueryRow(query,
		a.StudentID, a.FeeStructureID, a.CustomAmount, a.DiscountPercentage, a.DiscountAmount,
		a.FinalAmount, a.StartDate, a.EndDate, a.IsActive, a.CreatedBy,
	).Scan(&a.ID, &a.CreatedAt)
	return err
}

// GetFeeAssignment retrieves a fee assignment with its structure loaded.
func GetFeeAssignment(db *sql.DB, id string) (*models.StudentFeeAssignment, error) {
	query := `SELECT a.id, a.student_id, a.fee_structure_id, a.custom_amount, a.discount_percentage,
	                 a.discount_amount, a.final_amount, a.start_date, a.end_date, a.is_active,
	                 a.created_by, a.created_at,
	                 fs.academic_year, fs.amount, fs.frequency, fs.late_fee_percentage, fs.due_day,
	                 fc.name
	          FROM student_fee_assignments a
	          JOIN fee_structures fs ON fs.id = a.fee_structure_id
	          JOIN fee_categories fc ON fc.id = fs.fee_category_id
	          WHERE a.id = $1`
	a := &models.StudentFeeAssignment{FeeStructure: &models.FeeStructure{FeeCategory: &models.FeeCategory{}}}
	err := db.QueryRow(query, id).Scan(
		&a.ID, &a.StudentID, &a.FeeStructureID, &a.CustomAmount, &a.DiscountPercentage,
		&a.DiscountAmount, &a.FinalAmount, &a.StartDate, &a.EndDate, &a.IsActive,
		&a.CreatedBy, &a.CreatedAt,
		&a.FeeStructure.AcademicYear, &a.FeeStructure.Amount, &a.FeeStructure.Frequency,
		&a.FeeStructure.LateFeePercentage, &a.FeeStructure.DueDay,
		&a.FeeStructure.FeeCategory.Name,
	)
	if err != nil {
		return nil, err
	}
	a.FeeStructure.ID = a.FeeStructureID
	return a, nil
}

// UpdateFeeAssignment updates the discount columns of a fee assignment.
func UpdateFeeAssignment(db *sql.DB, a *models.StudentFeeAssignment) error {
	query := `UPDATE student_fee_assignments
	          SET custom_amount = $2, discount_percentage = $3, discount_amount = $4,
	              final_amount = $5, end_date = $6, is_active = $7
	          WHERE id = $1`
	result, err := db.Exec(query, a.ID, a.CustomAmount, a.DiscountPercentage, a.DiscountAmount, a.FinalAmount, a.EndDate, a.IsActive)
	if err != nil {
		return fmt.Errorf("failed to update fee assignment: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListFeeAssignmentsForStudent retrieves a student's fee assignments with
// their structures loaded. A zero academicYear includes every year.
func ListFeeAssignmentsForStudent(db *sql.DB, studentID string, academicYear int, activeOnly bool) ([]*models.StudentFeeAssignment, error) {
	query := `SELECT a.id, a.student_id, a.fee_structure_id, a.custom_amount, a.discount_percentage,
	                 a.discount_amount, a.final_amount, a.start_date, a.end_date, a.is_active,
	                 a.created_by, a.created_at,
	                 fs.academic_year, fs.amount, fs.frequency, fs.late_fee_percentage, fs.due_day,
	                 fc.name
	          FROM student_fee_assignments a
	          JOIN fee_structures fs ON fs.id = a.fee_structure_id
	          JOIN fee_categories fc ON fc.id = fs.fee_category_id
	          WHERE a.student_id = $1
	            AND ($2 = 0 OR fs.academic_year = $2)
	            AND (NOT $3 OR a.is_active = true)
	          ORDER BY a.created_at`
	rows, err := db.Query(query, studentID, academicYear, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []*models.StudentFeeAssignment
	for rows.Next() {
		a := &models.StudentFeeAssignment{FeeStructure: &models.FeeStructure{FeeCategory: &models.FeeCategory{}}}
		err := rows.Scan(
			&a.ID, &a.StudentID, &a.FeeStructureID, &a.CustomAmount, &a.DiscountPercentage,
			&a.DiscountAmount, &a.FinalAmount, &a.StartDate, &a.EndDate, &a.IsActive,
			&a.CreatedBy, &a.CreatedAt,
			&a.FeeStructure.AcademicYear, &a.FeeStructure.Amount, &a.FeeStructure.Frequency,
			&a.FeeStructure.LateFeePercentage, &a.FeeStructure.DueDay,
			&a.FeeStructure.FeeCategory.Name,
		)
		if err != nil {
			return nil, err
		}
		a.FeeStructure.ID = a.FeeStructureID
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
