package services

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pramodthundathil/blossom-school/app/database"
	"github.com/pramodthundathil/blossom-school/app/models"
)

var hundred = decimal.NewFromInt(100)

// FinalAmount applies the percentage discount first, then the fixed
// discount, then clamps at zero. The order matters: a fixed discount
// taken before the percentage would shrink the result further.
func FinalAmount(base, discountPct, discountFixed decimal.Decimal) decimal.Decimal {
	afterPct := base.Sub(base.Mul(discountPct).Div(hundred))
	final := afterPct.Sub(discountFixed).Round(2)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// AssignFeeRequest binds a student to a fee structure.
type AssignFeeRequest struct {
	StudentID          string              `json:"student_id" validate:"required,uuid"`
	FeeStructureID     string              `json:"fee_structure_id" validate:"required,uuid"`
	CustomAmount       decimal.NullDecimal `json:"custom_amount"`
	DiscountPercentage decimal.Decimal     `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal     `json:"discount_amount"`
	StartDate          time.Time           `json:"start_date" validate:"required"`
	EndDate            *time.Time          `json:"end_date"`
	CreatedBy          *string             `json:"-"`
}

// AssignFee creates a fee assignment with its final amount precomputed.
func AssignFee(db *sql.DB, req AssignFeeRequest) (*models.StudentFeeAssignment, error) {
	if err := validateDiscounts(req.DiscountPercentage, req.DiscountAmount); err != nil {
		return nil, err
	}

	if _, err := database.GetStudent(db, req.StudentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "student", ID: req.StudentID}
		}
		return nil, err
	}
	structure, err := database.GetFeeStructure(db, req.FeeStructureID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "fee structure", ID: req.FeeStructureID}
		}
		return nil, err
	}

	assignment := &models.StudentFeeAssignment{
		StudentID:          req.StudentID,
		FeeStructureID:     req.FeeStructureID,
		CustomAmount:       req.CustomAmount,
		DiscountPercentage: req.DiscountPercentage,
		DiscountAmount:     req.DiscountAmount,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		IsActive:           true,
		CreatedBy:          req.CreatedBy,
		FeeStructure:       structure,
	}
	assignment.FinalAmount = FinalAmount(assignment.BaseAmount(), req.DiscountPercentage, req.DiscountAmount)

	if err := database.InsertFeeAssignment(db, assignment); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, &ConflictError{Message: "student already has an assignment for this fee structure"}
		}
		return nil, err
	}
	return assignment, nil
}

// UpdateAssignmentDiscounts edits the discounts on an assignment and
// recomputes its final amount.
func UpdateAssignmentDiscounts(db *sql.DB, assignmentID string, pct, fixed decimal.Decimal, customAmount decimal.NullDecimal) (*models.StudentFeeAssignment, error) {
	if err := validateDiscounts(pct, fixed); err != nil {
		return nil, err
	}

	assignment, err := database.GetFeeAssignment(db, assignmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &NotFoundError{Entity: "fee assignment", ID: assignmentID}
		}
		return nil, err
	}

	assignment.DiscountPercentage = pct
	assignment.DiscountAmount = fixed
	assignment.CustomAmount = customAmount
	assignment.FinalAmount = FinalAmount(assignment.BaseAmount(), pct, fixed)

	if err := database.UpdateFeeAssignment(db, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

// AnnualFees sums the final amounts of a student's active assignments.
// A zero academicYear includes every year.
func AnnualFees(db *sql.DB, studentID string, academicYear int) (decimal.Decimal, error) {
	assignments, err := database.ListFeeAssignmentsForStudent(db, studentID, academicYear, true)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range assignments {
		total = total.Add(a.FinalAmount)
	}
	return total, nil
}

func validateDiscounts(pct, fixed decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return NewValidationError("invalid discount").WithField("discount_percentage", "must be between 0 and 100")
	}
	if fixed.IsNegative() {
		return NewValidationError("invalid discount").WithField("discount_amount", "must not be negative")
	}
	return nil
}
