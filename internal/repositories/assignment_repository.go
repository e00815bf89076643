package repositories

import (
	"context"
	"database/sql"
	"time"

	"assetVerse/internal/models"

	"github.com/google/uuid"
)

type AssignmentRepository struct {
	DB *sql.DB
}

// CreateAssignmentTx appends the assignment record inside the approval
// transaction.
func (r *AssignmentRepository) CreateAssignmentTx(ctx context.Context, tx *sql.Tx, a models.Assignment) (models.Assignment, error) {
	a.ID = uuid.New().String()
	a.AssignmentDate = time.Now()
	a.Status = models.AssignmentStatusAssigned
	a.ReturnDate = nil

	query := `
		INSERT INTO assignments
			(id, asset_id, asset_name, asset_type, asset_image,
			 employee_email, employee_name, hr_email, company_name,
			 assignment_date, return_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		a.ID, a.AssetID, a.AssetName, a.AssetType, a.AssetImage,
		a.EmployeeEmail, a.EmployeeName, a.HREmail, a.CompanyName,
		a.AssignmentDate, a.Status,
	)
	if err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

func (r *AssignmentRepository) GetAssignmentsByHREmail(ctx context.Context, hrEmail string) ([]models.Assignment, error) {
	query := assignmentSelect + ` WHERE hr_email = ? ORDER BY assignment_date DESC`
	return r.queryAssignments(ctx, query, hrEmail)
}

func (r *AssignmentRepository) GetAssignmentsByEmployee(ctx context.Context, email string) ([]models.Assignment, error) {
	query := assignmentSelect + ` WHERE employee_email = ? ORDER BY assignment_date DESC`
	return r.queryAssignments(ctx, query, email)
}

const assignmentSelect = `
	SELECT id, asset_id, asset_name, asset_type, asset_image,
	       employee_email, employee_name, hr_email, company_name,
	       assignment_date, return_date, status
	FROM assignments`

func (r *AssignmentRepository) queryAssignments(ctx context.Context, query string, args ...interface{}) ([]models.Assignment, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []models.Assignment
	for rows.Next() {
		var a models.Assignment
		if err := rows.Scan(
			&a.ID, &a.AssetID, &a.AssetName, &a.AssetType, &a.AssetImage,
			&a.EmployeeEmail, &a.EmployeeName, &a.HREmail, &a.CompanyName,
			&a.AssignmentDate, &a.ReturnDate, &a.Status,
		); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}
