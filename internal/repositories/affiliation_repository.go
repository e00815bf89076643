package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetVerse/internal/models"

	"github.com/google/uuid"
)

type AffiliationRepository struct {
	DB *sql.DB
}

const affiliationSelect = `
	SELECT id, employee_email, employee_name, employee_image,
	       hr_email, company_name, company_logo, affiliation_date, status
	FROM affiliations`

// CreateIfAbsentTx inserts the affiliation unless the (employee, hr) pair
// already has one. The uniqueness check rides on the table's unique key, so
// two concurrent approvals cannot both insert; the loser of the race reads
// the winner's row back.
func (r *AffiliationRepository) CreateIfAbsentTx(ctx context.Context, tx *sql.Tx, a models.Affiliation) (models.Affiliation, bool, error) {
	a.ID = uuid.New().String()
	a.AffiliationDate = time.Now()
	a.Status = models.AffiliationStatusActive

	query := `
		INSERT INTO affiliations
			(id, employee_email, employee_name, employee_image,
			 hr_email, company_name, company_logo, affiliation_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE id = id
	`
	result, err := tx.ExecContext(ctx, query,
		a.ID, a.EmployeeEmail, a.EmployeeName, a.EmployeeImage,
		a.HREmail, a.CompanyName, a.CompanyLogo, a.AffiliationDate, a.Status,
	)
	if err != nil {
		return models.Affiliation{}, false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Affiliation{}, false, err
	}
	// MySQL reports 1 for a fresh insert and 0 for the no-op duplicate branch.
	if affected == 1 {
		return a, true, nil
	}

	existing, err := r.GetByPairTx(ctx, tx, a.EmployeeEmail, a.HREmail)
	if err != nil {
		return models.Affiliation{}, false, err
	}
	return existing, false, nil
}

func (r *AffiliationRepository) GetByPair(ctx context.Context, employeeEmail, hrEmail string) (models.Affiliation, error) {
	row := r.DB.QueryRowContext(ctx, affiliationSelect+` WHERE employee_email = ? AND hr_email = ?`, employeeEmail, hrEmail)
	return scanAffiliationRow(row)
}

// GetByPairTx is the transactional variant used during approval.
func (r *AffiliationRepository) GetByPairTx(ctx context.Context, tx *sql.Tx, employeeEmail, hrEmail string) (models.Affiliation, error) {
	row := tx.QueryRowContext(ctx, affiliationSelect+` WHERE employee_email = ? AND hr_email = ?`, employeeEmail, hrEmail)
	return scanAffiliationRow(row)
}

func scanAffiliationRow(row *sql.Row) (models.Affiliation, error) {
	var a models.Affiliation
	err := row.Scan(
		&a.ID, &a.EmployeeEmail, &a.EmployeeName, &a.EmployeeImage,
		&a.HREmail, &a.CompanyName, &a.CompanyLogo, &a.AffiliationDate, &a.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Affiliation{}, models.ErrAffiliationNotFound
	}
	if err != nil {
		return models.Affiliation{}, err
	}
	return a, nil
}

func (r *AffiliationRepository) GetByHREmail(ctx context.Context, hrEmail string) ([]models.Affiliation, error) {
	return r.queryAffiliations(ctx, affiliationSelect+` WHERE hr_email = ? ORDER BY affiliation_date DESC`, hrEmail)
}

func (r *AffiliationRepository) GetByEmployee(ctx context.Context, email string) ([]models.Affiliation, error) {
	return r.queryAffiliations(ctx, affiliationSelect+` WHERE employee_email = ? ORDER BY affiliation_date DESC`, email)
}

// GetCompaniesByEmployee aggregates the distinct companies an employee is
// affiliated with.
func (r *AffiliationRepository) GetCompaniesByEmployee(ctx context.Context, email string) ([]models.Company, error) {
	query := `
		SELECT DISTINCT company_name, company_logo, hr_email
		FROM affiliations
		WHERE employee_email = ?
		ORDER BY company_name
	`
	rows, err := r.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.CompanyName, &c.CompanyLogo, &c.HREmail); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

// DeleteAffiliation revokes the affiliation and returns the removed row so the
// caller can release the HR's capacity slot.
func (r *AffiliationRepository) DeleteAffiliation(ctx context.Context, id, hrEmail string) (models.Affiliation, error) {
	row := r.DB.QueryRowContext(ctx, affiliationSelect+` WHERE id = ? AND hr_email = ?`, id, hrEmail)
	a, err := scanAffiliationRow(row)
	if err != nil {
		return models.Affiliation{}, err
	}

	result, err := r.DB.ExecContext(ctx, `DELETE FROM affiliations WHERE id = ? AND hr_email = ?`, id, hrEmail)
	if err != nil {
		return models.Affiliation{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Affiliation{}, err
	}
	if affected == 0 {
		return models.Affiliation{}, models.ErrAffiliationNotFound
	}
	return a, nil
}

func (r *AffiliationRepository) queryAffiliations(ctx context.Context, query string, args ...interface{}) ([]models.Affiliation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var affiliations []models.Affiliation
	for rows.Next() {
		var a models.Affiliation
		if err := rows.Scan(
			&a.ID, &a.EmployeeEmail, &a.EmployeeName, &a.EmployeeImage,
			&a.HREmail, &a.CompanyName, &a.CompanyLogo, &a.AffiliationDate, &a.Status,
		); err != nil {
			return nil, err
		}
		affiliations = append(affiliations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return affiliations, nil
}
