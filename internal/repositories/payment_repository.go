package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetVerse/internal/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

// InsertIfAbsent records a payment keyed by the provider transaction id.
// A redelivered callback hits the primary key and reports inserted=false.
func (r *PaymentRepository) InsertIfAbsent(ctx context.Context, p models.Payment) (bool, error) {
	p.PaymentDate = time.Now()
	p.Status = models.PaymentStatusPaid

	query := `
		INSERT IGNORE INTO payments
			(txn_id, hr_email, package_id, package_name, employee_limit, amount, payment_date, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.DB.ExecContext(ctx, query,
		p.TxnID, p.HREmail, p.PackageID, p.PackageName, p.EmployeeLimit, p.Amount, p.PaymentDate, p.Status,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *PaymentRepository) GetPaymentsByHREmail(ctx context.Context, hrEmail string) ([]models.Payment, error) {
	query := `
		SELECT txn_id, hr_email, package_id, package_name, employee_limit, amount, payment_date, status
		FROM payments
		WHERE hr_email = ?
		ORDER BY payment_date DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, hrEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.TxnID, &p.HREmail, &p.PackageID, &p.PackageName, &p.EmployeeLimit, &p.Amount, &p.PaymentDate, &p.Status); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

type PackageRepository struct {
	DB *sql.DB
}

func (r *PackageRepository) GetPackageByID(ctx context.Context, id string) (models.Package, error) {
	query := `SELECT id, name, employee_limit, price FROM packages WHERE id = ?`
	var p models.Package
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.EmployeeLimit, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Package{}, models.ErrPackageNotFound
	}
	if err != nil {
		return models.Package{}, err
	}
	return p, nil
}

func (r *PackageRepository) GetAllPackages(ctx context.Context) ([]models.Package, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, employee_limit, price FROM packages ORDER BY employee_limit`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []models.Package
	for rows.Next() {
		var p models.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.EmployeeLimit, &p.Price); err != nil {
			return nil, err
		}
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return packages, nil
}
