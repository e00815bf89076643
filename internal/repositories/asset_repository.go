package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetVerse/internal/models"

	"github.com/google/uuid"
)

type AssetRepository struct {
	DB *sql.DB
}

func (r *AssetRepository) CreateAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	a.ID = uuid.New().String()
	a.AvailableQuantity = a.ProductQuantity
	a.DateAdded = time.Now()

	query := `
		INSERT INTO assets
			(id, product_name, product_type, product_image, product_quantity,
			 available_quantity, hr_email, company_name, date_added)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.DB.ExecContext(ctx, query,
		a.ID, a.ProductName, a.ProductType, a.ProductImage, a.ProductQuantity,
		a.AvailableQuantity, a.HREmail, a.CompanyName, a.DateAdded,
	)
	if err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

func (r *AssetRepository) GetAssetByID(ctx context.Context, id string) (models.Asset, error) {
	query := `
		SELECT id, product_name, product_type, product_image, product_quantity,
		       available_quantity, hr_email, company_name, date_added
		FROM assets
		WHERE id = ?
	`
	var a models.Asset
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ProductName, &a.ProductType, &a.ProductImage, &a.ProductQuantity,
		&a.AvailableQuantity, &a.HREmail, &a.CompanyName, &a.DateAdded,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, models.ErrAssetNotFound
	}
	if err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

func (r *AssetRepository) getAssetByIDTx(ctx context.Context, tx *sql.Tx, id string) (models.Asset, error) {
	query := `
		SELECT id, product_name, product_type, product_image, product_quantity,
		       available_quantity, hr_email, company_name, date_added
		FROM assets
		WHERE id = ?
		FOR UPDATE
	`
	var a models.Asset
	err := tx.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.ProductName, &a.ProductType, &a.ProductImage, &a.ProductQuantity,
		&a.AvailableQuantity, &a.HREmail, &a.CompanyName, &a.DateAdded,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, models.ErrAssetNotFound
	}
	if err != nil {
		return models.Asset{}, err
	}
	return a, nil
}

// GetAssetForApproval locks the asset row for the lifetime of the approval
// transaction.
func (r *AssetRepository) GetAssetForApproval(ctx context.Context, tx *sql.Tx, id string) (models.Asset, error) {
	return r.getAssetByIDTx(ctx, tx, id)
}

// DecrementAvailableTx is the atomic stock gate: the decrement and the
// availability check are one statement, so two concurrent approvals cannot
// both take the last unit.
func (r *AssetRepository) DecrementAvailableTx(ctx context.Context, tx *sql.Tx, id string) error {
	query := `
		UPDATE assets
		SET available_quantity = available_quantity - 1
		WHERE id = ? AND available_quantity > 0
	`
	result, err := tx.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrAssetOutOfStock
	}
	return nil
}

// Restock raises available_quantity by the given amount, capped at the initial
// product quantity.
func (r *AssetRepository) Restock(ctx context.Context, id string, by int) (models.Asset, error) {
	query := `
		UPDATE assets
		SET available_quantity = available_quantity + ?
		WHERE id = ? AND available_quantity + ? <= product_quantity
	`
	result, err := r.DB.ExecContext(ctx, query, by, id, by)
	if err != nil {
		return models.Asset{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Asset{}, err
	}
	if affected == 0 {
		if _, err := r.GetAssetByID(ctx, id); err != nil {
			return models.Asset{}, err
		}
		return models.Asset{}, models.ErrQuantityExceeded
	}
	return r.GetAssetByID(ctx, id)
}

func (r *AssetRepository) UpdateAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	query := `
		UPDATE assets
		SET product_name = ?, product_type = ?, product_image = ?
		WHERE id = ? AND hr_email = ?
	`
	result, err := r.DB.ExecContext(ctx, query, a.ProductName, a.ProductType, a.ProductImage, a.ID, a.HREmail)
	if err != nil {
		return models.Asset{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Asset{}, err
	}
	if affected == 0 {
		return models.Asset{}, models.ErrAssetNotFound
	}
	return r.GetAssetByID(ctx, a.ID)
}

func (r *AssetRepository) DeleteAsset(ctx context.Context, id, hrEmail string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM assets WHERE id = ? AND hr_email = ?`, id, hrEmail)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrAssetNotFound
	}
	return nil
}

// GetAssetsFiltered returns assets newest-first with an optional owner filter
// and case-insensitive name search, plus the total count for pagination.
func (r *AssetRepository) GetAssetsFiltered(ctx context.Context, f models.AssetFilter) ([]models.Asset, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	if f.HREmail != "" {
		where += ` AND hr_email = ?`
		args = append(args, f.HREmail)
	}
	if f.Search != "" {
		where += ` AND LOWER(product_name) LIKE LOWER(?)`
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM assets`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, product_name, product_type, product_image, product_quantity,
		       available_quantity, hr_email, company_name, date_added
		FROM assets` + where + `
		ORDER BY date_added DESC
	`
	if f.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		var a models.Asset
		if err := rows.Scan(
			&a.ID, &a.ProductName, &a.ProductType, &a.ProductImage, &a.ProductQuantity,
			&a.AvailableQuantity, &a.HREmail, &a.CompanyName, &a.DateAdded,
		); err != nil {
			return nil, 0, err
		}
		assets = append(assets, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}
