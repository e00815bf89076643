package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"assetVerse/internal/models"
)

func TestDecrementAvailableTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := AssetRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE assets").WithArgs("asset-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := repo.DecrementAvailableTx(context.Background(), tx, "asset-1"); err != nil {
		t.Fatalf("DecrementAvailableTx: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDecrementAvailableTx_OutOfStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := AssetRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE assets").WithArgs("asset-1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	defer tx.Rollback()

	err = repo.DecrementAvailableTx(context.Background(), tx, "asset-1")
	if !errors.Is(err, models.ErrAssetOutOfStock) {
		t.Fatalf("expected ErrAssetOutOfStock, got %v", err)
	}
}

func TestRestock_OverProductQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := AssetRepository{DB: db}

	// The conditional UPDATE matches no rows, then the existence probe finds
	// the asset, so the failure is attributed to the quantity cap.
	mock.ExpectExec("UPDATE assets").WithArgs(10, "asset-1", 10).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM assets").WithArgs("asset-1").WillReturnRows(assetRows("asset-1", 5, 2))

	_, err = repo.Restock(context.Background(), "asset-1", 10)
	if !errors.Is(err, models.ErrQuantityExceeded) {
		t.Fatalf("expected ErrQuantityExceeded, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRestock_MissingAsset(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := AssetRepository{DB: db}

	mock.ExpectExec("UPDATE assets").WithArgs(1, "gone", 1).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM assets").WithArgs("gone").WillReturnRows(sqlmock.NewRows(assetColumns()))

	_, err = repo.Restock(context.Background(), "gone", 1)
	if !errors.Is(err, models.ErrAssetNotFound) {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func assetColumns() []string {
	return []string{
		"id", "product_name", "product_type", "product_image", "product_quantity",
		"available_quantity", "hr_email", "company_name", "date_added",
	}
}

func assetRows(id string, productQty, availableQty int) *sqlmock.Rows {
	return sqlmock.NewRows(assetColumns()).AddRow(
		id, "MacBook Pro", "laptop", "", productQty,
		availableQty, "hr@corp.kz", "Corp", time.Now(),
	)
}
