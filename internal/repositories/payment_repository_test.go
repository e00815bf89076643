package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"assetVerse/internal/models"
)

func TestInsertIfAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := PaymentRepository{DB: db}

	payment := models.Payment{
		TxnID:         "txn-1",
		HREmail:       "hr@corp.kz",
		PackageID:     "standard",
		PackageName:   "standard",
		EmployeeLimit: 10,
		Amount:        8.00,
	}

	mock.ExpectExec("INSERT IGNORE INTO payments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	inserted, err := repo.InsertIfAbsent(context.Background(), payment)
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if !inserted {
		t.Fatal("first delivery must insert")
	}

	// Redelivery of the same transaction id hits the primary key.
	mock.ExpectExec("INSERT IGNORE INTO payments").
		WillReturnResult(sqlmock.NewResult(0, 0))

	inserted, err = repo.InsertIfAbsent(context.Background(), payment)
	if err != nil {
		t.Fatalf("InsertIfAbsent replay: %v", err)
	}
	if inserted {
		t.Fatal("replay must not insert")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
