package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"assetVerse/internal/models"
)

func affiliationColumns() []string {
	return []string{
		"id", "employee_email", "employee_name", "employee_image",
		"hr_email", "company_name", "company_logo", "affiliation_date", "status",
	}
}

func TestCreateIfAbsentTx_FreshInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := AffiliationRepository{DB: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO affiliations").
		WithArgs(sqlmock.AnyArg(), "emp@corp.kz", "Dana", "", "hr@corp.kz", "Corp", "", sqlmock.AnyArg(), "active").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	created, isNew, err := repo.CreateIfAbsentTx(context.Background(), tx, models.Affiliation{
		EmployeeEmail: "emp@corp.kz",
		EmployeeName:  "Dana",
		HREmail:       "hr@corp.kz",
		CompanyName:   "Corp",
	})
	if err != nil {
		t.Fatalf("CreateIfAbsentTx: %v", err)
	}
	if !isNew {
		t.Fatal("expected a fresh affiliation")
	}
	if created.ID == "" {
		t.Error("expected a generated id")
	}
	if created.Status != models.AffiliationStatusActive {
		t.Errorf("status = %q, want active", created.Status)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateIfAbsentTx_DuplicateReadsExisting(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	repo := AffiliationRepository{DB: db}

	existingDate := time.Now().Add(-24 * time.Hour)

	mock.ExpectBegin()
	// The duplicate branch of the upsert reports zero affected rows, then the
	// existing row is read back.
	mock.ExpectExec("INSERT INTO affiliations").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM affiliations").
		WithArgs("emp@corp.kz", "hr@corp.kz").
		WillReturnRows(sqlmock.NewRows(affiliationColumns()).AddRow(
			"aff-1", "emp@corp.kz", "Dana", "",
			"hr@corp.kz", "Corp", "", existingDate, "active",
		))
	mock.ExpectCommit()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	existing, isNew, err := repo.CreateIfAbsentTx(context.Background(), tx, models.Affiliation{
		EmployeeEmail: "emp@corp.kz",
		HREmail:       "hr@corp.kz",
	})
	if err != nil {
		t.Fatalf("CreateIfAbsentTx: %v", err)
	}
	if isNew {
		t.Fatal("expected the duplicate branch")
	}
	if existing.ID != "aff-1" {
		t.Errorf("id = %q, want the pre-existing row", existing.ID)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
