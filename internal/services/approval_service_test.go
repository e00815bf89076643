package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

func newApprovalService(db *sql.DB) *ApprovalService {
	return &ApprovalService{
		DB:              db,
		UserRepo:        &repositories.UserRepository{DB: db},
		AssetRepo:       &repositories.AssetRepository{DB: db},
		RequestRepo:     &repositories.RequestRepository{DB: db},
		AssignmentRepo:  &repositories.AssignmentRepository{DB: db},
		AffiliationRepo: &repositories.AffiliationRepository{DB: db},
	}
}

func pendingRequestRow() *sqlmock.Rows {
	return requestRowWithStatus("pending")
}

func requestRowWithStatus(status string) *sqlmock.Rows {
	cols := []string{
		"id", "asset_id", "asset_name", "asset_type", "asset_image",
		"requester_email", "requester_name", "hr_email", "company_name", "note",
		"request_status", "request_date", "approved_date", "processed_by",
	}
	return sqlmock.NewRows(cols).AddRow(
		"req-1", "asset-1", "MacBook Pro", "laptop", "",
		"emp@corp.kz", "Dana", "hr@corp.kz", "Corp", "need one",
		status, time.Now(), nil, nil,
	)
}

func userCols() []string {
	return []string{
		"email", "role", "name", "profile_image", "company_name", "company_logo",
		"package_limit", "current_employees", "subscription", "created_at", "updated_at",
	}
}

func hrRow(limit, current int) *sqlmock.Rows {
	return sqlmock.NewRows(userCols()).AddRow(
		"hr@corp.kz", "hr", "Aigerim", "", "Corp", "",
		limit, current, "basic", time.Now(), nil,
	)
}

func employeeRow() *sqlmock.Rows {
	return sqlmock.NewRows(userCols()).AddRow(
		"emp@corp.kz", "employee", "Dana", "", "", "",
		0, 0, "", time.Now(), nil,
	)
}

func approvalAssetRow(available int) *sqlmock.Rows {
	cols := []string{
		"id", "product_name", "product_type", "product_image", "product_quantity",
		"available_quantity", "hr_email", "company_name", "date_added",
	}
	return sqlmock.NewRows(cols).AddRow(
		"asset-1", "MacBook Pro", "laptop", "", 5,
		available, "hr@corp.kz", "Corp", time.Now(),
	)
}

func affiliationRow() *sqlmock.Rows {
	cols := []string{
		"id", "employee_email", "employee_name", "employee_image",
		"hr_email", "company_name", "company_logo", "affiliation_date", "status",
	}
	return sqlmock.NewRows(cols).AddRow(
		"aff-1", "emp@corp.kz", "Dana", "",
		"hr@corp.kz", "Corp", "", time.Now(), "active",
	)
}

func TestApprove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").WithArgs("req-1").WillReturnRows(pendingRequestRow())
	mock.ExpectQuery("FROM users WHERE email = (.+) AND role = 'hr'").WithArgs("hr@corp.kz").WillReturnRows(hrRow(5, 2))
	mock.ExpectQuery("FROM assets WHERE id = (.+) FOR UPDATE").WithArgs("asset-1").WillReturnRows(approvalAssetRow(3))
	mock.ExpectQuery("FROM affiliations").WithArgs("emp@corp.kz", "hr@corp.kz").WillReturnError(sql.ErrNoRows)
	mock.ExpectExec("UPDATE assets").WithArgs("asset-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM users WHERE email").WithArgs("emp@corp.kz").WillReturnRows(employeeRow())
	mock.ExpectExec("INSERT INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE requests").WithArgs(sqlmock.AnyArg(), "hr@corp.kz", "req-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO affiliations").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE users").WithArgs(sqlmock.AnyArg(), "hr@corp.kz").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assignment, err := svc.Approve(context.Background(), "req-1", "hr@corp.kz")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if assignment.EmployeeEmail != "emp@corp.kz" {
		t.Errorf("assignment employee = %q", assignment.EmployeeEmail)
	}
	if assignment.AssetID != "asset-1" {
		t.Errorf("assignment asset = %q", assignment.AssetID)
	}
	if assignment.Status != models.AssignmentStatusAssigned {
		t.Errorf("assignment status = %q", assignment.Status)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApprove_AlreadyApproved(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").WithArgs("req-1").WillReturnRows(requestRowWithStatus("approved"))
	mock.ExpectRollback()

	_, err = svc.Approve(context.Background(), "req-1", "hr@corp.kz")
	if !errors.Is(err, models.ErrRequestAlreadyApproved) {
		t.Fatalf("expected ErrRequestAlreadyApproved, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApprove_NotRequestOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").WithArgs("req-1").WillReturnRows(pendingRequestRow())
	mock.ExpectRollback()

	_, err = svc.Approve(context.Background(), "req-1", "other@corp.kz")
	if !errors.Is(err, models.ErrNotRequestOwner) {
		t.Fatalf("expected ErrNotRequestOwner, got %v", err)
	}
}

func TestApprove_OutOfStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").WithArgs("req-1").WillReturnRows(pendingRequestRow())
	mock.ExpectQuery("FROM users WHERE email = (.+) AND role = 'hr'").WithArgs("hr@corp.kz").WillReturnRows(hrRow(5, 2))
	mock.ExpectQuery("FROM assets WHERE id = (.+) FOR UPDATE").WithArgs("asset-1").WillReturnRows(approvalAssetRow(0))
	mock.ExpectRollback()

	_, err = svc.Approve(context.Background(), "req-1", "hr@corp.kz")
	if !errors.Is(err, models.ErrAssetOutOfStock) {
		t.Fatalf("expected ErrAssetOutOfStock, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApprove_CapacityReached(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").WithArgs("req-1").WillReturnRows(pendingRequestRow())
	mock.ExpectQuery("FROM users WHERE email = (.+) AND role = 'hr'").WithArgs("hr@corp.kz").WillReturnRows(hrRow(5, 5))
	mock.ExpectQuery("FROM assets WHERE id = (.+) FOR UPDATE").WithArgs("asset-1").WillReturnRows(approvalAssetRow(3))
	mock.ExpectQuery("FROM affiliations").WithArgs("emp@corp.kz", "hr@corp.kz").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = svc.Approve(context.Background(), "req-1", "hr@corp.kz")
	if !errors.Is(err, models.ErrCapacityReached) {
		t.Fatalf("expected ErrCapacityReached, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

// An HR at capacity can still approve a request from an employee who is
// already affiliated: no new slot is consumed and the counter stays put.
func TestApprove_AffiliatedEmployeeBypassesCapacity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM requests WHERE id = (.+) FOR UPDATE").WithArgs("req-1").WillReturnRows(pendingRequestRow())
	mock.ExpectQuery("FROM users WHERE email = (.+) AND role = 'hr'").WithArgs("hr@corp.kz").WillReturnRows(hrRow(5, 5))
	mock.ExpectQuery("FROM assets WHERE id = (.+) FOR UPDATE").WithArgs("asset-1").WillReturnRows(approvalAssetRow(3))
	mock.ExpectQuery("FROM affiliations").WithArgs("emp@corp.kz", "hr@corp.kz").WillReturnRows(affiliationRow())
	mock.ExpectExec("UPDATE assets").WithArgs("asset-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM users WHERE email").WithArgs("emp@corp.kz").WillReturnRows(employeeRow())
	mock.ExpectExec("INSERT INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE requests").WithArgs(sqlmock.AnyArg(), "hr@corp.kz", "req-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO affiliations").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("FROM affiliations").WithArgs("emp@corp.kz", "hr@corp.kz").WillReturnRows(affiliationRow())
	mock.ExpectCommit()

	_, err = svc.Approve(context.Background(), "req-1", "hr@corp.kz")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	svc := newApprovalService(db)

	mock.ExpectQuery("FROM requests WHERE id").WithArgs("req-1").WillReturnRows(pendingRequestRow())
	mock.ExpectExec("UPDATE requests").WithArgs(sqlmock.AnyArg(), "hr@corp.kz", "req-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM requests WHERE id").WithArgs("req-1").WillReturnRows(requestRowWithStatus("rejected"))

	req, err := svc.Reject(context.Background(), "req-1", "hr@corp.kz")
	if err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if req.RequestStatus != models.StatusRejected {
		t.Errorf("status = %q, want rejected", req.RequestStatus)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
