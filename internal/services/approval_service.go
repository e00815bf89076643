package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

// ApprovalService executes the request-approval workflow: one transaction
// covering the request transition, the inventory decrement, the assignment
// record, the affiliation upsert and the HR capacity counter. It holds no
// state of its own beyond store references.
type ApprovalService struct {
	DB              *sql.DB
	UserRepo        *repositories.UserRepository
	AssetRepo       *repositories.AssetRepository
	RequestRepo     *repositories.RequestRepository
	AssignmentRepo  *repositories.AssignmentRepository
	AffiliationRepo *repositories.AffiliationRepository

	// Timeout bounds the whole approval round-trip. Zero disables the bound.
	Timeout time.Duration
}

const defaultApprovalTimeout = 10 * time.Second

// Approve transitions the request to approved and applies every side effect
// of the approval, all-or-nothing. The row locks taken here (request, hr,
// asset, in that order) serialize concurrent approvals that touch the same
// records.
func (s *ApprovalService) Approve(ctx context.Context, requestID, hrEmail string) (models.Assignment, error) {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = defaultApprovalTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}
	defer tx.Rollback()

	req, err := s.RequestRepo.GetRequestForApproval(ctx, tx, requestID)
	if err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}

	// Idempotence gate: a retried approval of a processed request is a safe
	// failure, never a re-execution.
	switch req.RequestStatus {
	case models.StatusApproved:
		return models.Assignment{}, models.ErrRequestAlreadyApproved
	case models.StatusRejected:
		return models.Assignment{}, models.ErrRequestAlreadyRejected
	}

	if req.HREmail != hrEmail {
		return models.Assignment{}, models.ErrNotRequestOwner
	}

	hr, err := s.UserRepo.GetHRForApprovalTx(ctx, tx, hrEmail)
	if err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}

	asset, err := s.AssetRepo.GetAssetForApproval(ctx, tx, req.AssetID)
	if err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}
	if asset.AvailableQuantity <= 0 {
		return models.Assignment{}, models.ErrAssetOutOfStock
	}

	// The capacity gate applies only when this approval would create a new
	// affiliation; an already-affiliated employee consumes no extra slot.
	_, pairErr := s.AffiliationRepo.GetByPairTx(ctx, tx, req.RequesterEmail, hrEmail)
	affiliated := pairErr == nil
	if pairErr != nil && !errors.Is(pairErr, models.ErrAffiliationNotFound) {
		return models.Assignment{}, mapStoreErr(pairErr)
	}
	if !affiliated && hr.CurrentEmployees >= hr.PackageLimit {
		return models.Assignment{}, models.ErrCapacityReached
	}

	if err := s.AssetRepo.DecrementAvailableTx(ctx, tx, req.AssetID); err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}

	employee, err := s.UserRepo.GetUserByEmail(ctx, req.RequesterEmail)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return models.Assignment{}, mapStoreErr(err)
	}

	assignment, err := s.AssignmentRepo.CreateAssignmentTx(ctx, tx, models.Assignment{
		AssetID:       asset.ID,
		AssetName:     asset.ProductName,
		AssetType:     asset.ProductType,
		AssetImage:    asset.ProductImage,
		EmployeeEmail: req.RequesterEmail,
		EmployeeName:  req.RequesterName,
		HREmail:       hrEmail,
		CompanyName:   hr.CompanyName,
	})
	if err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}

	if err := s.RequestRepo.MarkApprovedTx(ctx, tx, req.ID, hrEmail); err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}

	_, created, err := s.AffiliationRepo.CreateIfAbsentTx(ctx, tx, models.Affiliation{
		EmployeeEmail: req.RequesterEmail,
		EmployeeName:  req.RequesterName,
		EmployeeImage: employee.ProfileImage,
		HREmail:       hrEmail,
		CompanyName:   hr.CompanyName,
		CompanyLogo:   hr.CompanyLogo,
	})
	if err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}
	if created {
		if err := s.UserRepo.IncrementEmployeeCountTx(ctx, tx, hrEmail); err != nil {
			return models.Assignment{}, mapStoreErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Assignment{}, mapStoreErr(err)
	}
	return assignment, nil
}

// Reject transitions a pending request to rejected. Terminal and idempotent
// in failure: re-rejecting reports ErrRequestAlreadyRejected.
func (s *ApprovalService) Reject(ctx context.Context, requestID, hrEmail string) (models.Request, error) {
	timeout := s.Timeout
	if timeout == 0 {
		timeout = defaultApprovalTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := s.RequestRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return models.Request{}, mapStoreErr(err)
	}
	if req.HREmail != hrEmail {
		return models.Request{}, models.ErrNotRequestOwner
	}
	if err := s.RequestRepo.MarkRejected(ctx, requestID, hrEmail); err != nil {
		return models.Request{}, mapStoreErr(err)
	}
	return s.RequestRepo.GetRequestByID(ctx, requestID)
}

// mapStoreErr surfaces deadline expiry as the dedicated timeout error; domain
// errors pass through untouched.
func mapStoreErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.ErrStoreTimeout
	}
	return err
}
