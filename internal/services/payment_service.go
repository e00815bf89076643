package services

import (
	"context"
	"strconv"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"

	"github.com/google/uuid"
)

// PaymentService handles the subscription upgrade flow: checkout creation and
// the provider's result callback.
type PaymentService struct {
	Checkout    *CheckoutService
	PaymentRepo *repositories.PaymentRepository
	PackageRepo *repositories.PackageRepository
	UserRepo    *repositories.UserRepository
}

// CreateCheckout mints a transaction id and returns the provider redirect URL
// for the given package.
func (s *PaymentService) CreateCheckout(ctx context.Context, hrEmail, packageID string) (string, string, error) {
	if _, err := s.UserRepo.GetHRByEmail(ctx, hrEmail); err != nil {
		return "", "", err
	}
	pkg, err := s.PackageRepo.GetPackageByID(ctx, packageID)
	if err != nil {
		return "", "", err
	}

	txnID := uuid.New().String()
	payURL, err := s.Checkout.GeneratePayURL(txnID, pkg.Price, pkg.Name+" package", hrEmail, pkg.ID)
	if err != nil {
		return "", "", err
	}
	return txnID, payURL, nil
}

// HandlePaymentResult processes a verified "paid" callback. Safe under
// redelivery: the payment insert dedups on transaction id and the subscription
// upgrade sets absolute values, so a replay observes identical state.
func (s *PaymentService) HandlePaymentResult(ctx context.Context, txnID, hrEmail, packageID, outSum string) (bool, error) {
	pkg, err := s.PackageRepo.GetPackageByID(ctx, packageID)
	if err != nil {
		return false, err
	}

	amount, err := strconv.ParseFloat(outSum, 64)
	if err != nil {
		amount = pkg.Price
	}

	inserted, err := s.PaymentRepo.InsertIfAbsent(ctx, models.Payment{
		TxnID:         txnID,
		HREmail:       hrEmail,
		PackageID:     pkg.ID,
		PackageName:   pkg.Name,
		EmployeeLimit: pkg.EmployeeLimit,
		Amount:        amount,
	})
	if err != nil {
		return false, err
	}

	if err := s.UserRepo.ApplySubscriptionUpgrade(ctx, hrEmail, pkg.EmployeeLimit, pkg.Name); err != nil {
		return inserted, err
	}
	return inserted, nil
}

func (s *PaymentService) GetPaymentsByHREmail(ctx context.Context, hrEmail string) ([]models.Payment, error) {
	return s.PaymentRepo.GetPaymentsByHREmail(ctx, hrEmail)
}

func (s *PaymentService) GetAllPackages(ctx context.Context) ([]models.Package, error) {
	return s.PackageRepo.GetAllPackages(ctx)
}
