package services

import (
	"context"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

type AffiliationService struct {
	AffiliationRepo *repositories.AffiliationRepository
	UserRepo        *repositories.UserRepository
}

func (s *AffiliationService) GetByHREmail(ctx context.Context, hrEmail string) ([]models.Affiliation, error) {
	return s.AffiliationRepo.GetByHREmail(ctx, hrEmail)
}

func (s *AffiliationService) GetByEmployee(ctx context.Context, email string) ([]models.Affiliation, error) {
	return s.AffiliationRepo.GetByEmployee(ctx, email)
}

func (s *AffiliationService) GetCompaniesByEmployee(ctx context.Context, email string) ([]models.Company, error) {
	return s.AffiliationRepo.GetCompaniesByEmployee(ctx, email)
}

// RevokeAffiliation removes the affiliation and releases the HR's capacity
// slot. Revocation frees room for a new employee; the historical assignment
// records stay untouched.
func (s *AffiliationService) RevokeAffiliation(ctx context.Context, id, hrEmail string) error {
	removed, err := s.AffiliationRepo.DeleteAffiliation(ctx, id, hrEmail)
	if err != nil {
		return err
	}
	return s.UserRepo.DecrementEmployeeCount(ctx, removed.HREmail)
}
