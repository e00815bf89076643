package services

import (
	"context"
	"errors"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

var ErrInvalidAsset = errors.New("invalid asset payload")

type AssetService struct {
	AssetRepo *repositories.AssetRepository
	UserRepo  *repositories.UserRepository
}

// CreateAsset registers a new asset under the calling HR. Company name comes
// from the HR account, never from the client payload.
func (s *AssetService) CreateAsset(ctx context.Context, hrEmail string, a models.Asset) (models.Asset, error) {
	if a.ProductName == "" || a.ProductQuantity <= 0 {
		return models.Asset{}, ErrInvalidAsset
	}

	hr, err := s.UserRepo.GetHRByEmail(ctx, hrEmail)
	if err != nil {
		return models.Asset{}, err
	}

	a.HREmail = hr.Email
	a.CompanyName = hr.CompanyName
	return s.AssetRepo.CreateAsset(ctx, a)
}

func (s *AssetService) GetAssetByID(ctx context.Context, id string) (models.Asset, error) {
	return s.AssetRepo.GetAssetByID(ctx, id)
}

func (s *AssetService) GetAssetsFiltered(ctx context.Context, f models.AssetFilter) ([]models.Asset, int, error) {
	return s.AssetRepo.GetAssetsFiltered(ctx, f)
}

func (s *AssetService) UpdateAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	return s.AssetRepo.UpdateAsset(ctx, a)
}

func (s *AssetService) Restock(ctx context.Context, id, hrEmail string, by int) (models.Asset, error) {
	if by <= 0 {
		return models.Asset{}, ErrInvalidAsset
	}
	asset, err := s.AssetRepo.GetAssetByID(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}
	if asset.HREmail != hrEmail {
		return models.Asset{}, models.ErrAssetNotFound
	}
	return s.AssetRepo.Restock(ctx, id, by)
}

func (s *AssetService) DeleteAsset(ctx context.Context, id, hrEmail string) error {
	return s.AssetRepo.DeleteAsset(ctx, id, hrEmail)
}
