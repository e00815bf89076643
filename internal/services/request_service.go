package services

import (
	"context"
	"errors"

	"assetVerse/internal/models"
	"assetVerse/internal/repositories"
)

var ErrInvalidRequest = errors.New("invalid request payload")

type RequestService struct {
	RequestRepo *repositories.RequestRepository
	AssetRepo   *repositories.AssetRepository
	UserRepo    *repositories.UserRepository
}

// CreateRequest files an employee's asset request. The asset snapshot fields
// (name, type, image) and the owning HR are copied from the asset record at
// request time.
func (s *RequestService) CreateRequest(ctx context.Context, requesterEmail, assetID, note string) (models.Request, error) {
	if assetID == "" {
		return models.Request{}, ErrInvalidRequest
	}

	requester, err := s.UserRepo.GetUserByEmail(ctx, requesterEmail)
	if err != nil {
		return models.Request{}, err
	}

	asset, err := s.AssetRepo.GetAssetByID(ctx, assetID)
	if err != nil {
		return models.Request{}, err
	}

	return s.RequestRepo.CreateRequest(ctx, models.Request{
		AssetID:        asset.ID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		AssetImage:     asset.ProductImage,
		RequesterEmail: requester.Email,
		RequesterName:  requester.Name,
		HREmail:        asset.HREmail,
		CompanyName:    asset.CompanyName,
		Note:           note,
	})
}

func (s *RequestService) GetRequestsByHREmail(ctx context.Context, hrEmail string) ([]models.Request, error) {
	return s.RequestRepo.GetRequestsByHREmail(ctx, hrEmail)
}

func (s *RequestService) GetRequestsByRequester(ctx context.Context, email string) ([]models.Request, error) {
	return s.RequestRepo.GetRequestsByRequester(ctx, email)
}

func (s *RequestService) GetPendingByAssetID(ctx context.Context, assetID string) ([]models.Request, error) {
	return s.RequestRepo.GetPendingByAssetID(ctx, assetID)
}

// DeleteRequest removes a request. HRs may delete requests addressed to them,
// employees their own.
func (s *RequestService) DeleteRequest(ctx context.Context, id, principalEmail string) error {
	req, err := s.RequestRepo.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if req.HREmail != principalEmail && req.RequesterEmail != principalEmail {
		return models.ErrRequestNotFound
	}
	return s.RequestRepo.DeleteRequest(ctx, id)
}
