package services

import (
	"strings"

	"assetdesk/internal/models"
	"assetdesk/internal/repositories"
)

// AssetInput holds the asset form fields after parsing. AllocatedTo is nil
// when the field was absent or blank.
type AssetInput struct {
	Name        string
	Description string
	Status      string
	AllocatedTo *uint
}

// AssetService handles business logic for assets.
type AssetService struct {
	assetRepo repositories.AssetRepository
	userRepo  repositories.UserRepository
}

// NewAssetService creates a new AssetService.
func NewAssetService(assetRepo repositories.AssetRepository, userRepo repositories.UserRepository) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		userRepo:  userRepo,
	}
}

// List returns every asset with its allocated user loaded, plus the full
// user list for the allocation selector.
func (s *AssetService) List() ([]models.Asset, []models.User, error) {
	assets, err := s.assetRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, nil, err
	}
	return assets, users, nil
}

// Create validates the input and inserts a new asset. Any authenticated
// user may create assets, allocation included.
func (s *AssetService) Create(input AssetInput) (*models.Asset, error) {
	if input.Name == "" || input.Status == "" {
		return nil, &ValidationError{Message: "Name and status are required"}
	}

	asset := &models.Asset{
		Name:        input.Name,
		Description: optional(input.Description),
		Status:      input.Status,
		AllocatedTo: input.AllocatedTo,
	}
	if err := s.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Update applies the input to an existing asset on behalf of actor. Admins
// may edit any asset and change allocation; a regular user may edit only an
// asset that is unallocated or allocated to themselves, and the submitted
// allocation is ignored so the existing one is kept.
func (s *AssetService) Update(id uint, input AssetInput, actor Identity) (*models.Asset, error) {
	asset, err := s.assetRepo.GetByID(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}

	if !CanEditAsset(actor.Role, actor.UserID, asset) {
		return nil, ErrAccessDenied
	}
	if input.Name == "" || input.Status == "" {
		return nil, &ValidationError{Message: "Name and status are required"}
	}

	asset.Name = input.Name
	asset.Description = optional(input.Description)
	asset.Status = input.Status
	if CanReallocate(actor.Role) {
		asset.AllocatedTo = input.AllocatedTo
	}

	if err := s.assetRepo.Update(asset); err != nil {
		return nil, err
	}
	return asset, nil
}

// Delete removes an asset. Admin only; deleting an absent id succeeds.
func (s *AssetService) Delete(id uint, actor Identity) error {
	if !CanDeleteAsset(actor.Role) {
		return ErrAccessDenied
	}
	return s.assetRepo.Delete(id)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
