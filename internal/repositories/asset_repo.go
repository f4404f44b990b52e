package repositories

import "assetdesk/internal/models"

// AssetRepository defines the interface for asset data access.
type AssetRepository interface {
	GetAll() ([]models.Asset, error)
	GetByID(id uint) (*models.Asset, error)
	Create(asset *models.Asset) error
	Update(asset *models.Asset) error
	Delete(id uint) error
}
