package repositories

import (
	"fmt"

	"assetdesk/internal/models"

	"gorm.io/gorm"
)

// GORMAssetRepository is a GORM implementation of AssetRepository.
type GORMAssetRepository struct {
	db *gorm.DB
}

// NewGORMAssetRepository creates a new instance of GORMAssetRepository.
func NewGORMAssetRepository(db *gorm.DB) *GORMAssetRepository {
	return &GORMAssetRepository{
		db: db,
	}
}

// GetAll retrieves all assets with their allocated user loaded. No paging or
// filtering; the full table is returned.
func (r *GORMAssetRepository) GetAll() ([]models.Asset, error) {
	var assets []models.Asset
	if err := r.db.Preload("Allocated").Order("id").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to get all assets: %w", err)
	}
	return assets, nil
}

// GetByID retrieves a single asset by its ID with the allocated user loaded.
func (r *GORMAssetRepository) GetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	if err := r.db.Preload("Allocated").First(&asset, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("asset with ID %d not found", id)
		}
		return nil, fmt.Errorf("failed to get asset by ID %d: %w", id, err)
	}
	return &asset, nil
}

// Create creates a new asset in the database.
func (r *GORMAssetRepository) Create(asset *models.Asset) error {
	if err := r.db.Create(asset).Error; err != nil {
		return fmt.Errorf("failed to create asset: %w", err)
	}
	return nil
}

// Update updates an existing asset in the database.
func (r *GORMAssetRepository) Update(asset *models.Asset) error {
	// Omit the association so a loaded Allocated user is never written back.
	res := r.db.Omit("Allocated", "CreatedAt").Save(asset)
	if res.Error != nil {
		return fmt.Errorf("failed to update asset: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("asset with ID %d not found for update", asset.ID)
	}
	return nil
}

// Delete deletes an asset by its ID. Deleting an absent id is a no-op, not
// an error.
func (r *GORMAssetRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Asset{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
