package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"assetdesk/internal/models"
)

// MockAssetRepository is an in-memory implementation of AssetRepository.
type MockAssetRepository struct {
	assets map[uint]models.Asset
	nextID uint
	mu     sync.RWMutex
}

// NewMockAssetRepository creates a new instance of MockAssetRepository.
func NewMockAssetRepository() *MockAssetRepository {
	return &MockAssetRepository{
		assets: make(map[uint]models.Asset),
		nextID: 1,
	}
}

// GetAll returns all assets ordered by ID.
func (r *MockAssetRepository) GetAll() ([]models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	assetList := make([]models.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		assetList = append(assetList, a)
	}
	sort.Slice(assetList, func(i, j int) bool { return assetList[i].ID < assetList[j].ID })
	return assetList, nil
}

// GetByID returns an asset by its ID.
func (r *MockAssetRepository) GetByID(id uint) (*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	asset, ok := r.assets[id]
	if !ok {
		return nil, fmt.Errorf("asset with ID %d not found", id)
	}
	return &asset, nil
}

// Create adds a new asset, assigning an ID and timestamps.
func (r *MockAssetRepository) Create(asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if asset.ID == 0 {
		asset.ID = r.nextID
		r.nextID++
	} else if asset.ID >= r.nextID {
		r.nextID = asset.ID + 1
	}
	asset.CreatedAt = time.Now()
	asset.UpdatedAt = asset.CreatedAt
	r.assets[asset.ID] = *asset
	return nil
}

// Update modifies an existing asset and refreshes its UpdatedAt.
func (r *MockAssetRepository) Update(asset *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.assets[asset.ID]
	if !ok {
		return fmt.Errorf("asset with ID %d not found for update", asset.ID)
	}
	asset.CreatedAt = existing.CreatedAt
	asset.UpdatedAt = time.Now()
	r.assets[asset.ID] = *asset
	return nil
}

// Delete removes an asset by its ID. Absent ids are a no-op.
func (r *MockAssetRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.assets, id)
	return nil
}
