package services

import "assetdesk/internal/models"

// Authorization policy for assets, kept as plain functions so the rules can
// be tested without any HTTP plumbing.

// CanEditAsset reports whether a user may edit the given asset. Admins may
// edit anything; a regular user may edit only an asset that is unallocated
// or allocated to themselves.
func CanEditAsset(role string, userID uint, asset *models.Asset) bool {
	if role == models.RoleAdmin {
		return true
	}
	return asset.AllocatedTo == nil || *asset.AllocatedTo == userID
}

// CanReallocate reports whether a user may change an asset's allocation.
func CanReallocate(role string) bool {
	return role == models.RoleAdmin
}

// CanDeleteAsset reports whether a user may delete assets.
func CanDeleteAsset(role string) bool {
	return role == models.RoleAdmin
}
