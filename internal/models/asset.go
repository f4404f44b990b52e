package models

import "time"

// Asset represents a single piece of office equipment.
//
// AllocatedTo is a nullable foreign key to users.id; nil means the asset is
// unallocated. Status is free form ("Available", "In Use", "Damaged",
// "Maintenance" by convention) and is not enforced as an enum by the store.
type Asset struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null" validate:"required"`
	Description *string   `json:"description"`
	Status      string    `json:"status" gorm:"not null" validate:"required"`
	AllocatedTo *uint     `json:"allocated_to"`
	Allocated   *User     `json:"-" gorm:"foreignKey:AllocatedTo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AllocatedUsername returns the username of the allocated user, or the empty
// string when the asset is unallocated (or the association is not loaded).
func (a Asset) AllocatedUsername() string {
	if a.Allocated == nil {
		return ""
	}
	return a.Allocated.Username
}
