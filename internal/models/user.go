package models

import "time"

// Roles understood by the application. The role column is free text in the
// store but only these two values are ever written.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account that can log in and hold allocated assets.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null" validate:"required,alphanum,min=4,max=25"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null" validate:"required,email"`
	Password  string    `gorm:"not null"` // argon2id encoded hash; no json tag for security
	Role      string    `json:"role" gorm:"not null;default:user"`
	CreatedAt time.Time `json:"created_at"`
}
