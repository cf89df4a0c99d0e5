package models

import "time"

// User is an administrator account. The store runs with a single admin
// seeded from configuration at startup; there is no self-registration.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string    `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"omitempty,email"`
	Password  string    `gorm:"type:varchar(255)" validate:"required,min=6"` // bcrypt hash, no json tag
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
