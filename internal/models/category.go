package models

import "time"

// Category groups products in the storefront. Products keep a soft
// reference to it: deleting a category does not cascade.
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	ImageURL    string    `json:"imageUrl" validate:"omitempty,url"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
