package models

import "time"

// Product represents a product in the store. Stock is advisory: the
// storefront hides the buy button at zero, but placing an order never
// decrements it.
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string    `json:"name" validate:"required,min=2,max=100"`
	Description string    `json:"description" validate:"omitempty,max=500"`
	Price       float64   `json:"price" validate:"gte=0"`
	CategoryID  string    `json:"categoryId" gorm:"type:varchar(36)"`
	ImageURL    string    `json:"imageUrl" validate:"omitempty,url"`
	Stock       int       `json:"stock" validate:"gte=0"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
