package models

import "time"

// OrderStatus is the canonical order lifecycle status set. The admin
// console walks pending -> confirmed -> completed (or declined) but the
// workflow itself accepts any transition between these four values.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusCompleted OrderStatus = "completed"
	StatusDeclined  OrderStatus = "declined"
)

// Valid reports whether s is one of the canonical statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusDeclined:
		return true
	}
	return false
}

// Order records a purchase attempt. ProductName and Amount are snapshots
// taken at creation time; later product edits do not touch placed orders.
type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID   string      `json:"productId" gorm:"type:varchar(36)"`
	ProductName string      `json:"productName"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber,omitempty"`
	Amount      float64     `json:"amount"`
	Status      OrderStatus `json:"status" gorm:"type:varchar(20)"`
	CreatedAt   time.Time   `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt   time.Time   `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CustomerName is the display name used in notification emails.
func (o *Order) CustomerName() string {
	return o.FirstName + " " + o.LastName
}
