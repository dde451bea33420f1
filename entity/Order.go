package entity

import (
	"time"

	"gorm.io/gorm"
)

// Where an order record came from. Resolved once at ingestion; readers never
// re-guess the shape.
const (
	OriginLocal  = "local"
	OriginRemote = "remote"
)

// Order is an immutable snapshot of a cart at checkout. Items and bill
// figures never change after creation; only Status and the payment
// confirmation fields may transition.
type Order struct {
	gorm.Model
	OrderKey string `json:"orderKey" gorm:"uniqueIndex"` // remote id when synced, local uuid otherwise
	Origin   string `json:"origin"`
	Synced   bool   `json:"synced"`

	CashierID uint `json:"cashierId"`

	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	GuestCount    int    `json:"guestCount"`
	TableID       uint   `json:"tableId"`
	TableNo       string `json:"tableNo"`

	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Status           string `json:"status"`
	PaymentMethod    string `json:"paymentMethod"`
	PaymentReference string `json:"paymentReference"`

	PlacedAt time.Time `json:"placedAt"`

	Items    []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Payments []Payment   `json:"-"`
}
