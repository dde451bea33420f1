package entity

import (
	"gorm.io/gorm"
)

// Cart is the working set of a single POS session (one terminal + one
// customer interaction). One cart per session key.
type Cart struct {
	gorm.Model
	SessionKey string `json:"sessionKey" gorm:"uniqueIndex"`

	// Customer context lives beside the lines so a checkout can snapshot both.
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	GuestCount    int    `json:"guestCount"`
	TableID       uint   `json:"tableId"`
	TableNo       string `json:"tableNo"`

	Items []CartItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
