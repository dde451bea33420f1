package entity

import (
	"gorm.io/gorm"
)

// CartItem is one cart line. Line identity is (MenuItemID, Customizations):
// the same dish with different customizations stays a separate line.
type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId"`
	Cart   Cart `json:"-"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"` // preload only when the name is stale

	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unitPrice"`
	Qty            int     `json:"qty"`
	Customizations string  `json:"customizations"`
}
