package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint `json:"menuItemId"`

	Name           string  `json:"name"`
	UnitPrice      float64 `json:"unitPrice"`
	Qty            int     `json:"qty"`
	Customizations string  `json:"customizations"`
}
