package entity

import (
	"gorm.io/gorm"
)

type Payment struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference string  `json:"reference"` // gateway reference for settled payments
	Status    string  `json:"status"`
}
