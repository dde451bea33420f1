package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Available   bool    `json:"available" gorm:"default:true"`

	CartItems  []CartItem  `json:"-"`
	OrderItems []OrderItem `json:"-"`
}
