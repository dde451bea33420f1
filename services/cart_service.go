package services

import (
	"fmt"
	"math"
	"strings"

	"posbackend/configs"
	"posbackend/entity"
	"posbackend/repository"

	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
	TaxRate  float64
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository, cfg *configs.Config) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr, TaxRate: cfg.TaxRate}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId"`

	// For ad-hoc lines not on the menu. Ignored when MenuItemID resolves.
	Name      string   `json:"name"`
	UnitPrice *float64 `json:"unitPrice"`

	Qty            int    `json:"qty" binding:"omitempty,min=1"`
	Customizations string `json:"customizations"`
}

// Totals are derived, never stored. Rounding happens at display time only;
// intermediate sums stay full precision so long carts don't compound error.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

func ComputeTotals(items []entity.CartItem, taxRate float64) Totals {
	var subtotal float64
	for _, it := range items {
		subtotal += it.UnitPrice * float64(it.Qty)
	}
	tax := subtotal * taxRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

func (s *CartService) Get(sessionKey string) (*entity.Cart, Totals, error) {
	c, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return nil, Totals{}, err
	}
	return c, ComputeTotals(c.Items, s.TaxRate), nil
}

func (s *CartService) Add(sessionKey string, in *AddToCartIn) error {
	if in.Qty <= 0 {
		in.Qty = 1
	}

	line := entity.CartItem{
		Qty:            in.Qty,
		Customizations: strings.TrimSpace(in.Customizations),
	}

	if in.MenuItemID != 0 {
		m, err := s.MenuRepo.FindByID(in.MenuItemID)
		if err != nil {
			return fmt.Errorf("%w: menu item %d not found", ErrInvalidItem, in.MenuItemID)
		}
		if !m.Available {
			return fmt.Errorf("%w: %s is not available", ErrInvalidItem, m.Name)
		}
		line.MenuItemID = m.ID
		line.Name = m.Name
		line.UnitPrice = m.Price
	} else {
		line.Name = strings.TrimSpace(in.Name)
		if in.UnitPrice != nil {
			line.UnitPrice = *in.UnitPrice
		} else {
			return fmt.Errorf("%w: price is required for off-menu items", ErrInvalidItem)
		}
	}

	if line.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidItem)
	}
	if math.IsNaN(line.UnitPrice) || math.IsInf(line.UnitPrice, 0) || line.UnitPrice < 0 {
		return fmt.Errorf("%w: price must be a finite non-negative number", ErrInvalidItem)
	}

	c, err := s.CartRepo.GetOrCreateCart(sessionKey)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.UpsertItem(tx, c.ID, &line)
	})
}

func (s *CartService) SetQty(sessionKey string, itemID uint, qty int) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.SetQty(tx, sessionKey, itemID, qty)
	})
}

func (s *CartService) Increment(sessionKey string, itemID uint) error {
	return s.bump(sessionKey, itemID, +1)
}

// Decrement below quantity 1 removes the line; a line never sits at zero.
func (s *CartService) Decrement(sessionKey string, itemID uint) error {
	return s.bump(sessionKey, itemID, -1)
}

func (s *CartService) bump(sessionKey string, itemID uint, delta int) error {
	c, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return err
	}
	for _, it := range c.Items {
		if it.ID == itemID {
			return s.SetQty(sessionKey, itemID, it.Qty+delta)
		}
	}
	// bumping an absent line is a no-op, same as idempotent removal
	return nil
}

func (s *CartService) RemoveItem(sessionKey string, itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.RemoveItem(tx, sessionKey, itemID)
	})
}

func (s *CartService) Clear(sessionKey string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.ClearCart(tx, sessionKey)
	})
}

type CustomerIn struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	GuestCount int    `json:"guestCount"`
	TableID    uint   `json:"tableId"`
	TableNo    string `json:"tableNo"`
}

func (s *CartService) SetCustomer(sessionKey string, in *CustomerIn) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return s.CartRepo.SetCustomer(tx, sessionKey, &entity.Cart{
			CustomerName:  strings.TrimSpace(in.Name),
			CustomerPhone: strings.TrimSpace(in.Phone),
			GuestCount:    in.GuestCount,
			TableID:       in.TableID,
			TableNo:       in.TableNo,
		})
	})
}
