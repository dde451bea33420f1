package repository

import (
	"errors"

	"posbackend/entity"

	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetCartWithItems returns the session's cart, or an empty unsaved cart when
// none exists so the terminal can always render something.
func (r *CartRepository) GetCartWithItems(sessionKey string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("session_key = ?", sessionKey).
		Preload("Items").
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &entity.Cart{SessionKey: sessionKey}, nil
	}
	return &c, err
}

func (r *CartRepository) GetOrCreateCart(sessionKey string) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("session_key = ?", sessionKey).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{SessionKey: sessionKey}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	return &c, err
}

// UpsertItem merges on line identity (menu_item_id, customizations): the same
// dish with a different customization stays a separate line.
func (r *CartRepository) UpsertItem(tx *gorm.DB, cartID uint, row *entity.CartItem) error {
	var exist entity.CartItem
	err := tx.Where("cart_id = ? AND menu_item_id = ? AND customizations = ?",
		cartID, row.MenuItemID, row.Customizations).
		First(&exist).Error
	if err == nil {
		exist.Qty += row.Qty
		return tx.Save(&exist).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	row.CartID = cartID
	return tx.Create(row).Error
}

// SetQty sets the quantity exactly; zero or below removes the line.
func (r *CartRepository) SetQty(tx *gorm.DB, sessionKey string, itemID uint, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(tx, sessionKey, itemID)
	}
	return tx.Exec(`
		UPDATE cart_items
		   SET qty = ?
		 WHERE id = ?
		   AND cart_id IN (SELECT id FROM carts WHERE session_key = ?)
	`, qty, itemID, sessionKey).Error
}

// RemoveItem is idempotent: removing an absent line is not an error.
func (r *CartRepository) RemoveItem(tx *gorm.DB, sessionKey string, itemID uint) error {
	return tx.
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE session_key = ?)", itemID, sessionKey).
		Delete(&entity.CartItem{}).Error
}

func (r *CartRepository) ClearCart(tx *gorm.DB, sessionKey string) error {
	var c entity.Cart
	if err := tx.Where("session_key = ?", sessionKey).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return tx.Where("cart_id = ?", c.ID).Delete(&entity.CartItem{}).Error
}

// SetCustomer stores the customer/table context beside the cart lines.
func (r *CartRepository) SetCustomer(tx *gorm.DB, sessionKey string, c *entity.Cart) error {
	cur, err := r.GetOrCreateCart(sessionKey)
	if err != nil {
		return err
	}
	return tx.Model(&entity.Cart{}).Where("id = ?", cur.ID).Updates(map[string]any{
		"customer_name":  c.CustomerName,
		"customer_phone": c.CustomerPhone,
		"guest_count":    c.GuestCount,
		"table_id":       c.TableID,
		"table_no":       c.TableNo,
	}).Error
}
