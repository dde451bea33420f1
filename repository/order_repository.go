package repository

import (
	"errors"
	"time"

	"posbackend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByOrderKey(key string) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Preload("Items").Where("order_key = ?", key).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

type OrderSummary struct {
	ID           uint      `json:"id"`
	OrderKey     string    `json:"orderKey"`
	Origin       string    `json:"origin"`
	Synced       bool      `json:"synced"`
	CustomerName string    `json:"customerName"`
	TableNo      string    `json:"tableNo"`
	Total        float64   `json:"total"`
	Status       string    `json:"status"`
	PlacedAt     time.Time `json:"placedAt"`
}

func (r *OrderRepository) ListOrders(status string, limit int) ([]OrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []OrderSummary
	q := r.DB.Model(&entity.Order{}).
		Select("id, order_key, origin, synced, customer_name, table_no, total, status, placed_at")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("id DESC").Limit(limit).Scan(&out).Error
	return out, err
}

// UpdateStatusGuard flips status only from the expected current value, so a
// concurrent transition or a stale terminal loses cleanly.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// MarkSynced swaps a fallback local key for the server-issued one once a
// deferred submission lands. Origin stays local; the order was placed here.
func (r *OrderRepository) MarkSynced(tx *gorm.DB, orderID uint, remoteKey string) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"order_key": remoteKey,
		"synced":    true,
	}).Error
}

// ListUnsynced returns locally placed orders that never reached the server,
// oldest first, items included so they can be resubmitted as-is.
func (r *OrderRepository) ListUnsynced(limit int) ([]entity.Order, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []entity.Order
	err := r.DB.Preload("Items").
		Where("origin = ? AND synced = ?", entity.OriginLocal, false).
		Order("id").Limit(limit).
		Find(&out).Error
	return out, err
}

// UpsertRemote merges a normalized upstream record into the local store.
// Last write wins by timestamp: a strictly older server snapshot never
// overwrites newer local state.
func (r *OrderRepository) UpsertRemote(o *entity.Order, serverSeenAt time.Time) (bool, error) {
	var cur entity.Order
	err := r.DB.Where("order_key = ?", o.OrderKey).First(&cur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, r.DB.Create(o).Error
	}
	if err != nil {
		return false, err
	}
	if cur.UpdatedAt.After(serverSeenAt) {
		return false, nil
	}
	// Snapshot fields are frozen; only status and payment confirmation move.
	return true, r.DB.Model(&cur).Updates(map[string]any{
		"status":            o.Status,
		"payment_method":    o.PaymentMethod,
		"payment_reference": o.PaymentReference,
		"synced":            true,
	}).Error
}

// ---------------- Payments ----------------

func (r *OrderRepository) CreatePayment(tx *gorm.DB, p *entity.Payment) error {
	return tx.Create(p).Error
}

func (r *OrderRepository) SetPayment(tx *gorm.DB, orderID uint, method, reference string) error {
	return tx.Model(&entity.Order{}).Where("id = ?", orderID).Updates(map[string]any{
		"payment_method":    method,
		"payment_reference": reference,
	}).Error
}

// ---------------- Dashboard aggregates ----------------

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

func (r *OrderRepository) CountByStatus() ([]StatusCount, error) {
	var out []StatusCount
	err := r.DB.Model(&entity.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) RevenueSince(t time.Time) (float64, error) {
	var row struct{ Revenue float64 }
	err := r.DB.Model(&entity.Order{}).
		Select("COALESCE(SUM(total), 0) AS revenue").
		Where("status = ? AND placed_at >= ?", entity.StatusCompleted, t).
		Scan(&row).Error
	return row.Revenue, err
}

type TopItem struct {
	Name string `json:"name"`
	Qty  int64  `json:"qty"`
}

func (r *OrderRepository) TopItems(limit int) ([]TopItem, error) {
	if limit <= 0 {
		limit = 5
	}
	var out []TopItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("name, SUM(qty) AS qty").
		Group("name").
		Order("qty DESC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
