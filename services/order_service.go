package services

import (
	"context"
	"strconv"
	"sync"
	"time"

	"posbackend/configs"
	"posbackend/entity"
	"posbackend/metrics"
	"posbackend/remote"
	"posbackend/repository"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Checkout outcomes. Every accepted checkout terminates in exactly one of
// these; rejected calls (empty cart, missing customer) leave the cart alone.
const (
	OutcomePlaced        = "Placed"
	OutcomePlacedLocally = "PlacedLocally"
)

const (
	FlowDineIn   = "dinein"
	FlowTakeaway = "takeaway"
)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	TableRepo *repository.TableRepository
	Remote    *remote.Client
	Cfg       *configs.Config

	// One checkout per session at a time. Nothing in the request path stops
	// a double-click from firing two submissions, so the guard is explicit.
	placing sync.Map
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	tableRepo *repository.TableRepository,
	rc *remote.Client,
	cfg *configs.Config,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, TableRepo: tableRepo, Remote: rc, Cfg: cfg}
}

type PlaceOrderReq struct {
	Flow          string `json:"flow" binding:"omitempty,oneof=dinein takeaway"`
	PaymentMethod string `json:"paymentMethod"`

	// Set from the authenticated session, not the request body.
	CashierID uint `json:"-"`
}

type PlaceOrderRes struct {
	Order   *entity.Order `json:"order"`
	Outcome string        `json:"outcome"`
	Warning string        `json:"warning,omitempty"`
}

// PlaceOrder materializes the session's cart into an immutable order and
// submits it upstream. On submission failure the order is kept locally with a
// generated id and the cart is still cleared: the customer is never blocked
// on a flaky network, the caller gets a warning to surface instead.
func (s *OrderService) PlaceOrder(ctx context.Context, sessionKey string, req *PlaceOrderReq) (*PlaceOrderRes, error) {
	if _, inFlight := s.placing.LoadOrStore(sessionKey, struct{}{}); inFlight {
		return nil, ErrCheckoutInFlight
	}
	defer s.placing.Delete(sessionKey)

	cart, err := s.CartRepo.GetCartWithItems(sessionKey)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}
	if err := s.checkPolicy(cart, req.Flow); err != nil {
		return nil, err
	}

	order := s.materialize(cart, req.PaymentMethod)
	order.CashierID = req.CashierID

	created, submitErr := s.Remote.SubmitOrder(ctx, buildPayload(order))
	warning := ""
	outcome := OutcomePlaced
	if submitErr == nil {
		order.OrderKey = created.ID
		order.Synced = true
	} else {
		order.OrderKey = "local-" + uuid.New().String()
		order.Synced = false
		outcome = OutcomePlacedLocally
		warning = "order saved on this terminal only; server sync failed"
		log.WithFields(log.Fields{
			"session": sessionKey,
			"error":   submitErr.Error(),
		}).Warn("remote submission failed, placing locally")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Repo.CreateOrder(tx, order); err != nil {
			return err
		}
		if order.PaymentMethod != "" {
			p := entity.Payment{
				OrderID: order.ID,
				Amount:  order.Total,
				Method:  order.PaymentMethod,
				Status:  entity.StatusPending,
			}
			if err := s.Repo.CreatePayment(tx, &p); err != nil {
				return err
			}
		}
		return s.CartRepo.ClearCart(tx, sessionKey)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues(outcomeLabel(outcome)).Inc()
	metrics.OrderAmount.Observe(order.Total)

	log.WithFields(log.Fields{
		"order_key": order.OrderKey,
		"outcome":   outcome,
		"total":     order.Total,
	}).Info("order placed")

	if cart.TableID != 0 {
		// Fire-and-forget: table occupancy must never roll back the order.
		go s.occupyTable(cart.TableID)
	}

	return &PlaceOrderRes{Order: order, Outcome: outcome, Warning: warning}, nil
}

// materialize snapshots the cart. The copies make later cart mutations
// invisible to the order.
func (s *OrderService) materialize(cart *entity.Cart, paymentMethod string) *entity.Order {
	totals := ComputeTotals(cart.Items, s.Cfg.TaxRate)

	items := make([]entity.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, entity.OrderItem{
			MenuItemID:     it.MenuItemID,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice,
			Qty:            it.Qty,
			Customizations: it.Customizations,
		})
	}

	return &entity.Order{
		Origin:        entity.OriginLocal,
		CustomerName:  cart.CustomerName,
		CustomerPhone: cart.CustomerPhone,
		GuestCount:    cart.GuestCount,
		TableID:       cart.TableID,
		TableNo:       cart.TableNo,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Status:        entity.StatusPending,
		PaymentMethod: paymentMethod,
		PlacedAt:      time.Now(),
		Items:         items,
	}
}

func (s *OrderService) checkPolicy(cart *entity.Cart, flow string) error {
	policy := s.Cfg.TakeawayPolicy
	if flow == "" || flow == FlowDineIn {
		policy = s.Cfg.DineInPolicy
	}
	if policy.RequireCustomerName && cart.CustomerName == "" {
		return ErrMissingCustomer
	}
	if policy.RequireGuestCount && cart.GuestCount <= 0 {
		return ErrMissingCustomer
	}
	if policy.RequireTable && cart.TableID == 0 {
		return ErrMissingCustomer
	}
	return nil
}

func buildPayload(o *entity.Order) *remote.OrderPayload {
	items := make([]remote.OrderItemPayload, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, remote.OrderItemPayload{
			MenuItemID:     it.MenuItemID,
			Name:           it.Name,
			UnitPrice:      it.UnitPrice,
			Qty:            it.Qty,
			Customizations: it.Customizations,
		})
	}
	return &remote.OrderPayload{
		CustomerDetails: remote.CustomerPayload{
			Name:       o.CustomerName,
			Phone:      o.CustomerPhone,
			GuestCount: o.GuestCount,
		},
		Items: items,
		Bills: remote.BillsPayload{
			Subtotal:     o.Subtotal,
			Tax:          o.Tax,
			TotalWithTax: o.Total,
		},
		TableNo:       o.TableNo,
		PaymentMethod: o.PaymentMethod,
		Status:        o.Status,
	}
}

func (s *OrderService) occupyTable(tableID uint) {
	ctx, cancel := context.WithTimeout(context.Background(), s.Cfg.RemoteTimeout)
	defer cancel()

	if err := s.TableRepo.SetStatus(tableID, entity.TableOccupied); err != nil {
		log.WithField("table_id", tableID).Warnf("local table update failed: %v", err)
	}

	t, err := s.TableRepo.FindByID(tableID)
	if err != nil {
		return
	}
	remoteID := t.RemoteID
	if remoteID == "" {
		remoteID = strconv.FormatUint(uint64(t.ID), 10)
	}
	if err := s.Remote.UpdateTable(ctx, remoteID, entity.TableBooked); err != nil {
		log.WithField("table_id", tableID).Warnf("remote table update failed: %v", err)
	}
}

func outcomeLabel(outcome string) string {
	if outcome == OutcomePlacedLocally {
		return "placed_locally"
	}
	return "placed"
}

// ----- List & Detail -----

func (s *OrderService) List(status string, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListOrders(status, limit)
}

func (s *OrderService) Detail(orderID uint) (*entity.Order, error) {
	return s.Repo.GetOrder(orderID)
}
