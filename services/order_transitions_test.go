package services

import (
	"context"
	"errors"
	"testing"

	"posbackend/entity"
)

func placedOrder(t *testing.T, svc *OrderService, cartSvc *CartService, session string) *entity.Order {
	t.Helper()
	fillCart(t, cartSvc, session)
	res, err := svc.PlaceOrder(context.Background(), session, &PlaceOrderReq{Flow: FlowTakeaway})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	return res.Order
}

func TestTransitionHappyPath(t *testing.T) {
	db := testDB(t)
	svc := newOrderService(t, db, okRemote(t).URL)
	o := placedOrder(t, svc, newCartService(t, db), "s1")

	for _, to := range []string{entity.StatusInProgress, entity.StatusReady, entity.StatusCompleted} {
		if err := svc.Transition(o.ID, to); err != nil {
			t.Fatalf("transition to %s: %v", to, err)
		}
	}

	got, _ := svc.Detail(o.ID)
	if got.Status != entity.StatusCompleted {
		t.Fatalf("want Completed, got %s", got.Status)
	}
}

func TestTransitionRejectsSkips(t *testing.T) {
	db := testDB(t)
	svc := newOrderService(t, db, okRemote(t).URL)
	o := placedOrder(t, svc, newCartService(t, db), "s1")

	cases := []struct {
		name string
		to   string
	}{
		{"pending straight to completed", entity.StatusCompleted},
		{"pending straight to ready", entity.StatusReady},
		{"back to pending", entity.StatusPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.Transition(o.ID, tc.to); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("want ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestCancelFromAnyNonTerminalState(t *testing.T) {
	db := testDB(t)
	svc := newOrderService(t, db, okRemote(t).URL)
	cartSvc := newCartService(t, db)

	cases := []struct {
		name    string
		session string
		advance []string
	}{
		{"pending", "s1", nil},
		{"in progress", "s2", []string{entity.StatusInProgress}},
		{"ready", "s3", []string{entity.StatusInProgress, entity.StatusReady}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := placedOrder(t, svc, cartSvc, tc.session)
			for _, to := range tc.advance {
				if err := svc.Transition(o.ID, to); err != nil {
					t.Fatalf("advance to %s: %v", to, err)
				}
			}
			if err := svc.Transition(o.ID, entity.StatusCancelled); err != nil {
				t.Fatalf("cancel from %s: %v", tc.name, err)
			}
		})
	}

	c := placedOrder(t, svc, cartSvc, "s4")
	for _, to := range []string{entity.StatusInProgress, entity.StatusReady, entity.StatusCompleted} {
		if err := svc.Transition(c.ID, to); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	if err := svc.Transition(c.ID, entity.StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("completed order must not cancel, got %v", err)
	}
}

func TestConfirmPayment(t *testing.T) {
	db := testDB(t)
	svc := newOrderService(t, db, okRemote(t).URL)
	o := placedOrder(t, svc, newCartService(t, db), "s1")

	if err := svc.ConfirmPayment(o.ID, "Card", "txn-9f3"); err != nil {
		t.Fatalf("confirm payment: %v", err)
	}
	got, _ := svc.Detail(o.ID)
	if got.PaymentMethod != "Card" || got.PaymentReference != "txn-9f3" {
		t.Fatalf("payment fields not recorded: %+v", got)
	}
}
