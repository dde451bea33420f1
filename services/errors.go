package services

import "errors"

var (
	// ErrInvalidItem rejects a malformed cart line (missing name, bad price).
	ErrInvalidItem = errors.New("invalid item")

	// ErrEmptyCart rejects checkout with zero lines. Hard precondition.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrMissingCustomer rejects checkout when the flow's policy requires
	// customer or table context that the cart does not carry.
	ErrMissingCustomer = errors.New("missing customer context")

	// ErrCheckoutInFlight rejects an overlapping checkout for the same
	// session (double-click guard).
	ErrCheckoutInFlight = errors.New("checkout already in flight")

	// ErrInvalidTransition rejects an order status change the state machine
	// does not allow, or one racing a concurrent transition.
	ErrInvalidTransition = errors.New("invalid status transition")
)
