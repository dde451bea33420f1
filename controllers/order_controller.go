package controllers

import (
	"errors"
	"strconv"

	"posbackend/entity"
	"posbackend/pkg/resp"
	"posbackend/services"
	"posbackend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController {
	return &OrderController{Svc: s}
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// POST /carts/:sid/checkout
func (h *OrderController) Checkout(c *gin.Context) {
	var req services.PlaceOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	req.CashierID = utils.CurrentUserID(c)

	out, err := h.Svc.PlaceOrder(c.Request.Context(), c.Param("sid"), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrMissingCustomer):
			resp.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrCheckoutInFlight):
			resp.Conflict(c, err.Error())
		default:
			resp.ServerError(c, err)
		}
		return
	}
	resp.Created(c, out)
}

// GET /orders?status=&limit=
func (h *OrderController) List(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.Svc.List(status, limit)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	o, err := h.Svc.Detail(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, o)
}

// PATCH /orders/:id/status
func (h *OrderController) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if !entity.ValidStatus(body.Status) {
		resp.BadRequest(c, "unknown status")
		return
	}
	if err := h.Svc.Transition(id, body.Status); err != nil {
		if errors.Is(err, services.ErrInvalidTransition) {
			resp.Conflict(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// PATCH /orders/:id/payment
func (h *OrderController) ConfirmPayment(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid order id")
		return
	}
	var body struct {
		Method    string `json:"method" binding:"required"`
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.ConfirmPayment(id, body.Method, body.Reference); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
