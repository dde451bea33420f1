package controllers

import (
	"errors"

	"posbackend/pkg/resp"
	"posbackend/services"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /carts/:sid
func (h *CartController) Get(c *gin.Context) {
	cart, totals, err := h.Svc.Get(c.Param("sid"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"cart": cart, "totals": totals})
}

// POST /carts/:sid/items
func (h *CartController) Add(c *gin.Context) {
	var req services.AddToCartIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Add(c.Param("sid"), &req); err != nil {
		if errors.Is(err, services.ErrInvalidItem) {
			resp.BadRequest(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"ok": true})
}

// PATCH /carts/:sid/items/qty
func (h *CartController) UpdateQty(c *gin.Context) {
	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
		Qty    int  `json:"qty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetQty(c.Param("sid"), body.ItemID, body.Qty); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// POST /carts/:sid/items/:itemId/increment
func (h *CartController) Increment(c *gin.Context) {
	h.bump(c, h.Svc.Increment)
}

// POST /carts/:sid/items/:itemId/decrement
func (h *CartController) Decrement(c *gin.Context) {
	h.bump(c, h.Svc.Decrement)
}

func (h *CartController) bump(c *gin.Context, fn func(string, uint) error) {
	itemID, ok := uintParam(c, "itemId")
	if !ok {
		resp.BadRequest(c, "invalid item id")
		return
	}
	if err := fn(c.Param("sid"), itemID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /carts/:sid/items
func (h *CartController) RemoveItem(c *gin.Context) {
	var body struct {
		ItemID uint `json:"itemId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.RemoveItem(c.Param("sid"), body.ItemID); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// DELETE /carts/:sid
func (h *CartController) Clear(c *gin.Context) {
	if err := h.Svc.Clear(c.Param("sid")); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}

// PUT /carts/:sid/customer
func (h *CartController) SetCustomer(c *gin.Context) {
	var req services.CustomerIn
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.SetCustomer(c.Param("sid"), &req); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
