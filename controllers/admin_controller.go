package controllers

import (
	"strconv"
	"time"

	"posbackend/pkg/resp"
	"posbackend/remote"
	"posbackend/repository"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	Orders *repository.OrderRepository
	Remote *remote.Client
}

func NewAdminController(orders *repository.OrderRepository, rc *remote.Client) *AdminController {
	return &AdminController{Orders: orders, Remote: rc}
}

// GET /admin/dashboard?days=
func (h *AdminController) Dashboard(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "7"))
	if days <= 0 {
		days = 7
	}
	since := time.Now().AddDate(0, 0, -days)

	byStatus, err := h.Orders.CountByStatus()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	revenue, err := h.Orders.RevenueSince(since)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	top, err := h.Orders.TopItems(5)
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	resp.OK(c, gin.H{
		"ordersByStatus": byStatus,
		"revenue":        revenue,
		"topItems":       top,
		"sinceDays":      days,
		"upstreamState":  h.Remote.BreakerState(),
	})
}
