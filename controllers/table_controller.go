package controllers

import (
	"posbackend/pkg/resp"
	"posbackend/repository"

	"github.com/gin-gonic/gin"
)

type TableController struct{ Repo *repository.TableRepository }

func NewTableController(r *repository.TableRepository) *TableController {
	return &TableController{Repo: r}
}

// GET /tables
func (h *TableController) List(c *gin.Context) {
	tables, err := h.Repo.List()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": tables})
}

// PATCH /tables/:id/status
func (h *TableController) UpdateStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid table id")
		return
	}
	var body struct {
		Status string `json:"status" binding:"required,oneof=Available Booked Occupied"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Repo.SetStatus(id, body.Status); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
