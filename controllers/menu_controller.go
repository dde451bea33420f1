package controllers

import (
	"errors"

	"posbackend/entity"
	"posbackend/pkg/resp"
	"posbackend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct{ Svc *services.MenuService }

func NewMenuController(s *services.MenuService) *MenuController { return &MenuController{Svc: s} }

// GET /menu?category=
func (h *MenuController) List(c *gin.Context) {
	items, err := h.Svc.List(c.Query("category"))
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

// GET /menu/:id
func (h *MenuController) Detail(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	m, err := h.Svc.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			resp.NotFound(c, "not found")
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// POST /menu
func (h *MenuController) Create(c *gin.Context) {
	var m entity.MenuItem
	if err := c.ShouldBindJSON(&m); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if err := h.Svc.Create(&m); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, m)
}

// PATCH /menu/:id
func (h *MenuController) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	m, err := h.Svc.Get(id)
	if err != nil {
		resp.NotFound(c, "not found")
		return
	}
	if err := c.ShouldBindJSON(m); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	m.ID = id
	if err := h.Svc.Update(m); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, m)
}

// DELETE /menu/:id
func (h *MenuController) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		resp.BadRequest(c, "invalid menu id")
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"ok": true})
}
