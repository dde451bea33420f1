package controllers

import (
	"errors"

	"posbackend/pkg/resp"
	"posbackend/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := h.Svc.Login(body.Email, body.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			resp.Unauthorized(c, err.Error())
			return
		}
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, out)
}
