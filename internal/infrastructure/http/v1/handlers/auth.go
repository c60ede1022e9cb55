package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"locafest/internal/domain/user"
	"locafest/internal/infrastructure/http/v1/dto"
)

// AuthHandler serves login and user administration.
type AuthHandler struct {
	*BaseHandler
	users *user.Service
}

func NewAuthHandler(base *BaseHandler, users *user.Service) *AuthHandler {
	return &AuthHandler{BaseHandler: base, users: users}
}

// Login issues a JWT for valid credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	token, u, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: *u})
}

// Register creates a user account. Admin only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindJSON(c, &req) {
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// List returns all user accounts. Admin only.
func (h *AuthHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}
