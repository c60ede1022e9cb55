package dto

import "locafest/internal/domain/user"

// LoginRequest is the request body for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token.
type LoginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

// RegisterRequest is the request body for creating a user.
type RegisterRequest struct {
	Username string    `json:"username" binding:"required"`
	Password string    `json:"password" binding:"required"`
	Role     user.Role `json:"role"`
}
