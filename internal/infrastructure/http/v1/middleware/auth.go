package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"locafest/internal/core/apperror"
	appctx "locafest/internal/core/context"
	"locafest/internal/domain/user"
)

// TokenValidator validates a bearer token into claims.
type TokenValidator interface {
	Validate(tokenString string) (*user.Claims, error)
}

// Auth middleware validates JWT tokens and populates user context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		claims, err := validator.Validate(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		ctx := appctx.WithUser(c.Request.Context(), &appctx.UserContext{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		})
		c.Request = c.Request.WithContext(ctx)

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireRole allows only users holding the given role.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := appctx.GetUser(c.Request.Context())
		if u == nil {
			abortUnauthorized(c, "authentication required")
			return
		}
		if u.Role != role {
			_ = c.Error(apperror.NewForbidden("insufficient role"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
