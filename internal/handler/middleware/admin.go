package middleware

import (
	"slices"

	"github.com/gin-gonic/gin"

	"aiptrack/backend/internal/model"
	"aiptrack/backend/pkg/response"
)

// AdminAuth requires the admin role in the token's roles claim.
// Must be used after JWTAuth middleware.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			response.Unauthorized(c, "missing authentication")
			c.Abort()
			return
		}

		if !slices.Contains(claims.Roles, string(model.RoleAdmin)) {
			response.Forbidden(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
