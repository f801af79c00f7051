package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	jwtpkg "aiptrack/backend/pkg/jwt"
	"aiptrack/backend/pkg/response"
)

const ContextKeyUserClaims = "user_claims"

// RevocationChecker reports whether a token id was revoked at logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth accepts "Authorization: Bearer <token>". revoked may be nil.
func JWTAuth(jwtManager *jwtpkg.Manager, revoked RevocationChecker, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			response.Unauthorized(c, "invalid authorization format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if revoked != nil {
			isRevoked, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil {
				logger.Error("revocation lookup failed", zap.Error(err))
				response.InternalError(c, "internal server error")
				c.Abort()
				return
			}
			if isRevoked {
				response.Unauthorized(c, "token has been revoked")
				c.Abort()
				return
			}
		}

		c.Set(ContextKeyUserClaims, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by JWTAuth.
func ClaimsFromContext(c *gin.Context) (*jwtpkg.Claims, bool) {
	v, exists := c.Get(ContextKeyUserClaims)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*jwtpkg.Claims)
	return claims, ok
}
