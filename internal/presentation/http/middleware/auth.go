package middleware

import (
	"strings"

	"github.com/bukusaku/bukusaku-api/internal/presentation/http/dto/response"
	"github.com/bukusaku/bukusaku-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// sessionKey must match handler.SessionKey.
const sessionKey = "session"

// SessionValidator resolves a bearer token to its session.
type SessionValidator interface {
	ValidateToken(token string) (*utils.SessionClaims, error)
}

// AuthMiddleware creates a session authentication middleware
func AuthMiddleware(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := sessions.ValidateToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(sessionKey, claims)
		c.Next()
	}
}

func sessionScope(c *gin.Context) string {
	v, ok := c.Get(sessionKey)
	if !ok {
		return ""
	}
	claims, ok := v.(*utils.SessionClaims)
	if !ok {
		return ""
	}
	return claims.SessionID.String()
}
