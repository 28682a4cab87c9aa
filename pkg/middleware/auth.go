package middleware

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/soelshaikh/feedback-portal/backend/pkg/apperrors"
)

// ClaimsKey is the gin context key holding the verified token claims.
const ClaimsKey = "claims"

// Token is minimal interface for a verified token that can expose claims
type Token interface {
	Claims(v interface{}) error
}

// Verifier is the minimal interface the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (Token, error)
}

// AuthMiddleware verifies Bearer tokens using the provided verifier. Failures
// are pushed as AuthError and rendered by ErrorHandler.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			abortUnauthorized(c, "missing Authorization header", "")
			return
		}
		// Expect 'Bearer <token>'
		var token string
		if n, _ := fmt.Sscanf(auth, "Bearer %s", &token); n != 1 {
			abortUnauthorized(c, "invalid Authorization header", "")
			return
		}

		verified, err := ver.Verify(c.Request.Context(), token)
		if err != nil {
			abortUnauthorized(c, "invalid token", err.Error())
			return
		}

		var claims map[string]interface{}
		if err := verified.Claims(&claims); err != nil {
			abortUnauthorized(c, "failed to parse claims", "")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg, detail string) {
	e := apperrors.Unauthorized(msg)
	e.Detail = detail
	_ = c.Error(e)
	c.Abort()
}

// subjectKey returns "sub:<subject>" for authenticated requests, "" otherwise.
func subjectKey(c *gin.Context) string {
	if v, ok := c.Get(ClaimsKey); ok {
		if cm, ok2 := v.(map[string]interface{}); ok2 {
			if sub, ok3 := cm["sub"].(string); ok3 && sub != "" {
				return "sub:" + sub
			}
		}
	}
	return ""
}

func clientKey(c *gin.Context) string {
	if k := subjectKey(c); k != "" {
		return k
	}
	ip := c.ClientIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}
