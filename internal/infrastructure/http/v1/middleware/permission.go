// Package middleware provides HTTP middleware for the API.
package middleware

import (
	"github.com/gin-gonic/gin"

	"stockmark/internal/core/apperror"
	appcontext "stockmark/internal/core/context"
)

// RequireWrite rejects read-only roles on mutating routes.
func RequireWrite() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := appcontext.GetUser(c.Request.Context())
		if user == nil {
			_ = c.Error(apperror.NewUnauthorized("authentication required"))
			c.Abort()
			return
		}

		if !user.CanWrite() {
			_ = c.Error(
				apperror.NewForbidden("write access required").
					WithDetail("role", string(user.Role)),
			)
			c.Abort()
			return
		}

		c.Next()
	}
}
