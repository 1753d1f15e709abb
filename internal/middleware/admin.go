package middleware

import (
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/metrics"
	"portfolio_backend/pkg/apperrors"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// RequireAdmin пропускает запрос только с админской сессией.
// Проверка идет до разбора тела, поэтому без cookie ответ всегда 401.
func RequireAdmin(gate auth.SessionGate) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok := gate.IsAuthenticated(c.Cookie)
		metrics.RecordSessionCheck(ok)

		if !ok {
			logger.CtxWarn(c.Request.Context(), "Unauthorized admin request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"ip", c.ClientIP(),
			)
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			return
		}

		ctx := logger.WithSession(c.Request.Context(), "admin")
		c.Request = c.Request.WithContext(ctx)
		c.Set(string(contextkeys.AdminContextKey), true)
		c.Next()
	}
}

// IsAdmin - запрос прошел RequireAdmin
func IsAdmin(c *gin.Context) bool {
	return c.GetBool(string(contextkeys.AdminContextKey))
}
