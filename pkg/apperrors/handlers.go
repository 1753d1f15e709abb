package apperrors

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке.
// Поле "error" - строка, как ожидает фронтенд.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code"`
	Details interface{} `json:"details,omitempty"`
}

// Resolve превращает любую ошибку в HTTP-статус и тело ответа.
// Используется и gin-хэндлерами, и function-адаптером.
func Resolve(err error) (int, ErrorResponse) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= http.StatusInternalServerError {
		slog.Error("server error", "code", appErr.Code, "domain", appErr.Domain, "error", appErr.Unwrap())
		return appErr.HTTPCode, ErrorResponse{Error: "Internal server error", Code: appErr.Code}
	}

	return appErr.HTTPCode, ErrorResponse{
		Error:   appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	status, body := Resolve(err)
	c.AbortWithStatusJSON(status, body)
}
