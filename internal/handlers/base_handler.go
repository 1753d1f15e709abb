package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"
	"portfolio_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. DB из контекста
// ============================================================================

// GetDB извлекает *gorm.DB из gin.Context.
// Вызывается только в маршрутах за DBMiddleware.
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 3. Привязка тела запроса
// ============================================================================

// BindJSON только разбирает тело; правила полей проверяет сервис,
// чтобы у обоих адаптеров были одинаковые сообщения об ошибках.
func (h *BaseHandler) BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to bind JSON body", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	return true
}

// BindAndValidate_JSON - разбор и проверка тегов в одном шаге
func (h *BaseHandler) BindAndValidate_JSON(c *gin.Context, obj interface{}) bool {
	ctx := c.Request.Context()

	if !h.BindJSON(c, obj) {
		return false
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ValidationError(vErr.Error(), vErr.Errors))
		} else {
			logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.InternalError(err))
		}
		return false
	}
	return true
}

// ============================================================================
// 4. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		if appErr.HTTPCode < 500 {
			logger.CtxWarn(ctx, "Service error",
				"error", appErr.Message,
				"details", appErr.Details,
				"path", c.Request.URL.Path,
			)
		}
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// ============================================================================
// 5. Парсинг параметров
// ============================================================================

// ParseQueryID читает ?id=N. present=false, если параметра нет.
func ParseQueryID(c *gin.Context, label string) (id int, present bool, err error) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		return 0, false, nil
	}
	id, convErr := strconv.Atoi(raw)
	if convErr != nil || id <= 0 {
		return 0, true, apperrors.NewBadRequestError("Invalid " + strings.ToLower(label) + " ID")
	}
	return id, true, nil
}

// RequireQueryID - как ParseQueryID, но отсутствие id тоже ошибка
func RequireQueryID(c *gin.Context, label string) (int, error) {
	id, present, err := ParseQueryID(c, label)
	if err != nil {
		return 0, err
	}
	if !present {
		return 0, apperrors.ValidationError(label+" ID is required", nil)
	}
	return id, nil
}

// FormString - значение поля формы или nil, если поле не передано
func FormString(c *gin.Context, key string) *string {
	value, ok := c.GetPostForm(key)
	if !ok {
		return nil
	}
	return &value
}

// FormFile: отсутствие файла не ошибка, обязательность проверяет сервис
func (h *BaseHandler) FormFile(c *gin.Context) (*multipart.FileHeader, bool) {
	file, err := c.FormFile("file")
	if err == nil {
		return file, true
	}
	if errors.Is(err, http.ErrMissingFile) {
		return nil, true
	}
	h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid multipart body"))
	return nil, false
}
