package handlers

import (
	"net/http"

	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// SettingsHandler - настройки резюме (единственная запись)
type SettingsHandler struct {
	*BaseHandler
	service services.ResumeService
}

func NewSettingsHandler(base *BaseHandler, service services.ResumeService) *SettingsHandler {
	return &SettingsHandler{
		BaseHandler: base,
		service:     service,
	}
}

func (h *SettingsHandler) RegisterRoutes(rg *gin.RouterGroup, db, admin gin.HandlerFunc) {
	settings := rg.Group("/settings")
	{
		settings.GET("/resume", db, h.GetResume)
		settings.POST("/resume", admin, db, h.UploadResume)
		settings.DELETE("/resume", admin, db, h.ResetResume)
	}
}

// GetResume godoc
// @Summary Текущие настройки резюме
// @Tags settings
// @Produce json
// @Success 200 {object} models.ResumeSettings
// @Router /settings/resume [get]
func (h *SettingsHandler) GetResume(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UploadResume godoc
// @Summary Загрузить новое резюме (PDF до 5 МБ)
// @Tags settings
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF"
// @Param displayName formData string false "Отображаемое имя"
// @Success 201 {object} models.ResumeSettings
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /settings/resume [post]
func (h *SettingsHandler) UploadResume(c *gin.Context) {
	file, ok := h.FormFile(c)
	if !ok {
		return
	}

	req := &dto.UploadResumeRequest{
		DisplayName: c.PostForm("displayName"),
		File:        file,
	}

	settings, err := h.service.Upload(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, settings)
}

// ResetResume godoc
// @Summary Сбросить резюме к значениям по умолчанию
// @Tags settings
// @Produce json
// @Success 200 {object} models.ResumeSettings
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /settings/resume [delete]
func (h *SettingsHandler) ResetResume(c *gin.Context) {
	settings, err := h.service.Reset(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
