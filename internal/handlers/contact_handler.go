package handlers

import (
	"net/http"

	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	service services.ContactService
}

func NewContactHandler(base *BaseHandler, service services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler: base,
		service:     service,
	}
}

func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/contact", h.Send)
}

// Send godoc
// @Summary Отправить сообщение из формы обратной связи
// @Tags contact
// @Accept json
// @Produce json
// @Param message body dto.ContactRequest true "Сообщение"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) Send(c *gin.Context) {
	var req dto.ContactRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.Send(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
