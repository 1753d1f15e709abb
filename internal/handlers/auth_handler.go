package handlers

import (
	"net/http"

	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	*BaseHandler
	gate auth.SessionGate
}

func NewAuthHandler(base *BaseHandler, gate auth.SessionGate) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		gate:        gate,
	}
}

// RegisterRoutes: /auth не требует сессии и не ходит в базу
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth", h.Login)
	rg.GET("/auth", h.Status)
	rg.DELETE("/auth", h.Logout)
}

// Login godoc
// @Summary Вход в админку
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginRequest true "Email и пароль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /auth [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cookie, err := h.gate.Login(req.Email, req.Password)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "Failed admin login", "ip", c.ClientIP())
		h.HandleServiceError(c, err)
		return
	}

	http.SetCookie(c.Writer, cookie)
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// Status godoc
// @Summary Проверка админской сессии
// @Tags auth
// @Produce json
// @Success 200 {object} dto.AuthStatusResponse
// @Router /auth [get]
func (h *AuthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: h.gate.IsAuthenticated(c.Cookie),
	})
}

// Logout godoc
// @Summary Выход из админки
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /auth [delete]
func (h *AuthHandler) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, h.gate.Logout())
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
