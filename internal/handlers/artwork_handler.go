package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ArtworkHandler struct {
	*BaseHandler
	service services.ArtworkService
}

func NewArtworkHandler(base *BaseHandler, service services.ArtworkService) *ArtworkHandler {
	return &ArtworkHandler{
		BaseHandler: base,
		service:     service,
	}
}

func (h *ArtworkHandler) RegisterRoutes(rg *gin.RouterGroup, db, admin gin.HandlerFunc) {
	rg.GET("/artworks", db, h.Get)
	rg.POST("/artworks", admin, db, h.Create)
	rg.PUT("/artworks", admin, db, h.Update)
	rg.DELETE("/artworks", admin, db, h.Delete)
}

// Get godoc
// @Summary Список работ или одна работа
// @Tags artworks
// @Produce json
// @Param id query int false "ID работы"
// @Param category query string false "Charcoal | Graphite | Painting | Scribble | All"
// @Success 200 {array} models.Artwork
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /artworks [get]
func (h *ArtworkHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	id, present, err := ParseQueryID(c, "Artwork")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if present {
		artwork, err := h.service.Get(ctx, db, id)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, artwork)
		return
	}

	artworks, err := h.service.ListByCategory(ctx, db, c.Query("category"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artworks)
}

// Create godoc
// @Summary Загрузить работу
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Название"
// @Param category formData string true "Категория"
// @Param file formData file true "Изображение (jpg, jpeg, png, webp, gif)"
// @Success 201 {object} models.Artwork
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {object} apperrors.ErrorResponse
// @Router /artworks [post]
func (h *ArtworkHandler) Create(c *gin.Context) {
	file, ok := h.FormFile(c)
	if !ok {
		return
	}

	req := &dto.CreateArtworkRequest{
		Title:    c.PostForm("title"),
		Category: c.PostForm("category"),
		File:     file,
	}

	artwork, err := h.service.Create(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artwork)
}

// Update godoc
// @Summary Изменить работу (файл необязателен)
// @Tags artworks
// @Accept multipart/form-data
// @Produce json
// @Param id formData int true "ID работы"
// @Param title formData string false "Название"
// @Param category formData string false "Категория"
// @Param file formData file false "Новое изображение"
// @Success 200 {object} models.Artwork
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /artworks [put]
func (h *ArtworkHandler) Update(c *gin.Context) {
	file, ok := h.FormFile(c)
	if !ok {
		return
	}

	req := &dto.UpdateArtworkRequest{
		Title:    FormString(c, "title"),
		Category: FormString(c, "category"),
		File:     file,
	}
	if raw := strings.TrimSpace(c.PostForm("id")); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid artwork ID"))
			return
		}
		req.ID = dto.ID(id)
	}

	artwork, err := h.service.Update(c.Request.Context(), h.GetDB(c), req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, artwork)
}

// Delete godoc
// @Summary Удалить работу вместе с файлами
// @Tags artworks
// @Produce json
// @Param id query int true "ID работы"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /artworks [delete]
func (h *ArtworkHandler) Delete(c *gin.Context) {
	id, err := RequireQueryID(c, "Artwork")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), h.GetDB(c), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
