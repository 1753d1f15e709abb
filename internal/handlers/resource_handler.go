package handlers

import (
	"net/http"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// ResourceHandler обслуживает JSON-ресурсы (skills, projects, blogs):
// GET (список или ?id), POST, PUT (id в теле), DELETE ?id.
type ResourceHandler[T any, P repositories.Record[T]] struct {
	*BaseHandler
	service   services.ResourceService[T, P]
	newCreate func() services.CreateInput[T]
	newUpdate func() services.UpdateInput
}

func NewResourceHandler[T any, P repositories.Record[T]](
	base *BaseHandler,
	service services.ResourceService[T, P],
	newCreate func() services.CreateInput[T],
	newUpdate func() services.UpdateInput,
) *ResourceHandler[T, P] {
	return &ResourceHandler[T, P]{
		BaseHandler: base,
		service:     service,
		newCreate:   newCreate,
		newUpdate:   newUpdate,
	}
}

func NewSkillHandler(base *BaseHandler, service services.SkillService) *ResourceHandler[models.Skill, *models.Skill] {
	return NewResourceHandler(base, service,
		func() services.CreateInput[models.Skill] { return &dto.CreateSkillRequest{} },
		func() services.UpdateInput { return &dto.UpdateSkillRequest{} },
	)
}

func NewProjectHandler(base *BaseHandler, service services.ProjectService) *ResourceHandler[models.Project, *models.Project] {
	return NewResourceHandler(base, service,
		func() services.CreateInput[models.Project] { return &dto.CreateProjectRequest{} },
		func() services.UpdateInput { return &dto.UpdateProjectRequest{} },
	)
}

func NewBlogPostHandler(base *BaseHandler, service services.BlogPostService) *ResourceHandler[models.BlogPost, *models.BlogPost] {
	return NewResourceHandler(base, service,
		func() services.CreateInput[models.BlogPost] { return &dto.CreateBlogPostRequest{} },
		func() services.UpdateInput { return &dto.UpdateBlogPostRequest{} },
	)
}

// RegisterRoutes вешает /<kind> на группу. Мутации сначала проходят admin,
// и только потом db, чтобы аноним не открывал подключение к базе.
func (h *ResourceHandler[T, P]) RegisterRoutes(rg *gin.RouterGroup, db, admin gin.HandlerFunc) {
	kind := "/" + h.service.Definition().Kind

	rg.GET(kind, db, h.Get)
	rg.POST(kind, admin, db, h.Create)
	rg.PUT(kind, admin, db, h.Update)
	rg.DELETE(kind, admin, db, h.Delete)
}

func (h *ResourceHandler[T, P]) Get(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	id, present, err := ParseQueryID(c, h.service.Definition().Label)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if present {
		item, err := h.service.Get(ctx, db, id)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
		return
	}

	items, err := h.service.List(ctx, db)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *ResourceHandler[T, P]) Create(c *gin.Context) {
	input := h.newCreate()
	if !h.BindJSON(c, input) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), h.GetDB(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *ResourceHandler[T, P]) Update(c *gin.Context) {
	input := h.newUpdate()
	if !h.BindJSON(c, input) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), h.GetDB(c), input)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *ResourceHandler[T, P]) Delete(c *gin.Context) {
	id, err := RequireQueryID(c, h.service.Definition().Label)
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
