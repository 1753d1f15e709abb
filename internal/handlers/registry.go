package handlers

import (
	"portfolio_backend/internal/auth"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services"
	"portfolio_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	SkillHandler    *ResourceHandler[models.Skill, *models.Skill]
	ProjectHandler  *ResourceHandler[models.Project, *models.Project]
	BlogPostHandler *ResourceHandler[models.BlogPost, *models.BlogPost]
	ArtworkHandler  *ArtworkHandler
	SettingsHandler *SettingsHandler
	AuthHandler     *AuthHandler
	ContactHandler  *ContactHandler
	HealthHandler   *HealthHandler
}

func NewAppHandlers(svc *services.ServiceContainer, gate auth.SessionGate, db Pinger, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		SkillHandler:    NewSkillHandler(base, svc.Skills),
		ProjectHandler:  NewProjectHandler(base, svc.Projects),
		BlogPostHandler: NewBlogPostHandler(base, svc.Blogs),
		ArtworkHandler:  NewArtworkHandler(base, svc.Artworks),
		SettingsHandler: NewSettingsHandler(base, svc.Resume),
		AuthHandler:     NewAuthHandler(base, gate),
		ContactHandler:  NewContactHandler(base, svc.Contact),
		HealthHandler:   NewHealthHandler(db),
	}
}
