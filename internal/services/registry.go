package services

import (
	"portfolio_backend/internal/config"
	"portfolio_backend/internal/email"
	"portfolio_backend/internal/imageprocessor"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/storage"
	"portfolio_backend/internal/validator"
)

// ServiceContainer содержит все сервисы приложения.
// Оба адаптера (gin и функции) работают через один и тот же контейнер.
type ServiceContainer struct {
	Skills   SkillService
	Projects ProjectService
	Blogs    BlogPostService
	Artworks ArtworkService
	Resume   ResumeService
	Contact  ContactService
	Relay    FileRelay
}

func NewServiceContainer(cfg *config.Config, store storage.Storage, mailer email.Provider, v *validator.Validator) *ServiceContainer {
	counters := repositories.NewCounterRepository()

	relay := NewFileRelay(
		store,
		cfg.UploadRules(),
		imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.ThumbnailWidth),
	)

	contactTo := cfg.Email.ContactTo
	if contactTo == "" {
		contactTo = cfg.Auth.AdminEmail
	}

	return &ServiceContainer{
		Skills: NewResourceService(
			SkillDefinition(),
			repositories.NewResourceRepository[models.Skill, *models.Skill]("skills", counters),
			v,
		),
		Projects: NewResourceService(
			ProjectDefinition(),
			repositories.NewResourceRepository[models.Project, *models.Project]("projects", counters),
			v,
		),
		Blogs: NewResourceService(
			BlogPostDefinition(),
			repositories.NewResourceRepository[models.BlogPost, *models.BlogPost]("blog_posts", counters),
			v,
		),
		Artworks: NewArtworkService(
			repositories.NewResourceRepository[models.Artwork, *models.Artwork]("artworks", counters),
			relay,
			v,
		),
		Resume:  NewResumeService(repositories.NewSettingsRepository(), relay, cfg.Resume),
		Contact: NewContactService(mailer, email.NewTemplateManager(), v, contactTo),
		Relay:   relay,
	}
}
