package services

import (
	"context"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ArtworkService - ресурс с изображением: запись хранит только URL файла из relay
type ArtworkService interface {
	List(ctx context.Context, db *gorm.DB) ([]models.Artwork, error)
	ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]models.Artwork, error)
	Get(ctx context.Context, db *gorm.DB, id int) (*models.Artwork, error)
	Create(ctx context.Context, db *gorm.DB, req *dto.CreateArtworkRequest) (*models.Artwork, error)
	Update(ctx context.Context, db *gorm.DB, req *dto.UpdateArtworkRequest) (*models.Artwork, error)
	Delete(ctx context.Context, db *gorm.DB, id int) error
}

type artworkService struct {
	resources ResourceService[models.Artwork, *models.Artwork]
	relay     FileRelay
}

func NewArtworkService(repo repositories.ResourceRepository[models.Artwork, *models.Artwork], relay FileRelay, v *validator.Validator) ArtworkService {
	def := ArtworkDefinition()
	def.AfterDelete = func(ctx context.Context, artwork *models.Artwork) {
		relay.Delete(ctx, artwork.ImageURL, artwork.ThumbnailURL)
	}

	return &artworkService{
		resources: NewResourceService(def, repo, v),
		relay:     relay,
	}
}

func (s *artworkService) List(ctx context.Context, db *gorm.DB) ([]models.Artwork, error) {
	return s.resources.List(ctx, db)
}

// ListByCategory: пустая категория и "All" означают все работы,
// неизвестная категория дает пустой список
func (s *artworkService) ListByCategory(ctx context.Context, db *gorm.DB, category string) ([]models.Artwork, error) {
	if category == "" || models.ArtworkCategory(category) == models.CategoryAll {
		return s.resources.List(ctx, db)
	}
	return s.resources.ListBy(ctx, db, "category", category)
}

func (s *artworkService) Get(ctx context.Context, db *gorm.DB, id int) (*models.Artwork, error) {
	return s.resources.Get(ctx, db, id)
}

func (s *artworkService) Create(ctx context.Context, db *gorm.DB, req *dto.CreateArtworkRequest) (*models.Artwork, error) {
	if err := s.resources.Validate(req); err != nil {
		return nil, err
	}
	if req.File == nil {
		return nil, apperrors.ValidationError(s.resources.Definition().RequiredMessage, map[string]string{
			"file": "This field is required",
		})
	}

	stored, err := s.relay.Upload(ctx, req.File, config.KindArtwork)
	if err != nil {
		return nil, err
	}

	artwork := req.ToModel()
	artwork.Filename = stored.Filename
	artwork.ImageURL = stored.URL
	artwork.ThumbnailURL = stored.ThumbnailURL

	created, err := s.resources.Insert(ctx, db, artwork)
	if err != nil {
		// Запись не сохранилась: убираем уже загруженный файл
		s.relay.Delete(ctx, stored.URL, stored.ThumbnailURL)
		return nil, err
	}
	return created, nil
}

// Update: новый файл загружается до сохранения записи, старый удаляется после
func (s *artworkService) Update(ctx context.Context, db *gorm.DB, req *dto.UpdateArtworkRequest) (*models.Artwork, error) {
	id := req.TargetID()
	if id <= 0 {
		return nil, apperrors.ValidationError("Artwork ID is required", nil)
	}
	if err := s.resources.Validate(req); err != nil {
		return nil, err
	}

	existing, err := s.resources.Get(ctx, db, id)
	if err != nil {
		return nil, err
	}

	columns := req.Columns()

	var stored *dto.StoredFile
	if req.File != nil {
		stored, err = s.relay.Upload(ctx, req.File, config.KindArtwork)
		if err != nil {
			return nil, err
		}
		columns["filename"] = stored.Filename
		columns["image_url"] = stored.URL
		columns["thumbnail_url"] = stored.ThumbnailURL
	}

	updated, err := s.resources.Patch(ctx, db, id, columns)
	if err != nil {
		if stored != nil {
			s.relay.Delete(ctx, stored.URL, stored.ThumbnailURL)
		}
		return nil, err
	}

	if stored != nil {
		logger.CtxInfo(ctx, "artwork image replaced", "id", id, "old", existing.ImageURL, "new", stored.URL)
		s.relay.Delete(ctx, existing.ImageURL, existing.ThumbnailURL)
	}
	return updated, nil
}

func (s *artworkService) Delete(ctx context.Context, db *gorm.DB, id int) error {
	return s.resources.Delete(ctx, db, id)
}
