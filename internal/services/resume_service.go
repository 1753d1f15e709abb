package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"portfolio_backend/internal/config"
	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/models"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// ResumeService управляет singleton-настройками резюме
type ResumeService interface {
	Get(ctx context.Context, db *gorm.DB) (*models.ResumeSettings, error)
	Upload(ctx context.Context, db *gorm.DB, req *dto.UploadResumeRequest) (*models.ResumeSettings, error)
	Reset(ctx context.Context, db *gorm.DB) (*models.ResumeSettings, error)
}

type resumeService struct {
	repo     repositories.SettingsRepository
	relay    FileRelay
	defaults config.ResumeDefaults
}

func NewResumeService(repo repositories.SettingsRepository, relay FileRelay, defaults config.ResumeDefaults) ResumeService {
	return &resumeService{
		repo:     repo,
		relay:    relay,
		defaults: defaults,
	}
}

func (s *resumeService) defaultSettings() models.ResumeSettings {
	return models.ResumeSettings{
		Key:         models.ResumeSettingsKey,
		Filename:    s.defaults.Filename,
		DisplayName: s.defaults.DisplayName,
		LastUpdated: models.Today(),
		FileURL:     s.defaults.FileURL,
	}
}

// Get возвращает настройки, создавая их со значениями по умолчанию при первом чтении
func (s *resumeService) Get(ctx context.Context, db *gorm.DB) (*models.ResumeSettings, error) {
	settings, err := s.repo.FirstOrCreateResume(db.WithContext(ctx), s.defaultSettings())
	if err != nil {
		return nil, apperrors.UpstreamError("database", fmt.Errorf("load resume settings: %w", err))
	}
	return settings, nil
}

func (s *resumeService) Upload(ctx context.Context, db *gorm.DB, req *dto.UploadResumeRequest) (*models.ResumeSettings, error) {
	if req.File == nil {
		return nil, apperrors.ValidationError("Resume file is required", map[string]string{
			"file": "This field is required",
		})
	}

	// Отклоненный файл не должен трогать настройки
	stored, err := s.relay.Upload(ctx, req.File, config.KindResume)
	if err != nil {
		return nil, err
	}

	current, err := s.Get(ctx, db)
	if err != nil {
		s.relay.Delete(ctx, stored.URL)
		return nil, err
	}

	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = "Resume"
	}

	next := &models.ResumeSettings{
		Filename:    stored.Filename,
		DisplayName: displayName,
		LastUpdated: models.Today(),
		FileURL:     stored.URL,
	}

	if err := s.repo.SaveResume(db.WithContext(ctx), next); err != nil {
		s.relay.Delete(ctx, stored.URL)
		return nil, apperrors.UpstreamError("database", fmt.Errorf("save resume settings: %w", err))
	}

	if current.FileURL != "" && current.FileURL != next.FileURL && current.FileURL != s.defaults.FileURL {
		s.relay.Delete(ctx, current.FileURL)
	}

	logger.CtxInfo(ctx, "resume uploaded", "filename", next.Filename)
	return next, nil
}

// Reset возвращает настройки по умолчанию и удаляет загруженный файл
func (s *resumeService) Reset(ctx context.Context, db *gorm.DB) (*models.ResumeSettings, error) {
	current, err := s.repo.FindResume(db.WithContext(ctx))
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, apperrors.UpstreamError("database", err)
	}

	defaults := s.defaultSettings()
	if err := s.repo.SaveResume(db.WithContext(ctx), &defaults); err != nil {
		return nil, apperrors.UpstreamError("database", fmt.Errorf("reset resume settings: %w", err))
	}

	if current != nil && current.FileURL != "" && current.FileURL != s.defaults.FileURL {
		s.relay.Delete(ctx, current.FileURL)
	}

	logger.CtxInfo(ctx, "resume settings reset")
	return &defaults, nil
}
