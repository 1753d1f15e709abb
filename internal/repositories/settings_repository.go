package repositories

import (
	"errors"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	FindResume(db *gorm.DB) (*models.ResumeSettings, error)
	FirstOrCreateResume(db *gorm.DB, defaults models.ResumeSettings) (*models.ResumeSettings, error)
	SaveResume(db *gorm.DB, settings *models.ResumeSettings) error
}

type SettingsRepositoryImpl struct{}

func NewSettingsRepository() SettingsRepository {
	return &SettingsRepositoryImpl{}
}

func (r *SettingsRepositoryImpl) FindResume(db *gorm.DB) (*models.ResumeSettings, error) {
	var settings models.ResumeSettings
	err := db.Where("setting_key = ?", models.ResumeSettingsKey).Take(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) FirstOrCreateResume(db *gorm.DB, defaults models.ResumeSettings) (*models.ResumeSettings, error) {
	defaults.Key = models.ResumeSettingsKey

	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error
	if err != nil {
		return nil, err
	}
	return r.FindResume(db)
}

// SaveResume - upsert единственной строки настроек
func (r *SettingsRepositoryImpl) SaveResume(db *gorm.DB, settings *models.ResumeSettings) error {
	settings.Key = models.ResumeSettingsKey
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		UpdateAll: true,
	}).Create(settings).Error
}
