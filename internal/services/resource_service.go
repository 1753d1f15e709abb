package services

import (
	"context"
	"errors"
	"fmt"

	"portfolio_backend/internal/logger"
	"portfolio_backend/internal/repositories"
	"portfolio_backend/internal/validator"
	"portfolio_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// CreateInput - DTO создания, собирающий модель
type CreateInput[T any] interface {
	ToModel() *T
}

// UpdateInput - DTO частичного обновления: только переданные поля
type UpdateInput interface {
	TargetID() int
	Columns() map[string]interface{}
}

// Definition описывает один вид ресурса
type Definition[T any] struct {
	Kind            string // сегмент URL: skills, projects, blogs, artworks
	Label           string // для сообщений: "Skill not found"
	Collection      string // таблица
	RequiredMessage string // сообщение, если не заполнены обязательные поля

	// BeforeCreate проставляет серверные поля (даты)
	BeforeCreate func(item *T)
	// AfterDelete - best-effort очистка (удаление файлов); ошибки только логируются
	AfterDelete func(ctx context.Context, item *T)
}

type ResourceService[T any, P repositories.Record[T]] interface {
	Definition() Definition[T]
	List(ctx context.Context, db *gorm.DB) ([]T, error)
	ListBy(ctx context.Context, db *gorm.DB, column string, value interface{}) ([]T, error)
	Get(ctx context.Context, db *gorm.DB, id int) (P, error)
	Create(ctx context.Context, db *gorm.DB, input CreateInput[T]) (P, error)
	Update(ctx context.Context, db *gorm.DB, input UpdateInput) (P, error)
	Delete(ctx context.Context, db *gorm.DB, id int) error

	// Validate проверяет DTO по тегам и превращает ошибки в ValidationError.
	// Для DTO создания пропуск обязательного поля дает RequiredMessage.
	Validate(input interface{}) error
	// Insert сохраняет уже проверенную модель (выделяет id, вызывает BeforeCreate)
	Insert(ctx context.Context, db *gorm.DB, item P) (P, error)
	// Patch обновляет колонки существующей записи без валидации DTO
	Patch(ctx context.Context, db *gorm.DB, id int, columns map[string]interface{}) (P, error)
}

type resourceService[T any, P repositories.Record[T]] struct {
	def       Definition[T]
	repo      repositories.ResourceRepository[T, P]
	validator *validator.Validator
}

func NewResourceService[T any, P repositories.Record[T]](
	def Definition[T],
	repo repositories.ResourceRepository[T, P],
	v *validator.Validator,
) ResourceService[T, P] {
	return &resourceService[T, P]{
		def:       def,
		repo:      repo,
		validator: v,
	}
}

func (s *resourceService[T, P]) Definition() Definition[T] {
	return s.def
}

func (s *resourceService[T, P]) List(ctx context.Context, db *gorm.DB) ([]T, error) {
	items, err := s.repo.FindAll(db.WithContext(ctx))
	if err != nil {
		return nil, apperrors.UpstreamError("database", fmt.Errorf("list %s: %w", s.def.Collection, err))
	}
	return items, nil
}

func (s *resourceService[T, P]) ListBy(ctx context.Context, db *gorm.DB, column string, value interface{}) ([]T, error) {
	items, err := s.repo.FindWhere(db.WithContext(ctx), column, value)
	if err != nil {
		return nil, apperrors.UpstreamError("database", fmt.Errorf("list %s by %s: %w", s.def.Collection, column, err))
	}
	return items, nil
}

func (s *resourceService[T, P]) Get(ctx context.Context, db *gorm.DB, id int) (P, error) {
	item, err := s.repo.FindByID(db.WithContext(ctx), id)
	if err != nil {
		return nil, s.handleRepoError(err)
	}
	return item, nil
}

func (s *resourceService[T, P]) Create(ctx context.Context, db *gorm.DB, input CreateInput[T]) (P, error) {
	if err := s.Validate(input); err != nil {
		return nil, err
	}
	return s.Insert(ctx, db, P(input.ToModel()))
}

func (s *resourceService[T, P]) Insert(ctx context.Context, db *gorm.DB, item P) (P, error) {
	if s.def.BeforeCreate != nil {
		s.def.BeforeCreate((*T)(item))
	}

	if err := s.repo.Create(db.WithContext(ctx), item); err != nil {
		return nil, apperrors.UpstreamError("database", fmt.Errorf("create %s: %w", s.def.Collection, err))
	}

	logger.CtxInfo(ctx, "resource created", "kind", s.def.Kind, "id", item.GetID())
	return item, nil
}

func (s *resourceService[T, P]) Update(ctx context.Context, db *gorm.DB, input UpdateInput) (P, error) {
	id := input.TargetID()
	if id <= 0 {
		return nil, s.idRequired()
	}

	if err := s.Validate(input); err != nil {
		return nil, err
	}

	return s.Patch(ctx, db, id, input.Columns())
}

func (s *resourceService[T, P]) Patch(ctx context.Context, db *gorm.DB, id int, columns map[string]interface{}) (P, error) {
	db = db.WithContext(ctx)

	if _, err := s.repo.FindByID(db, id); err != nil {
		return nil, s.handleRepoError(err)
	}

	if err := s.repo.Update(db, id, columns); err != nil {
		return nil, apperrors.UpstreamError("database", fmt.Errorf("update %s %d: %w", s.def.Collection, id, err))
	}

	updated, err := s.repo.FindByID(db, id)
	if err != nil {
		return nil, s.handleRepoError(err)
	}

	logger.CtxInfo(ctx, "resource updated", "kind", s.def.Kind, "id", id, "fields", len(columns))
	return updated, nil
}

func (s *resourceService[T, P]) Delete(ctx context.Context, db *gorm.DB, id int) error {
	if id <= 0 {
		return s.idRequired()
	}

	db = db.WithContext(ctx)

	existing, err := s.repo.FindByID(db, id)
	if err != nil {
		return s.handleRepoError(err)
	}

	if err := s.repo.Delete(db, id); err != nil {
		return s.handleRepoError(err)
	}

	logger.CtxInfo(ctx, "resource deleted", "kind", s.def.Kind, "id", id)

	// Очистка после удаления записи: ее ошибки не влияют на результат
	if s.def.AfterDelete != nil {
		s.def.AfterDelete(ctx, (*T)(existing))
	}
	return nil
}

func (s *resourceService[T, P]) Validate(input interface{}) error {
	err := s.validator.Validate(input)
	if err == nil {
		return nil
	}

	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		msg := verr.Error()
		// общее сообщение только для создания: в PATCH обязательных полей нет
		if _, creating := input.(CreateInput[T]); creating && verr.Missing() && s.def.RequiredMessage != "" {
			msg = s.def.RequiredMessage
		}
		return apperrors.ValidationError(msg, verr.Errors)
	}
	return apperrors.InternalError(err)
}

func (s *resourceService[T, P]) idRequired() error {
	return apperrors.ValidationError(s.def.Label+" ID is required", nil)
}

func (s *resourceService[T, P]) handleRepoError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(s.def.Label)
	}
	return apperrors.UpstreamError("database", err)
}
