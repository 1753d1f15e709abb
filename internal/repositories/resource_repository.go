package repositories

import (
	"errors"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record - указатель на модель с целочисленным id
type Record[T any] interface {
	*T
	models.Identifiable
}

// ResourceRepository - CRUD над одной таблицей. Одна реализация на все сущности.
type ResourceRepository[T any, P Record[T]] interface {
	Collection() string
	FindAll(db *gorm.DB) ([]T, error)
	FindWhere(db *gorm.DB, column string, value interface{}) ([]T, error)
	FindByID(db *gorm.DB, id int) (P, error)
	Create(db *gorm.DB, item P) error
	Update(db *gorm.DB, id int, columns map[string]interface{}) error
	Delete(db *gorm.DB, id int) error
}

type ResourceRepositoryImpl[T any, P Record[T]] struct {
	collection string
	counters   CounterRepository
}

func NewResourceRepository[T any, P Record[T]](collection string, counters CounterRepository) ResourceRepository[T, P] {
	return &ResourceRepositoryImpl[T, P]{
		collection: collection,
		counters:   counters,
	}
}

func (r *ResourceRepositoryImpl[T, P]) Collection() string {
	return r.collection
}

func (r *ResourceRepositoryImpl[T, P]) FindAll(db *gorm.DB) ([]T, error) {
	items := make([]T, 0)
	err := db.Order("id ASC").Find(&items).Error
	return items, err
}

func (r *ResourceRepositoryImpl[T, P]) FindWhere(db *gorm.DB, column string, value interface{}) ([]T, error) {
	items := make([]T, 0)
	err := db.Where(clause.Eq{Column: clause.Column{Name: column}, Value: value}).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *ResourceRepositoryImpl[T, P]) FindByID(db *gorm.DB, id int) (P, error) {
	item := P(new(T))
	err := db.Where("id = ?", id).Take(item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// Create выделяет id и вставляет запись в одной транзакции
func (r *ResourceRepositoryImpl[T, P]) Create(db *gorm.DB, item P) error {
	return db.Transaction(func(tx *gorm.DB) error {
		id, err := r.counters.Next(tx, r.collection)
		if err != nil {
			return err
		}
		item.AssignID(id)
		return tx.Create(item).Error
	})
}

// Update меняет только переданные колонки
func (r *ResourceRepositoryImpl[T, P]) Update(db *gorm.DB, id int, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}
	return db.Model(P(new(T))).Where("id = ?", id).Updates(columns).Error
}

func (r *ResourceRepositoryImpl[T, P]) Delete(db *gorm.DB, id int) error {
	result := db.Where("id = ?", id).Delete(P(new(T)))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
