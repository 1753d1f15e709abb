package repositories

import (
	"fmt"

	"portfolio_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterRepository выдает id для коллекций. Next вызывается внутри транзакции
// вставки: UPDATE блокирует строку счетчика до коммита, поэтому параллельные
// create не получают одинаковый id.
type CounterRepository interface {
	Next(tx *gorm.DB, collection string) (int, error)
	Current(db *gorm.DB, collection string) (int, error)
}

type CounterRepositoryImpl struct{}

func NewCounterRepository() CounterRepository {
	return &CounterRepositoryImpl{}
}

func (r *CounterRepositoryImpl) Next(tx *gorm.DB, collection string) (int, error) {
	res := tx.Model(&models.Counter{}).
		Where("name = ?", collection).
		UpdateColumn("seq", gorm.Expr("seq + 1"))
	if res.Error != nil {
		return 0, fmt.Errorf("increment counter %s: %w", collection, res.Error)
	}

	if res.RowsAffected == 0 {
		// Первый create для коллекции: продолжаем нумерацию с уже существующих записей
		if err := r.seed(tx, collection); err != nil {
			return 0, err
		}
		res = tx.Model(&models.Counter{}).
			Where("name = ?", collection).
			UpdateColumn("seq", gorm.Expr("seq + 1"))
		if res.Error != nil {
			return 0, fmt.Errorf("increment counter %s: %w", collection, res.Error)
		}
	}

	return r.Current(tx, collection)
}

func (r *CounterRepositoryImpl) Current(db *gorm.DB, collection string) (int, error) {
	var counter models.Counter
	err := db.Where("name = ?", collection).Take(&counter).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, fmt.Errorf("read counter %s: %w", collection, err)
	}
	return counter.Seq, nil
}

func (r *CounterRepositoryImpl) seed(tx *gorm.DB, collection string) error {
	var maxID int
	if err := tx.Table(collection).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
		return fmt.Errorf("scan max id of %s: %w", collection, err)
	}

	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Counter{Name: collection, Seq: maxID}).Error
	if err != nil {
		return fmt.Errorf("seed counter %s: %w", collection, err)
	}
	return nil
}
