package repositories

import (
	"context"

	"github.com/moxuanli/frs/backend/internal/models"
	"gorm.io/gorm"
)

// FoodRepository defines the interface for food item data operations
type FoodRepository interface {
	GetFoodItemByID(ctx context.Context, id uint) (*models.FoodItem, error)
	GetFoodItems(ctx context.Context, offset, limit int) ([]models.FoodItem, error)
	CountFoodItems(ctx context.Context) (int64, error)
	FoodItemExists(ctx context.Context, id uint) (bool, error)
}

// PostgresFoodRepository implements FoodRepository
type PostgresFoodRepository struct {
	db *gorm.DB
}

func NewPostgresFoodRepository(db *gorm.DB) *PostgresFoodRepository {
	return &PostgresFoodRepository{db: db}
}

func (r *PostgresFoodRepository) GetFoodItemByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresFoodRepository) GetFoodItems(ctx context.Context, offset, limit int) ([]models.FoodItem, error) {
	var items []models.FoodItem
	err := r.db.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&items).Error
	return items, err
}

func (r *PostgresFoodRepository) CountFoodItems(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FoodItem{}).Count(&count).Error
	return count, err
}

func (r *PostgresFoodRepository) FoodItemExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FoodItem{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
