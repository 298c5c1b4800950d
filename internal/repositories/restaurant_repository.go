package repositories

import (
	"context"

	"github.com/moxuanli/frs/backend/internal/models"
	"gorm.io/gorm"
)

// RestaurantRepository defines the interface for restaurant data operations
type RestaurantRepository interface {
	GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error)
	GetRestaurants(ctx context.Context, offset, limit int) ([]models.Restaurant, error)
	CountRestaurants(ctx context.Context) (int64, error)
	RestaurantExists(ctx context.Context, id uint) (bool, error)
}

// PostgresRestaurantRepository implements RestaurantRepository
type PostgresRestaurantRepository struct {
	db *gorm.DB
}

func NewPostgresRestaurantRepository(db *gorm.DB) *PostgresRestaurantRepository {
	return &PostgresRestaurantRepository{db: db}
}

func (r *PostgresRestaurantRepository) GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

func (r *PostgresRestaurantRepository) GetRestaurants(ctx context.Context, offset, limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).Order("name ASC").Offset(offset).Limit(limit).Find(&restaurants).Error
	return restaurants, err
}

func (r *PostgresRestaurantRepository) CountRestaurants(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Count(&count).Error
	return count, err
}

func (r *PostgresRestaurantRepository) RestaurantExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
