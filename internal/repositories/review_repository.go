package repositories

import (
	"context"

	"github.com/moxuanli/frs/backend/internal/models"
	"gorm.io/gorm"
)

// ReviewRepository defines the interface for food review data operations
type ReviewRepository interface {
	CreateReview(ctx context.Context, review *models.Review) error
	GetReviewsByFoodItem(ctx context.Context, foodItemID uint, offset, limit int) ([]models.Review, error)
	CountReviewsByFoodItem(ctx context.Context, foodItemID uint) (int64, error)
}

// PostgresReviewRepository implements ReviewRepository
type PostgresReviewRepository struct {
	db *gorm.DB
}

func NewPostgresReviewRepository(db *gorm.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *PostgresReviewRepository) GetReviewsByFoodItem(ctx context.Context, foodItemID uint, offset, limit int) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).Where("food_item_id = ?", foodItemID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&reviews).Error
	return reviews, err
}

func (r *PostgresReviewRepository) CountReviewsByFoodItem(ctx context.Context, foodItemID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).Where("food_item_id = ?", foodItemID).Count(&count).Error
	return count, err
}
