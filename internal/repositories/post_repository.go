package repositories

import (
	"context"

	"github.com/moxuanli/frs/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	GetPosts(ctx context.Context, offset, limit int) ([]models.Post, error)
	CountPosts(ctx context.Context) (int64, error)
	DeletePost(ctx context.Context, id uint) error
	PostExists(ctx context.Context, id uint) (bool, error)
}

// PostgresPostRepository implements PostRepository
type PostgresPostRepository struct {
	db *gorm.DB
}

func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostgresPostRepository) GetPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).Preload("Author").
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) PostExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
