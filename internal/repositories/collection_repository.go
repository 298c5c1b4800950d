package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/moxuanli/frs/backend/internal/models"
)

// Storage-layer sentinels. The service layer maps these onto its own
// taxonomy; raw gorm/pg errors never leave this package.
var (
	// ErrDuplicateEntry signals that the (user, kind, target) triple is
	// already collected. The single constrained INSERT makes this the only
	// possible outcome of a lost race between two concurrent adds.
	ErrDuplicateEntry = errors.New("collection entry already exists")
	// ErrForeignKeyViolated signals that the user or target row is gone.
	ErrForeignKeyViolated = errors.New("collection entry references a missing row")
)

// CollectionRepository defines the interface for collection store operations
type CollectionRepository interface {
	Create(ctx context.Context, item *models.CollectionItem) error
	GetByUserKindTarget(ctx context.Context, userID uint, itemType models.CollectionType, targetID uint) (*models.CollectionItem, error)
	DeleteByUserKindTarget(ctx context.Context, userID uint, itemType models.CollectionType, targetID uint) (int64, error)
	ListByUser(ctx context.Context, userID uint, itemType *models.CollectionType, offset, limit int) ([]models.CollectionItem, error)
	CountByUser(ctx context.Context, userID uint, itemType *models.CollectionType) (int64, error)
	CollectedIDs(ctx context.Context, userID uint, itemType models.CollectionType, targetIDs []uint) (map[uint]bool, error)
}

// PostgresCollectionRepository implements CollectionRepository
type PostgresCollectionRepository struct {
	db *gorm.DB
}

func NewPostgresCollectionRepository(db *gorm.DB) *PostgresCollectionRepository {
	return &PostgresCollectionRepository{db: db}
}

// Create inserts a collection item. The uniqueness invariant is enforced by
// the database indexes, not by a read-then-write check.
func (r *PostgresCollectionRepository) Create(ctx context.Context, item *models.CollectionItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid collection item: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return translateStoreError(err)
	}
	return nil
}

// GetByUserKindTarget fetches the single entry for a triple, if present.
func (r *PostgresCollectionRepository) GetByUserKindTarget(ctx context.Context, userID uint, itemType models.CollectionType, targetID uint) (*models.CollectionItem, error) {
	var item models.CollectionItem
	err := r.db.WithContext(ctx).
		Where(targetClause(itemType), userID, itemType, targetID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteByUserKindTarget removes zero or one row and reports how many were
// removed, so callers can distinguish "already absent" from "removed".
func (r *PostgresCollectionRepository) DeleteByUserKindTarget(ctx context.Context, userID uint, itemType models.CollectionType, targetID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where(targetClause(itemType), userID, itemType, targetID).
		Delete(&models.CollectionItem{})
	if res.Error != nil {
		return 0, translateStoreError(res.Error)
	}
	return res.RowsAffected, nil
}

// ListByUser returns entries newest first, optionally restricted to one kind.
func (r *PostgresCollectionRepository) ListByUser(ctx context.Context, userID uint, itemType *models.CollectionType, offset, limit int) ([]models.CollectionItem, error) {
	var items []models.CollectionItem
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if itemType != nil {
		q = q.Where("item_type = ?", *itemType)
	}
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// CountByUser counts a user's entries, optionally restricted to one kind.
func (r *PostgresCollectionRepository) CountByUser(ctx context.Context, userID uint, itemType *models.CollectionType) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.CollectionItem{}).Where("user_id = ?", userID)
	if itemType != nil {
		q = q.Where("item_type = ?", *itemType)
	}
	err := q.Count(&count).Error
	return count, err
}

// CollectedIDs reports which of the given targets the user has collected,
// in one query. Used by list endpoints to flag items without a round trip
// per row.
func (r *PostgresCollectionRepository) CollectedIDs(ctx context.Context, userID uint, itemType models.CollectionType, targetIDs []uint) (map[uint]bool, error) {
	result := make(map[uint]bool)
	if len(targetIDs) == 0 {
		return result, nil
	}
	var items []models.CollectionItem
	err := r.db.WithContext(ctx).
		Where(fmt.Sprintf("user_id = ? AND item_type = ? AND %s IN ?", slotColumn(itemType)), userID, itemType, targetIDs).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		result[item.TargetID()] = true
	}
	return result, nil
}

// slotColumn maps a kind to the foreign-key column holding its target id.
func slotColumn(itemType models.CollectionType) string {
	switch itemType {
	case models.CollectionTypePost:
		return "post_id"
	case models.CollectionTypeFood:
		return "food_item_id"
	case models.CollectionTypeRestaurant:
		return "restaurant_id"
	}
	// Unknown kinds are rejected at the service boundary; reaching here is
	// a programming error.
	panic(fmt.Sprintf("unknown collection type %q", itemType))
}

func targetClause(itemType models.CollectionType) string {
	return fmt.Sprintf("user_id = ? AND item_type = ? AND %s = ?", slotColumn(itemType))
}

// translateStoreError maps constraint violations onto the package sentinels.
// Both gorm's translated errors and raw pg error codes are handled, so the
// mapping holds whether or not the session was opened with TranslateError.
func translateStoreError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateEntry, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", ErrForeignKeyViolated, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %v", ErrDuplicateEntry, err)
		case "23503":
			return fmt.Errorf("%w: %v", ErrForeignKeyViolated, err)
		}
	}
	return err
}
