package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/registry"
	"github.com/moxuanli/frs/backend/internal/repositories"
)

// Service-layer error taxonomy. Handlers map these onto HTTP statuses;
// nothing below this layer leaks upward.
var (
	// ErrInvalidInput covers malformed kinds and non-positive target ids.
	ErrInvalidInput = errors.New("invalid collection input")
	// ErrTargetNotFound means the referenced entity does not exist.
	ErrTargetNotFound = errors.New("collection target not found")
	// ErrNotFound signals a remove with nothing to delete. Idempotent
	// toward the end user; the caller decides whether to surface it.
	ErrNotFound = errors.New("collection entry not found")
	// ErrStorageUnavailable wraps unexpected storage failures; safe to
	// retry.
	ErrStorageUnavailable = errors.New("collection storage unavailable")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// EnrichedItem is a collection entry with its target's display summary
// attached. Item is nil when the target has since been deleted.
type EnrichedItem struct {
	models.CollectionItem
	Item *registry.TargetSummary `json:"item"`
}

// CollectionPage is one page of a user's collection.
type CollectionPage struct {
	Items      []EnrichedItem
	Page       int
	Limit      int
	TotalPages int
	TotalItems int64
}

// EntityRegistry resolves (kind, target) pairs. Satisfied by
// *registry.Registry.
type EntityRegistry interface {
	Exists(ctx context.Context, itemType models.CollectionType, id uint) (bool, error)
	Summarize(ctx context.Context, itemType models.CollectionType, id uint) (*registry.TargetSummary, error)
}

// CollectionService orchestrates validation, existence checks and store
// mutations. It is the only component that writes to the collection store.
type CollectionService struct {
	store    repositories.CollectionRepository
	registry EntityRegistry
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(store repositories.CollectionRepository, reg EntityRegistry) *CollectionService {
	return &CollectionService{store: store, registry: reg}
}

// Add collects a target for a user. The second return value reports whether
// the entry already existed: a duplicate add is not a failure, it returns
// the existing entry so the caller can render "already collected". Add is
// therefore safe to retry, including after a client-side timeout.
func (s *CollectionService) Add(ctx context.Context, userID uint, itemType string, itemID int64) (*models.CollectionItem, bool, error) {
	kind, targetID, err := s.validateInput(itemType, itemID)
	if err != nil {
		return nil, false, err
	}

	exists, err := s.registry.Exists(ctx, kind, targetID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if !exists {
		return nil, false, fmt.Errorf("%w: %s %d", ErrTargetNotFound, kind, targetID)
	}

	item, err := models.NewCollectionItem(userID, kind, targetID)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	err = s.store.Create(ctx, item)
	if err == nil {
		return item, false, nil
	}

	if errors.Is(err, repositories.ErrDuplicateEntry) {
		// Lost race or repeated click; surface the existing row instead
		// of an error.
		existing, getErr := s.store.GetByUserKindTarget(ctx, userID, kind, targetID)
		if getErr != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, getErr)
		}
		return existing, true, nil
	}
	if errors.Is(err, repositories.ErrForeignKeyViolated) {
		// Target vanished between the existence check and the insert.
		return nil, false, fmt.Errorf("%w: %s %d", ErrTargetNotFound, kind, targetID)
	}
	return nil, false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// Remove deletes the entry for a triple. A remove with nothing to delete
// returns ErrNotFound so internal callers can distinguish the no-op; it is
// not an end-user error.
func (s *CollectionService) Remove(ctx context.Context, userID uint, itemType string, itemID int64) error {
	kind, targetID, err := s.validateInput(itemType, itemID)
	if err != nil {
		return err
	}

	removed, err := s.store.DeleteByUserKindTarget(ctx, userID, kind, targetID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, kind, targetID)
	}
	return nil
}

// List returns one page of the user's collection, newest first, each entry
// enriched with its target summary. Entries whose target no longer resolves
// are kept with a nil summary rather than silently dropped.
func (s *CollectionService) List(ctx context.Context, userID uint, typeFilter string, page, limit int) (*CollectionPage, error) {
	var kindFilter *models.CollectionType
	if typeFilter != "" {
		kind, ok := models.ParseCollectionType(typeFilter)
		if !ok {
			return nil, fmt.Errorf("%w: unknown type filter %q", ErrInvalidInput, typeFilter)
		}
		kindFilter = &kind
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxPageSize {
		limit = DefaultPageSize
	}

	items, err := s.store.ListByUser(ctx, userID, kindFilter, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	totalItems, err := s.store.CountByUser(ctx, userID, kindFilter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	enriched := make([]EnrichedItem, len(items))
	for i, item := range items {
		summary, err := s.registry.Summarize(ctx, item.ItemType, item.TargetID())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if summary == nil {
			log.Warn().
				Uint("user_id", userID).
				Str("item_type", string(item.ItemType)).
				Uint("target_id", item.TargetID()).
				Msg("collection entry references a deleted target")
		}
		enriched[i] = EnrichedItem{CollectionItem: item, Item: summary}
	}

	return &CollectionPage{
		Items:      enriched,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalItems) / float64(limit))),
		TotalItems: totalItems,
	}, nil
}

// IsCollected reports membership for a single triple.
func (s *CollectionService) IsCollected(ctx context.Context, userID uint, itemType string, itemID int64) (bool, error) {
	kind, targetID, err := s.validateInput(itemType, itemID)
	if err != nil {
		return false, err
	}
	_, err = s.store.GetByUserKindTarget(ctx, userID, kind, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return true, nil
}

// CollectedIDs reports which of the given targets of one kind the user has
// collected, for batch list enrichment.
func (s *CollectionService) CollectedIDs(ctx context.Context, userID uint, itemType models.CollectionType, targetIDs []uint) (map[uint]bool, error) {
	ids, err := s.store.CollectedIDs(ctx, userID, itemType, targetIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return ids, nil
}

// validateInput normalizes the kind and checks the target id before any
// storage I/O happens.
func (s *CollectionService) validateInput(itemType string, itemID int64) (models.CollectionType, uint, error) {
	kind, ok := models.ParseCollectionType(itemType)
	if !ok {
		return "", 0, fmt.Errorf("%w: itemType must be one of FOOD, RESTAURANT, POST, got %q", ErrInvalidInput, itemType)
	}
	if itemID <= 0 {
		return "", 0, fmt.Errorf("%w: itemId must be a positive integer, got %d", ErrInvalidInput, itemID)
	}
	return kind, uint(itemID), nil
}
