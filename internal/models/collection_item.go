package models

import (
	"fmt"
	"strings"
	"time"
)

// CollectionType discriminates which entity a CollectionItem targets.
type CollectionType string

const (
	CollectionTypePost       CollectionType = "POST"
	CollectionTypeFood       CollectionType = "FOOD"
	CollectionTypeRestaurant CollectionType = "RESTAURANT"
)

// CollectionTypes lists every collectible kind.
func CollectionTypes() []CollectionType {
	return []CollectionType{CollectionTypePost, CollectionTypeFood, CollectionTypeRestaurant}
}

// ParseCollectionType normalizes a raw kind string (case-insensitive) and
// reports whether it names a collectible kind.
func ParseCollectionType(s string) (CollectionType, bool) {
	switch CollectionType(strings.ToUpper(strings.TrimSpace(s))) {
	case CollectionTypePost:
		return CollectionTypePost, true
	case CollectionTypeFood:
		return CollectionTypeFood, true
	case CollectionTypeRestaurant:
		return CollectionTypeRestaurant, true
	}
	return "", false
}

// CollectionItem is a user's bookmark of exactly one target entity.
//
// The target is a discriminated union stored as three mutually exclusive
// nullable foreign keys; ItemType is the discriminant and must agree with
// whichever slot is populated. Uniqueness of (user, kind, target) is
// enforced by the per-slot composite unique indexes, so concurrent adds of
// the same target resolve to a single row at the storage layer.
type CollectionItem struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_post_collect;uniqueIndex:idx_user_food_collect;uniqueIndex:idx_user_restaurant_collect"`
	ItemType     CollectionType `json:"item_type" gorm:"type:varchar(16);not null"`
	PostID       *uint          `json:"post_id,omitempty" gorm:"uniqueIndex:idx_user_post_collect"`
	FoodItemID   *uint          `json:"food_item_id,omitempty" gorm:"uniqueIndex:idx_user_food_collect"`
	RestaurantID *uint          `json:"restaurant_id,omitempty" gorm:"uniqueIndex:idx_user_restaurant_collect"`
	CreatedAt    time.Time      `json:"created_at"`

	User       *User       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Post       *Post       `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	FoodItem   *FoodItem   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Restaurant *Restaurant `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// NewCollectionItem builds a collection item with the target slot matching
// the kind. This constructor is the only sanctioned way to produce a row for
// the write path.
func NewCollectionItem(userID uint, itemType CollectionType, targetID uint) (*CollectionItem, error) {
	item := &CollectionItem{UserID: userID, ItemType: itemType}
	switch itemType {
	case CollectionTypePost:
		item.PostID = &targetID
	case CollectionTypeFood:
		item.FoodItemID = &targetID
	case CollectionTypeRestaurant:
		item.RestaurantID = &targetID
	default:
		return nil, fmt.Errorf("unknown collection type %q", itemType)
	}
	return item, nil
}

// TargetID returns the identifier held in the populated slot, or 0 when the
// row is malformed.
func (ci *CollectionItem) TargetID() uint {
	switch ci.ItemType {
	case CollectionTypePost:
		if ci.PostID != nil {
			return *ci.PostID
		}
	case CollectionTypeFood:
		if ci.FoodItemID != nil {
			return *ci.FoodItemID
		}
	case CollectionTypeRestaurant:
		if ci.RestaurantID != nil {
			return *ci.RestaurantID
		}
	}
	return 0
}

// Validate checks the discriminated-union invariant: exactly one target slot
// populated, and it must be the one ItemType names.
func (ci *CollectionItem) Validate() error {
	if _, ok := ParseCollectionType(string(ci.ItemType)); !ok {
		return fmt.Errorf("unknown collection type %q", ci.ItemType)
	}
	populated := 0
	for _, id := range []*uint{ci.PostID, ci.FoodItemID, ci.RestaurantID} {
		if id != nil {
			populated++
		}
	}
	if populated != 1 {
		return fmt.Errorf("collection item must populate exactly one target slot, has %d", populated)
	}
	if ci.TargetID() == 0 {
		return fmt.Errorf("populated target slot does not match item type %q", ci.ItemType)
	}
	return nil
}

// AddCollectionRequest is the body of POST /collections.
type AddCollectionRequest struct {
	ItemType string `json:"itemType" validate:"required"`
	ItemID   int64  `json:"itemId" validate:"required"`
}
