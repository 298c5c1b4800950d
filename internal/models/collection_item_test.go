package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCollectionType(t *testing.T) {
	tests := []struct {
		in   string
		want CollectionType
		ok   bool
	}{
		{"FOOD", CollectionTypeFood, true},
		{"food", CollectionTypeFood, true},
		{" restaurant ", CollectionTypeRestaurant, true},
		{"Post", CollectionTypePost, true},
		{"", "", false},
		{"COMMENT", "", false},
	}

	for _, tc := range tests {
		got, ok := ParseCollectionType(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestNewCollectionItemPopulatesMatchingSlot(t *testing.T) {
	item, err := NewCollectionItem(1, CollectionTypeFood, 42)
	require.NoError(t, err)
	require.NotNil(t, item.FoodItemID)
	assert.Equal(t, uint(42), *item.FoodItemID)
	assert.Nil(t, item.PostID)
	assert.Nil(t, item.RestaurantID)
	assert.Equal(t, uint(42), item.TargetID())
	assert.NoError(t, item.Validate())
}

func TestNewCollectionItemRejectsUnknownKind(t *testing.T) {
	_, err := NewCollectionItem(1, CollectionType("COMMENT"), 1)
	assert.Error(t, err)
}

func TestCollectionItemValidate(t *testing.T) {
	postID := uint(7)
	foodID := uint(9)

	tests := []struct {
		name    string
		item    CollectionItem
		wantErr bool
	}{
		{
			name: "valid post entry",
			item: CollectionItem{UserID: 1, ItemType: CollectionTypePost, PostID: &postID},
		},
		{
			name:    "no slot populated",
			item:    CollectionItem{UserID: 1, ItemType: CollectionTypePost},
			wantErr: true,
		},
		{
			name:    "two slots populated",
			item:    CollectionItem{UserID: 1, ItemType: CollectionTypePost, PostID: &postID, FoodItemID: &foodID},
			wantErr: true,
		},
		{
			name:    "slot does not match kind",
			item:    CollectionItem{UserID: 1, ItemType: CollectionTypeRestaurant, PostID: &postID},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			item:    CollectionItem{UserID: 1, ItemType: CollectionType("LIKE"), PostID: &postID},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
