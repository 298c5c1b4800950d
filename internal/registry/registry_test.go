package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/moxuanli/frs/backend/internal/models"
)

type fakePostRepo struct {
	posts map[uint]*models.Post
}

func (f *fakePostRepo) CreatePost(ctx context.Context, post *models.Post) error { return nil }
func (f *fakePostRepo) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	if p, ok := f.posts[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePostRepo) GetPosts(ctx context.Context, offset, limit int) ([]models.Post, error) {
	return nil, nil
}
func (f *fakePostRepo) CountPosts(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakePostRepo) DeletePost(ctx context.Context, id uint) error { return nil }
func (f *fakePostRepo) PostExists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.posts[id]
	return ok, nil
}

type fakeFoodRepo struct {
	items map[uint]*models.FoodItem
}

func (f *fakeFoodRepo) GetFoodItemByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	if item, ok := f.items[id]; ok {
		return item, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeFoodRepo) GetFoodItems(ctx context.Context, offset, limit int) ([]models.FoodItem, error) {
	return nil, nil
}
func (f *fakeFoodRepo) CountFoodItems(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeFoodRepo) FoodItemExists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.items[id]
	return ok, nil
}

type fakeRestaurantRepo struct {
	restaurants map[uint]*models.Restaurant
}

func (f *fakeRestaurantRepo) GetRestaurantByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	if r, ok := f.restaurants[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRestaurantRepo) GetRestaurants(ctx context.Context, offset, limit int) ([]models.Restaurant, error) {
	return nil, nil
}
func (f *fakeRestaurantRepo) CountRestaurants(ctx context.Context) (int64, error) { return 0, nil }
func (f *fakeRestaurantRepo) RestaurantExists(ctx context.Context, id uint) (bool, error) {
	_, ok := f.restaurants[id]
	return ok, nil
}

func newTestRegistry() *Registry {
	category := "Sichuan"
	return New(
		&fakePostRepo{posts: map[uint]*models.Post{
			11: {ID: 11, Title: "Best dumplings in town", ImageURLs: []string{"/img/a.jpg"}, Author: &models.User{ID: 2, Username: "alice"}},
		}},
		&fakeFoodRepo{items: map[uint]*models.FoodItem{
			42: {ID: 42, Name: "Mapo Tofu", ImageURL: "/img/tofu.jpg", Category: &category},
		}},
		&fakeRestaurantRepo{restaurants: map[uint]*models.Restaurant{
			5: {ID: 5, Name: "Corner Cafe", Address: "1 Main St", ImageURL: "/img/cafe.jpg"},
		}},
	)
}

func TestExistsDispatchesByKind(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	tests := []struct {
		kind models.CollectionType
		id   uint
		want bool
	}{
		{models.CollectionTypePost, 11, true},
		{models.CollectionTypePost, 42, false},
		{models.CollectionTypeFood, 42, true},
		{models.CollectionTypeFood, 11, false},
		{models.CollectionTypeRestaurant, 5, true},
		{models.CollectionTypeRestaurant, 6, false},
	}

	for _, tc := range tests {
		got, err := reg.Exists(ctx, tc.kind, tc.id)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %d", tc.kind, tc.id)
	}
}

func TestExistsUnknownKind(t *testing.T) {
	reg := newTestRegistry()

	_, err := reg.Exists(context.Background(), models.CollectionType("COMMENT"), 1)
	assert.Error(t, err)
}

func TestSummarizeProjections(t *testing.T) {
	reg := newTestRegistry()
	ctx := context.Background()

	post, err := reg.Summarize(ctx, models.CollectionTypePost, 11)
	require.NoError(t, err)
	require.NotNil(t, post)
	assert.Equal(t, "Best dumplings in town", post.Title)
	assert.Equal(t, "/img/a.jpg", post.ImageURL)
	assert.Equal(t, "alice", post.Author)
	assert.Equal(t, "/community/post/11", post.Link)

	food, err := reg.Summarize(ctx, models.CollectionTypeFood, 42)
	require.NoError(t, err)
	require.NotNil(t, food)
	assert.Equal(t, "Mapo Tofu", food.Title)
	assert.Equal(t, "Sichuan", food.Category)
	assert.Equal(t, "/food/42", food.Link)

	restaurant, err := reg.Summarize(ctx, models.CollectionTypeRestaurant, 5)
	require.NoError(t, err)
	require.NotNil(t, restaurant)
	assert.Equal(t, "Corner Cafe", restaurant.Title)
	assert.Equal(t, "1 Main St", restaurant.Address)
	assert.Equal(t, "/restaurant/5", restaurant.Link)
}

func TestSummarizeToleratesDanglingTarget(t *testing.T) {
	reg := newTestRegistry()

	summary, err := reg.Summarize(context.Background(), models.CollectionTypeFood, 999999)
	require.NoError(t, err)
	assert.Nil(t, summary, "a vanished target summarizes to nil, not an error")
}
