package registry

import (
	"context"
	"fmt"

	"github.com/moxuanli/frs/backend/internal/models"
	"github.com/moxuanli/frs/backend/internal/repositories"
)

// TargetSummary is the normalized display projection of a collected entity.
// Only the fields relevant to the target's kind are populated.
type TargetSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url,omitempty"`
	Category string `json:"category,omitempty"`
	Address  string `json:"address,omitempty"`
	Author   string `json:"author,omitempty"`
	Link     string `json:"link"`
}

// Resolver answers existence and summary lookups for one entity kind.
// Implementations are read-only.
type Resolver interface {
	Exists(ctx context.Context, id uint) (bool, error)
	// Summarize returns nil (not an error) when the target no longer
	// exists, so dangling collection entries can be rendered as
	// placeholders instead of being dropped.
	Summarize(ctx context.Context, id uint) (*TargetSummary, error)
}

// Registry is the static capability table mapping each collectible kind to
// its resolver.
type Registry struct {
	resolvers map[models.CollectionType]Resolver
}

// New builds the registry over the three backing stores.
func New(postRepo repositories.PostRepository, foodRepo repositories.FoodRepository, restaurantRepo repositories.RestaurantRepository) *Registry {
	return &Registry{
		resolvers: map[models.CollectionType]Resolver{
			models.CollectionTypePost:       &postResolver{repo: postRepo},
			models.CollectionTypeFood:       &foodResolver{repo: foodRepo},
			models.CollectionTypeRestaurant: &restaurantResolver{repo: restaurantRepo},
		},
	}
}

// Exists reports whether the target of the given kind is a live row.
func (r *Registry) Exists(ctx context.Context, itemType models.CollectionType, id uint) (bool, error) {
	resolver, ok := r.resolvers[itemType]
	if !ok {
		return false, fmt.Errorf("no resolver registered for collection type %q", itemType)
	}
	return resolver.Exists(ctx, id)
}

// Summarize resolves a (kind, id) pair into its display summary, or nil when
// the target has since been deleted.
func (r *Registry) Summarize(ctx context.Context, itemType models.CollectionType, id uint) (*TargetSummary, error) {
	resolver, ok := r.resolvers[itemType]
	if !ok {
		return nil, fmt.Errorf("no resolver registered for collection type %q", itemType)
	}
	return resolver.Summarize(ctx, id)
}

type postResolver struct {
	repo repositories.PostRepository
}

func (p *postResolver) Exists(ctx context.Context, id uint) (bool, error) {
	return p.repo.PostExists(ctx, id)
}

func (p *postResolver) Summarize(ctx context.Context, id uint) (*TargetSummary, error) {
	post, err := p.repo.GetPostByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	summary := &TargetSummary{
		ID:    post.ID,
		Title: post.Title,
		Link:  fmt.Sprintf("/community/post/%d", post.ID),
	}
	if len(post.ImageURLs) > 0 {
		summary.ImageURL = post.ImageURLs[0]
	}
	if post.Author != nil {
		summary.Author = post.Author.Username
	}
	return summary, nil
}

type foodResolver struct {
	repo repositories.FoodRepository
}

func (f *foodResolver) Exists(ctx context.Context, id uint) (bool, error) {
	return f.repo.FoodItemExists(ctx, id)
}

func (f *foodResolver) Summarize(ctx context.Context, id uint) (*TargetSummary, error) {
	item, err := f.repo.GetFoodItemByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	summary := &TargetSummary{
		ID:       item.ID,
		Title:    item.Name,
		ImageURL: item.ImageURL,
		Link:     fmt.Sprintf("/food/%d", item.ID),
	}
	if item.Category != nil {
		summary.Category = *item.Category
	}
	return summary, nil
}

type restaurantResolver struct {
	repo repositories.RestaurantRepository
}

func (r *restaurantResolver) Exists(ctx context.Context, id uint) (bool, error) {
	return r.repo.RestaurantExists(ctx, id)
}

func (r *restaurantResolver) Summarize(ctx context.Context, id uint) (*TargetSummary, error) {
	restaurant, err := r.repo.GetRestaurantByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &TargetSummary{
		ID:       restaurant.ID,
		Title:    restaurant.Name,
		ImageURL: restaurant.ImageURL,
		Address:  restaurant.Address,
		Link:     fmt.Sprintf("/restaurant/%d", restaurant.ID),
	}, nil
}
