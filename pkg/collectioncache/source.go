package collectioncache

import (
	"context"

	"github.com/moxuanli/frs/backend/internal/services"
)

// ServiceSource adapts the collection service's List operation to the
// cache's Source interface, for in-process consumers and tests.
type ServiceSource struct {
	Service *services.CollectionService
	UserID  uint
}

func (s *ServiceSource) FetchPage(ctx context.Context, page, limit int) ([]Entry, int, error) {
	result, err := s.Service.List(ctx, s.UserID, "", page, limit)
	if err != nil {
		return nil, 0, err
	}
	entries := make([]Entry, 0, len(result.Items))
	for _, item := range result.Items {
		entries = append(entries, Entry{Kind: item.ItemType, TargetID: item.TargetID()})
	}
	return entries, result.TotalPages, nil
}
