package datasource

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

func (s *Source) ServiceCategories(ctx context.Context) ([]models.ServiceCategory, error) {
	return FetchList(ctx, s, PathServiceCategories, models.ServiceCategoryFromMap)
}

func (s *Source) ServiceItems(ctx context.Context) ([]models.ServiceItem, error) {
	return FetchList(ctx, s, PathServiceItems, models.ServiceItemFromMap)
}

func (s *Source) ServiceItem(ctx context.Context, id string) (models.ServiceItem, error) {
	return FetchOne(ctx, s, remote.Join(PathServiceItems, id), models.ServiceItemFromMap)
}

func (s *Source) ObserveServiceItems() *Feed[models.ServiceItem] {
	return Observe(s, PathServiceItems, models.ServiceItemFromMap)
}

func (s *Source) PutServiceItem(ctx context.Context, item models.ServiceItem) error {
	m := item.ToMap()
	if item.CreatedAt.IsZero() {
		m["createdAt"] = remote.ServerTimestamp
	}
	m["updatedAt"] = remote.ServerTimestamp
	return s.Put(ctx, remote.Join(PathServiceItems, item.ID), m)
}

func (s *Source) PutServiceCategory(ctx context.Context, c models.ServiceCategory) error {
	return s.Put(ctx, remote.Join(PathServiceCategories, c.ID), c.ToMap())
}
