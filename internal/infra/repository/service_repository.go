package repository

import (
	"context"
	"log/slog"
	"sort"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceRepository struct {
	source *datasource.Source
	logger *slog.Logger
}

func NewServiceRepository(source *datasource.Source, logger *slog.Logger) *ServiceRepository {
	return &ServiceRepository{source: source, logger: logger}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ServiceRepository) GetActiveServices(
	ctx context.Context,
) ([]models.Service, error) {

	items, err := r.source.ServiceItems(ctx)
	if err != nil {
		return nil, err
	}
	return r.activeServices(items), nil
}

// GetServicesByCategory keeps the active services whose variant belongs to
// categoryID.
func (r *ServiceRepository) GetServicesByCategory(
	ctx context.Context,
	categoryID string,
) ([]models.Service, error) {

	services, err := r.GetActiveServices(ctx)
	if err != nil {
		return nil, err
	}
	return filterByCategory(services, categoryID), nil
}

func (r *ServiceRepository) GetService(
	ctx context.Context,
	serviceID string,
) (models.Service, error) {

	item, err := r.source.ServiceItem(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	return models.CreateService(item.Input())
}

// ObserveServices streams the active services on every catalog change.
func (r *ServiceRepository) ObserveServices() *datasource.MappedFeed[models.ServiceItem, models.Service] {
	return datasource.Map(r.source.ObserveServiceItems(), r.activeServices)
}

func (r *ServiceRepository) SaveItem(
	ctx context.Context,
	item models.ServiceItem,
) error {

	if err := item.Validate(); err != nil {
		return err
	}
	if _, err := models.CreateService(item.Input()); err != nil {
		return err
	}
	return r.source.PutServiceItem(ctx, item)
}

// --------------------------------------------------
// Categories
// --------------------------------------------------

func (r *ServiceRepository) GetCategories(
	ctx context.Context,
) ([]models.ServiceCategory, error) {

	categories, err := r.source.ServiceCategories(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].DisplayOrder < categories[j].DisplayOrder
	})
	return categories, nil
}

func (r *ServiceRepository) SaveCategory(
	ctx context.Context,
	category models.ServiceCategory,
) error {

	if err := category.Validate(); err != nil {
		return err
	}
	return r.source.PutServiceCategory(ctx, category)
}

// --------------------------------------------------
// Helpers
// --------------------------------------------------

func (r *ServiceRepository) activeServices(items []models.ServiceItem) []models.Service {
	out := make([]models.Service, 0, len(items))
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		svc, err := models.CreateService(item.Input())
		if err != nil {
			r.logger.Warn("skipping catalog row",
				"service_id", item.ID,
				"category_id", item.CategoryID,
				"error", err,
			)
			continue
		}
		out = append(out, svc)
	}
	return out
}

func filterByCategory(services []models.Service, categoryID string) []models.Service {
	out := []models.Service{}
	for _, svc := range services {
		if belongsTo(svc, categoryID) {
			out = append(out, svc)
		}
	}
	return out
}

func belongsTo(svc models.Service, categoryID string) bool {
	switch svc.(type) {
	case models.StandardService:
		return categoryID == models.CategoryStandard
	case models.PremiumService:
		return categoryID == models.CategoryPremium
	case models.FacialService:
		return categoryID == models.CategoryFacial
	default:
		return false
	}
}
