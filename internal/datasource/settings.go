package datasource

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

// BusinessSettings fails with a NotFoundError until settings are saved.
func (s *Source) BusinessSettings(ctx context.Context) (models.BusinessSettings, error) {
	return FetchOne(ctx, s, PathBusinessSettings, models.BusinessSettingsFromMap)
}

func (s *Source) PutBusinessSettings(ctx context.Context, settings models.BusinessSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	m := settings.ToMap()
	m["updatedAt"] = remote.ServerTimestamp
	return s.Put(ctx, PathBusinessSettings, m)
}

// NotificationSettings falls back to the defaults when none are stored.
func (s *Source) NotificationSettings(ctx context.Context) (models.NotificationSettings, error) {
	settings, err := FetchOne(ctx, s, PathNotificationSettings, models.NotificationSettingsFromMap)
	if IsNotFound(err) {
		return models.DefaultNotificationSettings(), nil
	}
	return settings, err
}

func (s *Source) PutNotificationSettings(ctx context.Context, settings models.NotificationSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	return s.Put(ctx, PathNotificationSettings, settings.ToMap())
}
