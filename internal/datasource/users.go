package datasource

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

func (s *Source) Client(ctx context.Context, uid string) (models.ClientUser, error) {
	return FetchOne(ctx, s, remote.Join(PathClients, uid), models.ClientUserFromMap)
}

func (s *Source) Clients(ctx context.Context) ([]models.ClientUser, error) {
	return FetchList(ctx, s, PathClients, models.ClientUserFromMap)
}

func (s *Source) Admin(ctx context.Context, uid string) (models.AdminUser, error) {
	return FetchOne(ctx, s, remote.Join(PathAdmins, uid), models.AdminUserFromMap)
}

func (s *Source) Admins(ctx context.Context) ([]models.AdminUser, error) {
	return FetchList(ctx, s, PathAdmins, models.AdminUserFromMap)
}

func (s *Source) ObserveAdmins() *Feed[models.AdminUser] {
	return Observe(s, PathAdmins, models.AdminUserFromMap)
}

func (s *Source) UpdateClientPreferences(ctx context.Context, uid string, serviceIDs []string) error {
	return s.Update(ctx, remote.Join(PathClients, uid), map[string]any{"preferredServices": serviceIDs})
}

// StampLastLogin sets an admin's lastLoginAt to the server time.
func (s *Source) StampLastLogin(ctx context.Context, uid string) error {
	return s.Put(ctx, remote.Join(PathAdmins, uid, "lastLoginAt"), remote.ServerTimestamp)
}
