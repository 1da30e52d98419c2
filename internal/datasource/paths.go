package datasource

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

const (
	PathAppointments         = "appointments"
	PathServiceCategories    = "services/categories"
	PathServiceItems         = "services/items"
	PathClients              = "users/clients"
	PathAdmins               = "users/admins"
	PathBusinessHours        = "schedules/business_hours"
	PathBlockedDates         = "schedules/blocked_dates"
	PathBusinessSettings     = "settings/business"
	PathNotificationSettings = "settings/notifications"
	PathLogs                 = "logs"
)

// UserPath is where the profile of a user with role is stored.
func UserPath(role models.Role, uid string) string {
	if role.IsAdmin() {
		return remote.Join(PathAdmins, uid)
	}
	return remote.Join(PathClients, uid)
}
