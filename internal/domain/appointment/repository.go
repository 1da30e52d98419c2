package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Settings --------
	GetBusinessSettings(
		ctx context.Context,
	) (models.BusinessSettings, error)

	GetNotificationSettings(
		ctx context.Context,
	) (models.NotificationSettings, error)

	// -------- Schedule --------
	GetBusinessDay(
		ctx context.Context,
		weekday time.Weekday,
	) (models.BusinessDay, error)

	IsDateBlocked(
		ctx context.Context,
		date string,
	) (bool, error)

	// -------- Catalog --------
	GetService(
		ctx context.Context,
		serviceID string,
	) (models.Service, error)

	// -------- Appointment --------
	CreateAppointment(
		ctx context.Context,
		ap models.Appointment,
	) (models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		appointmentID string,
	) (models.Appointment, error)

	UpdateAppointmentStatus(
		ctx context.Context,
		ap models.Appointment,
	) error

	ReplaceAppointment(
		ctx context.Context,
		ap models.Appointment,
	) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForClient(
		ctx context.Context,
		clientID string,
	) ([]models.Appointment, error)
}
