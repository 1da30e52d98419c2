package repository

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentRepository struct {
	source   *datasource.Source
	services *ServiceRepository
}

var _ domain.Repository = (*AppointmentRepository)(nil)

func NewAppointmentRepository(
	source *datasource.Source,
	services *ServiceRepository,
) *AppointmentRepository {
	return &AppointmentRepository{source: source, services: services}
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

// GetBusinessSettings falls back to the defaults until an admin saves
// settings. A stored record that fails validation is an error, never the
// defaults.
func (r *AppointmentRepository) GetBusinessSettings(
	ctx context.Context,
) (models.BusinessSettings, error) {

	settings, err := r.source.BusinessSettings(ctx)
	if datasource.IsNotFound(err) {
		return models.DefaultBusinessSettings(), nil
	}
	return settings, err
}

func (r *AppointmentRepository) GetNotificationSettings(
	ctx context.Context,
) (models.NotificationSettings, error) {
	return r.source.NotificationSettings(ctx)
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

// GetBusinessDay reports a day without stored hours as closed.
func (r *AppointmentRepository) GetBusinessDay(
	ctx context.Context,
	weekday time.Weekday,
) (models.BusinessDay, error) {

	day, err := r.source.BusinessDay(ctx, weekday)
	if datasource.IsNotFound(err) {
		return models.BusinessDay{}, nil
	}
	return day, err
}

func (r *AppointmentRepository) IsDateBlocked(
	ctx context.Context,
	date string,
) (bool, error) {

	blocked, err := r.source.BlockedDates(ctx)
	if err != nil {
		return false, err
	}
	for _, b := range blocked {
		if b.Date == date {
			return true, nil
		}
	}
	return false, nil
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentRepository) GetService(
	ctx context.Context,
	serviceID string,
) (models.Service, error) {
	return r.services.GetService(ctx, serviceID)
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

// CreateAppointment appends the booking and reads it back so the result
// carries the generated id and the server timestamps.
func (r *AppointmentRepository) CreateAppointment(
	ctx context.Context,
	ap models.Appointment,
) (models.Appointment, error) {

	id, err := r.source.CreateAppointment(ctx, ap)
	if err != nil {
		return models.Appointment{}, err
	}

	stored, err := r.source.Appointment(ctx, id)
	if err != nil {
		return ap.WithID(id), nil
	}
	return stored, nil
}

func (r *AppointmentRepository) GetAppointment(
	ctx context.Context,
	appointmentID string,
) (models.Appointment, error) {
	return r.source.Appointment(ctx, appointmentID)
}

func (r *AppointmentRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap models.Appointment,
) error {
	return r.source.UpdateAppointmentStatus(ctx, ap.ID(), ap.Status())
}

func (r *AppointmentRepository) ReplaceAppointment(
	ctx context.Context,
	ap models.Appointment,
) error {
	return r.source.ReplaceAppointment(ctx, ap)
}

// ListAppointmentsForPeriod returns bookings starting in [start, end),
// earliest first.
func (r *AppointmentRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	return r.list(ctx, func(ap models.Appointment) bool {
		return !ap.DateTime().Before(start) && ap.DateTime().Before(end)
	})
}

func (r *AppointmentRepository) ListAppointmentsForClient(
	ctx context.Context,
	clientID string,
) ([]models.Appointment, error) {

	return r.list(ctx, func(ap models.Appointment) bool {
		return ap.ClientID() == clientID
	})
}

func (r *AppointmentRepository) list(
	ctx context.Context,
	keep func(models.Appointment) bool,
) ([]models.Appointment, error) {

	all, err := r.source.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.Appointment{}
	for _, ap := range all {
		if keep(ap) {
			out = append(out, ap)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateTime().Before(out[j].DateTime())
	})
	return out, nil
}
