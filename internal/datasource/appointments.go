package datasource

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

func (s *Source) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return FetchList(ctx, s, PathAppointments, models.AppointmentFromMap)
}

func (s *Source) Appointment(ctx context.Context, id string) (models.Appointment, error) {
	return FetchOne(ctx, s, remote.Join(PathAppointments, id), models.AppointmentFromMap)
}

func (s *Source) ObserveAppointments() *Feed[models.Appointment] {
	return Observe(s, PathAppointments, models.AppointmentFromMap)
}

// CreateAppointment appends a new booking; the returned key is its id.
func (s *Source) CreateAppointment(ctx context.Context, a models.Appointment) (string, error) {
	m := a.ToMap()
	delete(m, "id")
	m["createdAt"] = remote.ServerTimestamp
	m["updatedAt"] = remote.ServerTimestamp
	return s.Append(ctx, PathAppointments, m)
}

func (s *Source) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	return s.Update(ctx, remote.Join(PathAppointments, id), map[string]any{"status": string(status)})
}

func (s *Source) ReplaceAppointment(ctx context.Context, a models.Appointment) error {
	m := a.ToMap()
	m["updatedAt"] = remote.ServerTimestamp
	return s.Put(ctx, remote.Join(PathAppointments, a.ID()), m)
}
