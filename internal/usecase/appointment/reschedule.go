package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// RescheduleAppointmentInput replaces the time, services and notes of a
// booking. Empty ServiceIDs keeps the booked services.
type RescheduleAppointmentInput struct {
	AppointmentID string
	ServiceIDs    []string
	Date          string
	Time          string
	Notes         string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actor Actor,
	in RescheduleAppointmentInput,
) (models.Appointment, error) {

	if !actor.IsAdmin() {
		return models.Appointment{}, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	ap, err := loadAppointment(ctx, uc.repo, in.AppointmentID)
	if err != nil {
		return models.Appointment{}, err
	}
	if !domain.Blocking(ap.Status()) {
		return models.Appointment{}, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	settings, err := uc.repo.GetBusinessSettings(ctx)
	if err != nil {
		return models.Appointment{}, err
	}
	loc := timezone.Location(settings.Timezone)

	start, err := parseStart(in.Date, in.Time, loc)
	if err != nil {
		return models.Appointment{}, err
	}

	next := ap.Input()
	if len(in.ServiceIDs) > 0 {
		lines, duration, total, err := bookingLines(ctx, uc.repo, in.ServiceIDs)
		if err != nil {
			return models.Appointment{}, err
		}
		next.Services, next.Duration, next.TotalPrice = lines, duration, total
	}
	next.DateTime = start
	next.Notes = in.Notes

	end := start.Add(time.Duration(next.Duration) * time.Minute)
	now := uc.now().In(loc)
	if err := checkSlot(ctx, uc.repo, settings, start, end, now, ap.ID()); err != nil {
		return models.Appointment{}, err
	}

	replaced, err := models.NewAppointment(next)
	if err != nil {
		return models.Appointment{}, err
	}
	if err := uc.repo.ReplaceAppointment(ctx, replaced); err != nil {
		return models.Appointment{}, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   "APPOINTMENT_RESCHEDULED",
		Entity:   "appointment",
		EntityID: replaced.ID(),
		Details:  ap.DateTime().In(loc).Format(dateTimeLayout) + " -> " + start.Format(dateTimeLayout),
	})

	return replaced, nil
}
