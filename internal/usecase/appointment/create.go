package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    string
	ClientEmail string
	ClientPhone string

	ServiceIDs []string

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (models.Appointment, error) {

	// --------------------------------------------------
	// Settings and start time in the business timezone
	// --------------------------------------------------
	settings, err := uc.repo.GetBusinessSettings(ctx)
	if err != nil {
		return models.Appointment{}, err
	}

	loc := timezone.Location(settings.Timezone)
	start, err := parseStart(in.Date, in.Time, loc)
	if err != nil {
		return models.Appointment{}, err
	}

	// --------------------------------------------------
	// Services
	// --------------------------------------------------
	lines, duration, total, err := bookingLines(ctx, uc.repo, in.ServiceIDs)
	if err != nil {
		return models.Appointment{}, err
	}
	end := start.Add(time.Duration(duration) * time.Minute)

	// --------------------------------------------------
	// Hours, blocked dates and conflicts
	// --------------------------------------------------
	now := uc.now().In(loc)
	if err := checkSlot(ctx, uc.repo, settings, start, end, now, ""); err != nil {
		return models.Appointment{}, err
	}

	// --------------------------------------------------
	// Initial status
	// --------------------------------------------------
	notify, err := uc.repo.GetNotificationSettings(ctx)
	if err != nil {
		return models.Appointment{}, err
	}

	ap, err := models.NewAppointment(models.AppointmentInput{
		ClientID:    in.ClientID,
		ClientEmail: in.ClientEmail,
		ClientPhone: in.ClientPhone,
		DateTime:    start,
		Duration:    duration,
		Services:    lines,
		Status:      domain.InitialStatus(notify.RequiresConfirmation),
		TotalPrice:  total,
		Notes:       in.Notes,
	})
	if err != nil {
		return models.Appointment{}, err
	}

	created, err := uc.repo.CreateAppointment(ctx, ap)
	if err != nil {
		return models.Appointment{}, err
	}

	// --------------------------------------------------
	// Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ClientID,
		Action:   "APPOINTMENT_CREATED",
		Entity:   "appointment",
		EntityID: created.ID(),
		Details:  "Booked " + start.Format(dateTimeLayout),
	})

	return created, nil
}
