package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type transitionFunc func(models.Appointment, time.Time) (models.Appointment, error)

// changeStatus loads the booking, applies the transition and stores the new
// status.
func changeStatus(
	ctx context.Context,
	repo domain.Repository,
	dispatcher *audit.Dispatcher,
	actor Actor,
	appointmentID string,
	now time.Time,
	apply transitionFunc,
	action string,
) (models.Appointment, error) {

	ap, err := loadAppointment(ctx, repo, appointmentID)
	if err != nil {
		return models.Appointment{}, err
	}

	updated, err := apply(ap, now)
	if err != nil {
		return models.Appointment{}, err
	}

	if err := repo.UpdateAppointmentStatus(ctx, updated); err != nil {
		return models.Appointment{}, err
	}

	dispatcher.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   action,
		Entity:   "appointment",
		EntityID: updated.ID(),
		Details:  string(ap.Status()) + " -> " + string(updated.Status()),
	})

	return updated, nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, audit: audit, now: time.Now}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID string,
) (models.Appointment, error) {

	if !actor.IsAdmin() {
		return models.Appointment{}, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return changeStatus(ctx, uc.repo, uc.audit, actor, appointmentID, uc.now(), domain.Confirm, "APPOINTMENT_CONFIRMED")
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, audit: audit, now: time.Now}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID string,
) (models.Appointment, error) {

	if !actor.IsAdmin() {
		return models.Appointment{}, httperr.ErrBusiness(httperr.CodeForbidden)
	}
	return changeStatus(ctx, uc.repo, uc.audit, actor, appointmentID, uc.now(), domain.Complete, "APPOINTMENT_COMPLETED")
}
