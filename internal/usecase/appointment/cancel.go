package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   time.Now,
	}
}

// Execute cancels a booking. Clients may only cancel their own bookings and,
// when the cancellation notice is enabled, not inside the notice window.
// Admins are not bound by either rule.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor Actor,
	appointmentID string,
) (models.Appointment, error) {

	now := uc.now()

	guard := func(ap models.Appointment, at time.Time) (models.Appointment, error) {
		if actor.IsAdmin() {
			return domain.Cancel(ap, at)
		}
		if ap.ClientID() != actor.ID {
			return ap, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}

		notify, err := uc.repo.GetNotificationSettings(ctx)
		if err != nil {
			return ap, err
		}
		policy := notify.Cancellation
		notice := time.Duration(policy.MinimumNoticeHours) * time.Hour
		if policy.Enabled && ap.DateTime().Sub(at) < notice {
			return ap, httperr.ErrBusiness(httperr.CodeNoticeTooShort)
		}
		return domain.Cancel(ap, at)
	}

	return changeStatus(ctx, uc.repo, uc.audit, actor, appointmentID, now, guard, "APPOINTMENT_CANCELLED")
}
