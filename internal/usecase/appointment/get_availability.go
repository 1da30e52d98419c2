package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo, now: time.Now}
}

// Execute lists the free slots of in.Date for the combined duration of the
// requested services.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	_, duration, _, err := bookingLines(ctx, uc.repo, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	settings, err := uc.repo.GetBusinessSettings(ctx)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(settings.Timezone)

	date, next := timezone.Day(in.Date, loc)

	blocked, err := uc.repo.IsDateBlocked(ctx, date.Format(models.DateLayout))
	if err != nil {
		return nil, err
	}
	if blocked {
		return []domain.TimeSlot{}, nil
	}

	day, err := uc.repo.GetBusinessDay(ctx, date.Weekday())
	if err != nil {
		return nil, err
	}
	if !day.IsOpen {
		return []domain.TimeSlot{}, nil
	}

	booked, err := uc.repo.ListAppointmentsForPeriod(ctx, date, next)
	if err != nil {
		return nil, err
	}

	return domain.Slots(domain.SlotRequest{
		Day:      day,
		Date:     date,
		Location: loc,
		Duration: time.Duration(duration) * time.Minute,
		Buffer:   time.Duration(settings.AppointmentBufferMinutes) * time.Minute,
		Booked:   booked,
		Now:      uc.now(),
	}), nil
}
