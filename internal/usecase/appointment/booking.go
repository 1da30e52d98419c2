package appointment

import (
	"context"
	"math"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   string
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

const dateTimeLayout = "2006-01-02 15:04"

// bookingLines snapshots the requested catalog entries as appointment lines.
func bookingLines(
	ctx context.Context,
	repo domain.Repository,
	serviceIDs []string,
) ([]models.AppointmentService, int, int, error) {

	if len(serviceIDs) == 0 {
		return nil, 0, 0, httperr.ErrBusiness(httperr.CodeServicesRequired)
	}

	lines := make([]models.AppointmentService, 0, len(serviceIDs))
	duration, total := 0, 0

	for _, id := range serviceIDs {
		svc, err := repo.GetService(ctx, id)
		if datasource.IsNotFound(err) {
			return nil, 0, 0, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		if err != nil {
			return nil, 0, 0, err
		}
		if !svc.IsActive() {
			return nil, 0, 0, httperr.ErrBusiness(httperr.CodeServiceUnavailable)
		}

		price := int(math.Round(svc.Price()))
		lines = append(lines, models.AppointmentService{
			ServiceID: svc.ID(),
			Name:      svc.Name(),
			Duration:  svc.Duration(),
			Price:     price,
		})
		duration += svc.Duration()
		total += price
	}

	return lines, duration, total, nil
}

// checkSlot applies the booking rules to [start, end). skipID names a
// booking that is being moved and must not conflict with itself.
func checkSlot(
	ctx context.Context,
	repo domain.Repository,
	settings models.BusinessSettings,
	start time.Time,
	end time.Time,
	now time.Time,
	skipID string,
) error {

	loc := timezone.Location(settings.Timezone)
	start = start.In(loc)

	if start.Before(now) {
		return httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	blocked, err := repo.IsDateBlocked(ctx, start.Format(models.DateLayout))
	if err != nil {
		return err
	}
	if blocked {
		return httperr.ErrBusiness(httperr.CodeDateBlocked)
	}

	day, err := repo.GetBusinessDay(ctx, start.Weekday())
	if err != nil {
		return err
	}
	if err := domain.CheckWithinBusinessHours(day, start, end, loc); err != nil {
		return err
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	booked, err := repo.ListAppointmentsForPeriod(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return err
	}

	buffer := time.Duration(settings.AppointmentBufferMinutes) * time.Minute
	return domain.CheckNoConflict(start, end, booked, buffer, skipID)
}

func parseStart(date, clock string, loc *time.Location) (time.Time, error) {
	start, err := time.ParseInLocation(dateTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	return start, nil
}

func loadAppointment(
	ctx context.Context,
	repo domain.Repository,
	id string,
) (models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if datasource.IsNotFound(err) {
		return models.Appointment{}, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return ap, err
}
