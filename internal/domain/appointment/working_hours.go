package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// CheckWithinBusinessHours validates a booking window against the day's
// hours and break.
func CheckWithinBusinessHours(
	day models.BusinessDay,
	start time.Time,
	end time.Time,
	loc *time.Location,
) error {

	if !day.IsOpen {
		return httperr.ErrBusiness(httperr.CodeClosed)
	}

	workStart, ok1 := models.ClockOn(start, day.Start, loc)
	workEnd, ok2 := models.ClockOn(start, day.End, loc)
	if !ok1 || !ok2 {
		return httperr.ErrBusiness(httperr.CodeClosed)
	}

	if start.Before(workStart) || end.After(workEnd) {
		return httperr.ErrBusiness(httperr.CodeOutsideBusinessHours)
	}

	if inBreak(day, start, loc, start, end) {
		return httperr.ErrBusiness(httperr.CodeOutsideBusinessHours)
	}

	return nil
}

// CheckNoConflict fails when the window collides with a blocking booking,
// padded by buffer. skipID excludes the booking being rescheduled.
func CheckNoConflict(
	start time.Time,
	end time.Time,
	booked []models.Appointment,
	buffer time.Duration,
	skipID string,
) error {
	if conflicts(start, end, booked, buffer, skipID) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return nil
}
