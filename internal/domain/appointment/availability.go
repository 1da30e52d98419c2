package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	Date       time.Time
	ServiceIDs []string
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SlotRequest describes one day's bookable window.
type SlotRequest struct {
	Day      models.BusinessDay
	Date     time.Time
	Location *time.Location
	Duration time.Duration
	Buffer   time.Duration
	Booked   []models.Appointment
	Now      time.Time
}

// Slots lists back-to-back slots of the requested duration that fit the
// opening hours, miss the break, start after Now and keep Buffer clear of
// every blocking booking.
func Slots(req SlotRequest) []TimeSlot {
	slots := []TimeSlot{}
	if !req.Day.IsOpen || req.Duration <= 0 {
		return slots
	}

	dayStart, ok1 := models.ClockOn(req.Date, req.Day.Start, req.Location)
	dayEnd, ok2 := models.ClockOn(req.Date, req.Day.End, req.Location)
	if !ok1 || !ok2 {
		return slots
	}

	for cur := dayStart; !cur.Add(req.Duration).After(dayEnd); cur = cur.Add(req.Duration) {
		slotStart := cur
		slotEnd := cur.Add(req.Duration)

		if slotStart.Before(req.Now) {
			continue
		}
		if inBreak(req.Day, req.Date, req.Location, slotStart, slotEnd) {
			continue
		}
		if conflicts(slotStart, slotEnd, req.Booked, req.Buffer, "") {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: slotStart.Format("15:04"),
			End:   slotEnd.Format("15:04"),
		})
	}

	return slots
}

func inBreak(day models.BusinessDay, date time.Time, loc *time.Location, start, end time.Time) bool {
	if !day.HasBreak() {
		return false
	}
	breakStart, ok1 := models.ClockOn(date, day.BreakStart, loc)
	breakEnd, ok2 := models.ClockOn(date, day.BreakEnd, loc)
	return ok1 && ok2 && start.Before(breakEnd) && end.After(breakStart)
}

// conflicts ignores non-blocking bookings and the booking named skipID.
func conflicts(start, end time.Time, booked []models.Appointment, buffer time.Duration, skipID string) bool {
	for _, ap := range booked {
		if !Blocking(ap.Status()) || (skipID != "" && ap.ID() == skipID) {
			continue
		}
		if start.Before(ap.End().Add(buffer)) && ap.DateTime().Before(end.Add(buffer)) {
			return true
		}
	}
	return false
}
