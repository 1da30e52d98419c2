package appointment

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Appointment Status
// ===============================

var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

// ===============================
// Validations
// ===============================

// CanTransition reports whether a booking may move from current to next.
// Cancelled and completed bookings are final.
func CanTransition(current, next models.AppointmentStatus) error {
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func CanConfirm(current models.AppointmentStatus) error {
	return CanTransition(current, models.StatusConfirmed)
}

func CanCancel(current models.AppointmentStatus) error {
	return CanTransition(current, models.StatusCancelled)
}

func CanComplete(current models.AppointmentStatus) error {
	return CanTransition(current, models.StatusCompleted)
}

// InitialStatus is the status of a new booking.
func InitialStatus(requiresConfirmation bool) models.AppointmentStatus {
	if requiresConfirmation {
		return models.StatusPending
	}
	return models.StatusConfirmed
}

// Blocking reports whether a booking in status s occupies its time slot.
func Blocking(s models.AppointmentStatus) bool {
	return s == models.StatusPending || s == models.StatusConfirmed
}
