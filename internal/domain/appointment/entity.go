package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanConfirm(ap.Status()); err != nil {
		return ap, err
	}
	return ap.WithStatus(models.StatusConfirmed, now), nil
}

func Cancel(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanCancel(ap.Status()); err != nil {
		return ap, err
	}
	return ap.WithStatus(models.StatusCancelled, now), nil
}

func Complete(ap models.Appointment, now time.Time) (models.Appointment, error) {
	if err := CanComplete(ap.Status()); err != nil {
		return ap, err
	}
	return ap.WithStatus(models.StatusCompleted, now), nil
}
