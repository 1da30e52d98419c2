package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// BY DATE
// ======================================================

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	settings, err := uc.repo.GetBusinessSettings(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(settings.Timezone)

	start, end := timezone.Day(date, loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments, loc), nil
}

// ======================================================
// BY MONTH
// ======================================================

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	settings, err := uc.repo.GetBusinessSettings(ctx)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(settings.Timezone)

	start, end := timezone.Month(year, time.Month(month), loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments, loc), nil
}

// ======================================================
// BY CLIENT
// ======================================================

type ListClientAppointments struct {
	repo domain.Repository
}

func NewListClientAppointments(
	repo domain.Repository,
) *ListClientAppointments {
	return &ListClientAppointments{
		repo: repo,
	}
}

func (uc *ListClientAppointments) Execute(
	ctx context.Context,
	clientID string,
) ([]dto.AppointmentListDTO, error) {

	settings, err := uc.repo.GetBusinessSettings(ctx)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return dto.AppointmentList(appointments, timezone.Location(settings.Timezone)), nil
}
