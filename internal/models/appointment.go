package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

var phonePattern = regexp.MustCompile(`^\+?[0-9\s-]+$`)

// AppointmentService is a booked line: a snapshot of the catalog entry at
// booking time.
type AppointmentService struct {
	ServiceID string `json:"serviceId"`
	Name      string `json:"name"`
	Duration  int    `json:"duration"`
	Price     int    `json:"price"`
}

type AppointmentInput struct {
	ID          string
	ClientEmail string
	ClientID    string
	ClientPhone string
	DateTime    time.Time
	Duration    int
	Services    []AppointmentService
	Status      AppointmentStatus
	TotalPrice  int
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Appointment struct {
	id          string
	clientEmail string
	clientID    string
	clientPhone string
	dateTime    time.Time
	duration    int
	services    []AppointmentService
	status      AppointmentStatus
	totalPrice  int
	notes       string
	createdAt   time.Time
	updatedAt   time.Time
}

func NewAppointment(in AppointmentInput) (Appointment, error) {
	if in.Status == "" {
		in.Status = StatusPending
	}

	err := validation.Errors{
		"duration": validation.Validate(in.Duration,
			validation.Required.Error("duration must be positive"),
			validation.Min(1).Error("duration must be positive"),
		),
		"totalPrice": validation.Validate(in.TotalPrice,
			validation.Min(0).Error("price cannot be negative"),
		),
		"services": validation.Validate(in.Services,
			validation.Required.Error("at least one service is required"),
			validation.By(checkServiceLines),
		),
		"clientPhone": validation.Validate(in.ClientPhone,
			validation.Required.Error("phone number is required"),
			validation.Match(phonePattern).Error("invalid phone number format"),
		),
		"status": validation.Validate(in.Status, validation.By(func(any) error {
			if !in.Status.Valid() {
				return errors.New("unknown status")
			}
			return nil
		})),
	}.Filter()
	if err != nil {
		return Appointment{}, invalid("appointment", err)
	}

	return Appointment{
		id:          in.ID,
		clientEmail: in.ClientEmail,
		clientID:    in.ClientID,
		clientPhone: in.ClientPhone,
		dateTime:    in.DateTime,
		duration:    in.Duration,
		services:    append([]AppointmentService(nil), in.Services...),
		status:      in.Status,
		totalPrice:  in.TotalPrice,
		notes:       in.Notes,
		createdAt:   in.CreatedAt,
		updatedAt:   in.UpdatedAt,
	}, nil
}

func checkServiceLines(v any) error {
	lines, _ := v.([]AppointmentService)
	for _, l := range lines {
		if strings.TrimSpace(l.ServiceID) == "" {
			return errors.New("service line without service id")
		}
	}
	return nil
}

func (a Appointment) ID() string                { return a.id }
func (a Appointment) ClientEmail() string       { return a.clientEmail }
func (a Appointment) ClientID() string          { return a.clientID }
func (a Appointment) ClientPhone() string       { return a.clientPhone }
func (a Appointment) DateTime() time.Time       { return a.dateTime }
func (a Appointment) Duration() int             { return a.duration }
func (a Appointment) Status() AppointmentStatus { return a.status }
func (a Appointment) TotalPrice() int           { return a.totalPrice }
func (a Appointment) Notes() string             { return a.notes }
func (a Appointment) CreatedAt() time.Time      { return a.createdAt }
func (a Appointment) UpdatedAt() time.Time      { return a.updatedAt }

func (a Appointment) Services() []AppointmentService {
	return append([]AppointmentService(nil), a.services...)
}

func (a Appointment) End() time.Time {
	return a.dateTime.Add(time.Duration(a.duration) * time.Minute)
}

// Overlaps reports whether the two bookings intersect once each is padded
// by buffer on its end.
func (a Appointment) Overlaps(other Appointment, buffer time.Duration) bool {
	return a.dateTime.Before(other.End().Add(buffer)) &&
		other.dateTime.Before(a.End().Add(buffer))
}

func (a Appointment) Input() AppointmentInput {
	return AppointmentInput{
		ID:          a.id,
		ClientEmail: a.clientEmail,
		ClientID:    a.clientID,
		ClientPhone: a.clientPhone,
		DateTime:    a.dateTime,
		Duration:    a.duration,
		Services:    a.Services(),
		Status:      a.status,
		TotalPrice:  a.totalPrice,
		Notes:       a.notes,
		CreatedAt:   a.createdAt,
		UpdatedAt:   a.updatedAt,
	}
}

func (a Appointment) WithID(id string) Appointment {
	a.id = id
	return a
}

func (a Appointment) WithStatus(status AppointmentStatus, at time.Time) Appointment {
	a.status = status
	a.updatedAt = at
	a.services = a.Services()
	return a
}

func (a Appointment) ToMap() map[string]any {
	lines := make([]any, 0, len(a.services))
	for _, s := range a.services {
		lines = append(lines, map[string]any{
			"serviceId": s.ServiceID,
			"name":      s.Name,
			"duration":  s.Duration,
			"price":     s.Price,
		})
	}

	m := map[string]any{
		"clientEmail": a.clientEmail,
		"clientId":    a.clientID,
		"clientPhone": a.clientPhone,
		"dateTime":    FormatTimestamp(a.dateTime),
		"duration":    a.duration,
		"services":    lines,
		"status":      string(a.status),
		"totalPrice":  a.totalPrice,
	}
	putString(m, "id", a.id)
	putString(m, "notes", a.notes)
	putTime(m, "createdAt", a.createdAt)
	putTime(m, "updatedAt", a.updatedAt)
	return m
}

// AppointmentFromMap decodes a stored record; key is its path key and stands
// in for a missing id.
func AppointmentFromMap(key string, m map[string]any) (Appointment, error) {
	dateTime, err := timeAt(m, "dateTime")
	if err != nil {
		return Appointment{}, err
	}
	createdAt, err := timeAt(m, "createdAt")
	if err != nil {
		return Appointment{}, err
	}
	updatedAt, err := timeAt(m, "updatedAt")
	if err != nil {
		return Appointment{}, err
	}

	var lines []AppointmentService
	for _, l := range mapList(m["services"]) {
		lines = append(lines, AppointmentService{
			ServiceID: str(l, "serviceId"),
			Name:      str(l, "name"),
			Duration:  intOr(l, "duration", 0),
			Price:     intOr(l, "price", 0),
		})
	}

	return NewAppointment(AppointmentInput{
		ID:          orDefault(str(m, "id"), key),
		ClientEmail: str(m, "clientEmail"),
		ClientID:    str(m, "clientId"),
		ClientPhone: str(m, "clientPhone"),
		DateTime:    dateTime,
		Duration:    intOr(m, "duration", 0),
		Services:    lines,
		Status:      AppointmentStatus(strOr(m, "status", string(StatusPending))),
		TotalPrice:  intOr(m, "totalPrice", 0),
		Notes:       str(m, "notes"),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	})
}
