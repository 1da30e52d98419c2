package dto

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID           string    `json:"id"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	ClientID     string    `json:"client_id"`
	ClientEmail  string    `json:"client_email"`
	ClientPhone  string    `json:"client_phone"`
	ServiceNames []string  `json:"service_names"`
	TotalPrice   int       `json:"total_price"`
	Notes        string    `json:"notes,omitempty"`
}

func AppointmentList(appointments []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		names := make([]string, 0, len(ap.Services()))
		for _, line := range ap.Services() {
			names = append(names, line.Name)
		}
		out = append(out, AppointmentListDTO{
			ID:           ap.ID(),
			StartTime:    ap.DateTime().In(loc),
			EndTime:      ap.End().In(loc),
			Status:       string(ap.Status()),
			ClientID:     ap.ClientID(),
			ClientEmail:  ap.ClientEmail(),
			ClientPhone:  ap.ClientPhone(),
			ServiceNames: names,
			TotalPrice:   ap.TotalPrice(),
			Notes:        ap.Notes(),
		})
	}
	return out
}
