package models

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const DefaultAppointmentBuffer = 15

type BusinessSettings struct {
	BusinessName             string `json:"businessName"`
	Address                  string `json:"address"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	Currency                 string `json:"currency"`
	Timezone                 string `json:"timezone"`
	AppointmentBufferMinutes int    `json:"appointmentBufferMinutes"`
	CancellationPolicy       string `json:"cancellationPolicy"`
	LastUpdated              string `json:"lastUpdated"`
}

func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		Currency:                 DefaultCurrency,
		Timezone:                 timezone.DefaultTimezone,
		AppointmentBufferMinutes: DefaultAppointmentBuffer,
	}
}

func (s BusinessSettings) Validate() error {
	err := validation.Errors{
		"name":  validation.Validate(strings.TrimSpace(s.BusinessName), validation.Required),
		"email": validation.Validate(s.Email, validation.Required),
		"timezone": validation.Validate(s.Timezone,
			validation.Required,
			validation.By(func(any) error {
				if !timezone.IsValid(s.Timezone) {
					return errors.New("unknown time zone")
				}
				return nil
			}),
		),
		"appointmentBuffer": validation.Validate(s.AppointmentBufferMinutes, validation.Min(0)),
	}.Filter()
	return invalid("business settings", err)
}

func (s BusinessSettings) IsValid() bool {
	return s.Validate() == nil
}

func (s BusinessSettings) ToMap() map[string]any {
	return map[string]any{
		"name":               s.BusinessName,
		"address":            s.Address,
		"email":              s.Email,
		"phone":              s.Phone,
		"currency":           s.Currency,
		"timezone":           s.Timezone,
		"appointmentBuffer":  s.AppointmentBufferMinutes,
		"cancellationPolicy": s.CancellationPolicy,
		"updatedAt":          s.LastUpdated,
	}
}

func BusinessSettingsFromMap(_ string, m map[string]any) (BusinessSettings, error) {
	updated := m["updatedAt"]
	lastUpdated, _ := updated.(string)
	if _, ok := updated.(string); !ok && updated != nil {
		t, err := ParseTimestamp(updated)
		if err != nil {
			return BusinessSettings{}, err
		}
		lastUpdated = FormatTimestamp(t)
	}

	b := BusinessSettings{
		BusinessName:             str(m, "name"),
		Address:                  str(m, "address"),
		Email:                    str(m, "email"),
		Phone:                    str(m, "phone"),
		Currency:                 strOr(m, "currency", DefaultCurrency),
		Timezone:                 strOr(m, "timezone", timezone.DefaultTimezone),
		AppointmentBufferMinutes: intOr(m, "appointmentBuffer", DefaultAppointmentBuffer),
		CancellationPolicy:       str(m, "cancellationPolicy"),
		LastUpdated:              lastUpdated,
	}
	if err := b.Validate(); err != nil {
		return BusinessSettings{}, err
	}
	return b, nil
}
