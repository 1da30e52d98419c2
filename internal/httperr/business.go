package httperr

import (
	"errors"
	"net/http"
)

// Business rule codes returned by the scheduling use cases.
const (
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeServiceNotFound      = "service_not_found"
	CodeServiceUnavailable   = "service_unavailable"
	CodeServicesRequired     = "services_required"
	CodeInvalidDateOrTime    = "invalid_date_or_time"
	CodeInvalidState         = "invalid_state"
	CodeForbidden            = "forbidden"
	CodeClosed               = "closed"
	CodeOutsideBusinessHours = "outside_business_hours"
	CodeDateBlocked          = "date_blocked"
	CodeTimeConflict         = "time_conflict"
	CodeTooSoon              = "too_soon"
	CodeNoticeTooShort       = "cancellation_notice_too_short"
)

var businessStatus = map[string]int{
	CodeAppointmentNotFound: http.StatusNotFound,
	CodeServiceNotFound:     http.StatusNotFound,
	CodeForbidden:           http.StatusForbidden,
	CodeTimeConflict:        http.StatusConflict,
}

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// Status is the HTTP status for the code; unlisted codes are 400.
func (e BusinessError) Status() int {
	if status, ok := businessStatus[e.Code]; ok {
		return status
	}
	return http.StatusBadRequest
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}
