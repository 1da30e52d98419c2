package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultNoticeHours = 24
	maxNoticeHours     = 168
)

type ReminderSettings struct {
	Enabled                bool   `json:"enabled"`
	HoursBeforeAppointment int    `json:"hoursBeforeAppointment"`
	Message                string `json:"message"`
}

// FormattedMessage fills the {time} placeholder of the reminder template.
func (r ReminderSettings) FormattedMessage(at string) string {
	return strings.ReplaceAll(r.Message, "{time}", at)
}

type CancellationPolicySettings struct {
	Enabled            bool `json:"enabled"`
	MinimumNoticeHours int  `json:"minimumHours"`
}

type NotificationSettings struct {
	Reminder             ReminderSettings           `json:"appointmentReminder"`
	Cancellation         CancellationPolicySettings `json:"cancellationNotice"`
	RequiresConfirmation bool                       `json:"confirmationRequired"`
}

func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		Reminder:     ReminderSettings{HoursBeforeAppointment: DefaultNoticeHours},
		Cancellation: CancellationPolicySettings{MinimumNoticeHours: DefaultNoticeHours},
	}
}

func noticeHours() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("must be between 1 and 168"),
		validation.Min(1).Error("must be between 1 and 168"),
		validation.Max(maxNoticeHours).Error("must be between 1 and 168"),
	}
}

func (s NotificationSettings) Validate() error {
	err := validation.Errors{
		"hoursBeforeAppointment": validation.Validate(s.Reminder.HoursBeforeAppointment, noticeHours()...),
		"minimumHours":           validation.Validate(s.Cancellation.MinimumNoticeHours, noticeHours()...),
	}.Filter()
	return invalid("notification settings", err)
}

func (s NotificationSettings) IsValid() bool {
	return s.Validate() == nil
}

func (s NotificationSettings) ToMap() map[string]any {
	return map[string]any{
		"appointmentReminder": map[string]any{
			"enabled":                s.Reminder.Enabled,
			"hoursBeforeAppointment": s.Reminder.HoursBeforeAppointment,
			"message":                s.Reminder.Message,
		},
		"cancellationNotice": map[string]any{
			"enabled":      s.Cancellation.Enabled,
			"minimumHours": s.Cancellation.MinimumNoticeHours,
		},
		"confirmationRequired": s.RequiresConfirmation,
	}
}

func NotificationSettingsFromMap(_ string, m map[string]any) (NotificationSettings, error) {
	reminder := submap(m, "appointmentReminder")
	notice := submap(m, "cancellationNotice")
	s := NotificationSettings{
		Reminder: ReminderSettings{
			Enabled:                boolOr(reminder, "enabled", false),
			HoursBeforeAppointment: intOr(reminder, "hoursBeforeAppointment", DefaultNoticeHours),
			Message:                str(reminder, "message"),
		},
		Cancellation: CancellationPolicySettings{
			Enabled:            boolOr(notice, "enabled", false),
			MinimumNoticeHours: intOr(notice, "minimumHours", DefaultNoticeHours),
		},
		RequiresConfirmation: boolOr(m, "confirmationRequired", false),
	}
	if err := s.Validate(); err != nil {
		return NotificationSettings{}, err
	}
	return s, nil
}
