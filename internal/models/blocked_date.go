package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const DateLayout = "2006-01-02"

type BlockedDate struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Reason    string `json:"reason"`
	CreatedBy string `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewBlockedDate(id, date, reason, createdBy string, at time.Time) (BlockedDate, error) {
	b := BlockedDate{
		ID:        id,
		Date:      date,
		Reason:    reason,
		CreatedBy: createdBy,
		CreatedAt: FormatTimestamp(at),
		UpdatedAt: FormatTimestamp(at),
	}
	if err := b.Validate(); err != nil {
		return BlockedDate{}, err
	}
	return b, nil
}

func (b BlockedDate) Validate() error {
	err := validation.Errors{
		"id":        validation.Validate(strings.TrimSpace(b.ID), validation.Required),
		"date":      validation.Validate(b.Date, validation.Required, validation.Date(DateLayout)),
		"reason":    validation.Validate(strings.TrimSpace(b.Reason), validation.Required),
		"createdBy": validation.Validate(strings.TrimSpace(b.CreatedBy), validation.Required),
	}.Filter()
	return invalid("blocked date", err)
}

func (b BlockedDate) IsValid() bool {
	return b.Validate() == nil
}

// Day returns the blocked calendar day at midnight in loc.
func (b BlockedDate) Day(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, b.Date, loc)
}

func (b BlockedDate) FormattedDate() string {
	d, err := time.Parse(DateLayout, b.Date)
	if err != nil {
		return b.Date
	}
	return d.Format("January 02, 2006")
}

func (b BlockedDate) ToMap() map[string]any {
	return map[string]any{
		"id":        b.ID,
		"date":      b.Date,
		"reason":    b.Reason,
		"createdBy": b.CreatedBy,
		"createdAt": b.CreatedAt,
		"updatedAt": b.UpdatedAt,
	}
}

func BlockedDateFromMap(key string, m map[string]any) (BlockedDate, error) {
	b := BlockedDate{
		ID:        orDefault(str(m, "id"), key),
		Date:      str(m, "date"),
		Reason:    str(m, "reason"),
		CreatedBy: str(m, "createdBy"),
		CreatedAt: str(m, "createdAt"),
		UpdatedAt: str(m, "updatedAt"),
	}
	if err := b.Validate(); err != nil {
		return BlockedDate{}, err
	}
	return b, nil
}
