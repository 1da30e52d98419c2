package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const clockLayout = "15:04"

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

var weekdayKeys = [...]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// WeekdayKey is the key a day's hours are stored under.
func WeekdayKey(d time.Weekday) string {
	return weekdayKeys[d]
}

func ParseWeekdayKey(key string) (time.Weekday, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for i, k := range weekdayKeys {
		if k == key {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// BusinessDay holds one weekday's opening hours as HH:mm clock strings; an
// empty string means the bound is absent.
type BusinessDay struct {
	IsOpen     bool   `json:"isOpen"`
	Start      string `json:"start,omitempty"`
	End        string `json:"end,omitempty"`
	BreakStart string `json:"breakStart,omitempty"`
	BreakEnd   string `json:"breakEnd,omitempty"`
}

func NewBusinessDay(isOpen bool, start, end, breakStart, breakEnd string) (BusinessDay, error) {
	d := BusinessDay{IsOpen: isOpen, Start: start, End: end, BreakStart: breakStart, BreakEnd: breakEnd}
	if err := d.Validate(); err != nil {
		return BusinessDay{}, err
	}
	return d, nil
}

func (d BusinessDay) Validate() error {
	if !d.IsOpen {
		return nil
	}

	clock := validation.Match(clockPattern).Error("must be HH:mm")

	errs := validation.Errors{
		"start":      validation.Validate(d.Start, validation.Required, clock),
		"end":        validation.Validate(d.End, validation.Required, clock),
		"breakStart": validation.Validate(d.BreakStart, clock),
		"breakEnd":   validation.Validate(d.BreakEnd, clock),
	}
	if err := errs.Filter(); err != nil {
		return invalid("business day", err)
	}

	if (d.BreakStart == "") != (d.BreakEnd == "") {
		return invalid("business day", validation.Errors{
			"break": errors.New("break start and end must be set together"),
		})
	}
	if d.End <= d.Start {
		return invalid("business day", validation.Errors{"end": errors.New("must be after start")})
	}
	if d.HasBreak() && (d.BreakEnd <= d.BreakStart || d.BreakStart < d.Start || d.BreakEnd > d.End) {
		return invalid("business day", validation.Errors{"break": errors.New("must fall inside opening hours")})
	}
	return nil
}

func (d BusinessDay) IsValid() bool {
	return d.Validate() == nil
}

func (d BusinessDay) HasBreak() bool {
	return d.BreakStart != "" && d.BreakEnd != ""
}

func (d BusinessDay) FormattedHours() string {
	if !d.IsOpen {
		return "Closed"
	}
	if d.HasBreak() {
		return fmt.Sprintf("%s - %s (Break: %s - %s)", d.Start, d.End, d.BreakStart, d.BreakEnd)
	}
	return fmt.Sprintf("%s - %s", d.Start, d.End)
}

// Contains reports whether an HH:mm clock time falls within opening hours,
// bounds included.
func (d BusinessDay) Contains(clock string) bool {
	if !d.IsOpen || d.Start == "" || d.End == "" {
		return false
	}
	if !clockPattern.MatchString(clock) {
		return false
	}
	return clock >= d.Start && clock <= d.End
}

// ClockOn anchors an HH:mm bound to date's calendar day in loc.
func ClockOn(date time.Time, clock string, loc *time.Location) (time.Time, bool) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, false
	}
	y, m, day := date.In(loc).Date()
	return time.Date(y, m, day, t.Hour(), t.Minute(), 0, 0, loc), true
}

func (d BusinessDay) ToMap() map[string]any {
	m := map[string]any{"isOpen": d.IsOpen}
	putString(m, "start", d.Start)
	putString(m, "end", d.End)
	putString(m, "breakStart", d.BreakStart)
	putString(m, "breakEnd", d.BreakEnd)
	return m
}

func BusinessDayFromMap(_ string, m map[string]any) (BusinessDay, error) {
	return NewBusinessDay(
		boolOr(m, "isOpen", false),
		str(m, "start"),
		str(m, "end"),
		str(m, "breakStart"),
		str(m, "breakEnd"),
	)
}
