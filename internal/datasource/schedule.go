package datasource

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
)

type weekdayHours struct {
	day   time.Weekday
	hours models.BusinessDay
}

func decodeWeekdayHours(key string, m map[string]any) (weekdayHours, error) {
	day, ok := models.ParseWeekdayKey(key)
	if !ok {
		return weekdayHours{}, fmt.Errorf("unknown weekday %q", key)
	}
	hours, err := models.BusinessDayFromMap(key, m)
	if err != nil {
		return weekdayHours{}, err
	}
	return weekdayHours{day: day, hours: hours}, nil
}

// BusinessHours returns the stored hours by weekday. Days without a record
// are absent from the map.
func (s *Source) BusinessHours(ctx context.Context) (map[time.Weekday]models.BusinessDay, error) {
	list, err := FetchList(ctx, s, PathBusinessHours, decodeWeekdayHours)
	if err != nil {
		return nil, err
	}
	out := make(map[time.Weekday]models.BusinessDay, len(list))
	for _, wh := range list {
		out[wh.day] = wh.hours
	}
	return out, nil
}

func (s *Source) BusinessDay(ctx context.Context, day time.Weekday) (models.BusinessDay, error) {
	return FetchOne(ctx, s, remote.Join(PathBusinessHours, models.WeekdayKey(day)), models.BusinessDayFromMap)
}

func (s *Source) PutBusinessDay(ctx context.Context, day time.Weekday, hours models.BusinessDay) error {
	if err := hours.Validate(); err != nil {
		return err
	}
	return s.Put(ctx, remote.Join(PathBusinessHours, models.WeekdayKey(day)), hours.ToMap())
}

func (s *Source) BlockedDates(ctx context.Context) ([]models.BlockedDate, error) {
	return FetchList(ctx, s, PathBlockedDates, models.BlockedDateFromMap)
}

// AddBlockedDate stores a new blocked day under a fresh push key, which
// also becomes its id.
func (s *Source) AddBlockedDate(ctx context.Context, date, reason, createdBy string, at time.Time) (models.BlockedDate, error) {
	key, err := remote.NewPushKey()
	if err != nil {
		return models.BlockedDate{}, ErrCreationFailed
	}
	b, err := models.NewBlockedDate(key, date, reason, createdBy, at)
	if err != nil {
		return models.BlockedDate{}, err
	}
	if err := s.Put(ctx, remote.Join(PathBlockedDates, key), b.ToMap()); err != nil {
		return models.BlockedDate{}, err
	}
	return b, nil
}

func (s *Source) RemoveBlockedDate(ctx context.Context, id string) error {
	path := remote.Join(PathBlockedDates, id)
	if _, err := FetchOne(ctx, s, path, models.BlockedDateFromMap); err != nil {
		return err
	}
	return s.Remove(ctx, path)
}
