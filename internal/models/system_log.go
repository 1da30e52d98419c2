package models

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SystemLog is an append-only audit record. ID is the storage key and is
// never written into the record.
type SystemLog struct {
	ID           string `json:"id"`
	ActionType   string `json:"action"`
	Description  string `json:"details"`
	TargetEntity string `json:"entity"`
	EntityID     string `json:"entityId"`
	ActorID      string `json:"performedBy"`
	EventTime    string `json:"timestamp"`
}

func NewSystemLog(action, details, entity, entityID, actor string, at time.Time) (SystemLog, error) {
	l := SystemLog{
		ActionType:   action,
		Description:  details,
		TargetEntity: entity,
		EntityID:     entityID,
		ActorID:      actor,
		EventTime:    FormatTimestamp(at),
	}
	if err := l.Validate(); err != nil {
		return SystemLog{}, err
	}
	return l, nil
}

func (l SystemLog) Validate() error {
	err := validation.Errors{
		"action":      validation.Validate(strings.TrimSpace(l.ActionType), validation.Required),
		"entity":      validation.Validate(strings.TrimSpace(l.TargetEntity), validation.Required),
		"entityId":    validation.Validate(strings.TrimSpace(l.EntityID), validation.Required),
		"performedBy": validation.Validate(strings.TrimSpace(l.ActorID), validation.Required),
		"timestamp":   validation.Validate(l.EventTime, validation.Required, validation.Date(time.RFC3339Nano)),
	}.Filter()
	return invalid("system log", err)
}

func (l SystemLog) IsValid() bool {
	return l.Validate() == nil
}

func (l SystemLog) ToMap() map[string]any {
	return map[string]any{
		"action":      l.ActionType,
		"details":     l.Description,
		"entity":      l.TargetEntity,
		"entityId":    l.EntityID,
		"performedBy": l.ActorID,
		"timestamp":   l.EventTime,
	}
}

func SystemLogFromMap(key string, m map[string]any) (SystemLog, error) {
	ts := m["timestamp"]
	eventTime, ok := ts.(string)
	if !ok && ts != nil {
		t, err := ParseTimestamp(ts)
		if err != nil {
			return SystemLog{}, err
		}
		eventTime = FormatTimestamp(t)
	}

	l := SystemLog{
		ID:           key,
		ActionType:   str(m, "action"),
		Description:  str(m, "details"),
		TargetEntity: str(m, "entity"),
		EntityID:     str(m, "entityId"),
		ActorID:      str(m, "performedBy"),
		EventTime:    eventTime,
	}
	if err := l.Validate(); err != nil {
		return SystemLog{}, err
	}
	return l, nil
}
