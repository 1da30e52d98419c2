package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// LogWriter appends audit records; datasource.Source implements it.
type LogWriter interface {
	AppendLog(ctx context.Context, l models.SystemLog) (string, error)
}

type Logger struct {
	writer LogWriter
	now    func() time.Time
}

func New(writer LogWriter) *Logger {
	return &Logger{writer: writer, now: time.Now}
}

func (l *Logger) Log(ctx context.Context, ev Event) error {
	details := ev.Details
	if details == "" && ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			details = string(b)
		}
	}

	entry, err := models.NewSystemLog(
		ev.Action,
		details,
		ev.Entity,
		ev.EntityID,
		ev.ActorID,
		l.now(),
	)
	if err != nil {
		return err
	}

	_, err = l.writer.AppendLog(ctx, entry)
	return err
}
