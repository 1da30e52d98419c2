package datasource

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// AppendLog stores an audit record; logs are never updated afterwards.
func (s *Source) AppendLog(ctx context.Context, l models.SystemLog) (string, error) {
	if err := l.Validate(); err != nil {
		return "", err
	}
	return s.Append(ctx, PathLogs, l.ToMap())
}

// Logs returns audit records oldest first.
func (s *Source) Logs(ctx context.Context) ([]models.SystemLog, error) {
	return FetchList(ctx, s, PathLogs, models.SystemLogFromMap)
}
