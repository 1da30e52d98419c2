package handlers

import (
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	source *datasource.Source
}

func NewAuditLogsHandler(source *datasource.Source) *AuditLogsHandler {
	return &AuditLogsHandler{source: source}
}

// List returns system logs newest first, filtered by action, entity and a
// from/to day range, paginated with page and limit.
func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")

	page := queryInt(c, "page", 1, 0)
	limit := queryInt(c, "limit", 50, 200)

	var from, to time.Time
	if d, ok := parseDay(c.Query("from")); ok {
		from = d
	}
	if d, ok := parseDay(c.Query("to")); ok {
		to = d.Add(24 * time.Hour)
	}

	logs, err := h.source.Logs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	out := make([]models.SystemLog, 0, len(logs))
	for _, l := range logs {
		if action != "" && l.ActionType != action {
			continue
		}
		if entity != "" && l.TargetEntity != entity {
			continue
		}
		at, err := time.Parse(time.RFC3339Nano, l.EventTime)
		if err != nil {
			continue
		}
		if !from.IsZero() && at.Before(from) {
			continue
		}
		if !to.IsZero() && !at.Before(to) {
			continue
		}
		out = append(out, l)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EventTime > out[j].EventTime
	})

	httpresp.Page(c, out, page, limit)
}
