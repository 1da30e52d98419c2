package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ScheduleHandler struct {
	source *datasource.Source
	audit  *audit.Dispatcher
}

func NewScheduleHandler(source *datasource.Source, audit *audit.Dispatcher) *ScheduleHandler {
	return &ScheduleHandler{source: source, audit: audit}
}

var weekOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

type BusinessDayRequest struct {
	IsOpen     bool   `json:"is_open"`
	Start      string `json:"start"`
	End        string `json:"end"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
}

type BlockedDateRequest struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason"`
}

type businessDayResponse struct {
	Weekday        string `json:"weekday"`
	FormattedHours string `json:"formatted_hours"`
	models.BusinessDay
}

// --------- Business hours ---------

// GetHours returns all seven days; days without stored hours are closed.
func (h *ScheduleHandler) GetHours(c *gin.Context) {
	hours, err := h.source.BusinessHours(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]businessDayResponse, 0, len(weekOrder))
	for _, d := range weekOrder {
		day := hours[d]
		out = append(out, businessDayResponse{
			Weekday:        models.WeekdayKey(d),
			FormattedHours: day.FormattedHours(),
			BusinessDay:    day,
		})
	}
	httpresp.List(c, out)
}

func (h *ScheduleHandler) PutDay(c *gin.Context) {
	weekday, ok := models.ParseWeekdayKey(c.Param("weekday"))
	if !ok {
		httperr.BadRequest(c, "invalid_weekday", "Weekday must be monday..sunday.")
		return
	}

	var req BusinessDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	day := models.BusinessDay{
		IsOpen:     req.IsOpen,
		Start:      req.Start,
		End:        req.End,
		BreakStart: req.BreakStart,
		BreakEnd:   req.BreakEnd,
	}
	if err := h.source.PutBusinessDay(c.Request.Context(), weekday, day); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actorFrom(c).ID,
		Action:   "BUSINESS_HOURS_UPDATED",
		Entity:   "business_hours",
		EntityID: models.WeekdayKey(weekday),
		Details:  day.FormattedHours(),
	})

	c.JSON(http.StatusOK, day)
}

// --------- Blocked dates ---------

func (h *ScheduleHandler) ListBlocked(c *gin.Context) {
	blocked, err := h.source.BlockedDates(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	sort.SliceStable(blocked, func(i, j int) bool { return blocked[i].Date < blocked[j].Date })
	httpresp.List(c, blocked)
}

func (h *ScheduleHandler) AddBlocked(c *gin.Context) {
	var req BlockedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	actor := actorFrom(c)
	blocked, err := h.source.AddBlockedDate(c.Request.Context(), req.Date, req.Reason, actor.ID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   "DATE_BLOCKED",
		Entity:   "blocked_date",
		EntityID: blocked.ID,
		Details:  blocked.FormattedDate(),
	})

	httpresp.Created(c, blocked)
}

func (h *ScheduleHandler) RemoveBlocked(c *gin.Context) {
	id := c.Param("id")
	if err := h.source.RemoveBlockedDate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actorFrom(c).ID,
		Action:   "DATE_UNBLOCKED",
		Entity:   "blocked_date",
		EntityID: id,
	})

	httpresp.NoContent(c)
}
