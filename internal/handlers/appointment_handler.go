package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	source *datasource.Source

	createUC     *ucAppointment.CreateAppointment
	confirmUC    *ucAppointment.ConfirmAppointment
	completeUC   *ucAppointment.CompleteAppointment
	cancelUC     *ucAppointment.CancelAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	listByDateUC *ucAppointment.ListAppointmentsByDate
	listMonthUC  *ucAppointment.ListAppointmentsByMonth
}

func NewAppointmentHandler(
	source *datasource.Source,
	createUC *ucAppointment.CreateAppointment,
	confirmUC *ucAppointment.ConfirmAppointment,
	completeUC *ucAppointment.CompleteAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	listByDateUC *ucAppointment.ListAppointmentsByDate,
	listMonthUC *ucAppointment.ListAppointmentsByMonth,
) *AppointmentHandler {
	return &AppointmentHandler{
		source:       source,
		createUC:     createUC,
		confirmUC:    confirmUC,
		completeUC:   completeUC,
		cancelUC:     cancelUC,
		rescheduleUC: rescheduleUC,
		listByDateUC: listByDateUC,
		listMonthUC:  listMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceIDs  []string `json:"service_ids" binding:"required"`
	ClientPhone string   `json:"client_phone" binding:"required"`
	Date        string   `json:"date" binding:"required"`
	Time        string   `json:"time" binding:"required"`
	Notes       string   `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	ServiceIDs []string `json:"service_ids"`
	Date       string   `json:"date" binding:"required"`
	Time       string   `json:"time" binding:"required"`
	Notes      string   `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    actorFrom(c).ID,
		ClientEmail: c.GetString(middleware.ContextUserEmail),
		ClientPhone: req.ClientPhone,
		ServiceIDs:  req.ServiceIDs,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, h.render(c, ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date, ok := parseDay(c.Query("date"))
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	list, err := h.listByDateUC.Execute(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	list, err := h.listMonthUC.Execute(c.Request.Context(), year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}

// Stream pushes the full booking list on every change.
func (h *AppointmentHandler) Stream(c *gin.Context) {
	settings, err := h.source.BusinessSettings(c.Request.Context())
	if err != nil && !datasource.IsNotFound(err) {
		respondError(c, err)
		return
	}
	loc := timezone.Location(settings.Timezone)

	sub, err := h.source.ObserveAppointments().Subscribe(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	stream(c, sub, func(list []models.Appointment) any { return dto.AppointmentList(list, loc) })
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	ap, err := h.confirmUC.Execute(c.Request.Context(), actorFrom(c), c.Param("id"))
	h.respond(c, ap, err)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.completeUC.Execute(c.Request.Context(), actorFrom(c), c.Param("id"))
	h.respond(c, ap, err)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancelUC.Execute(c.Request.Context(), actorFrom(c), c.Param("id"))
	h.respond(c, ap, err)
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), actorFrom(c), ucAppointment.RescheduleAppointmentInput{
		AppointmentID: c.Param("id"),
		ServiceIDs:    req.ServiceIDs,
		Date:          req.Date,
		Time:          req.Time,
		Notes:         req.Notes,
	})
	h.respond(c, ap, err)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) respond(c *gin.Context, ap models.Appointment, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.render(c, ap))
}

func (h *AppointmentHandler) render(c *gin.Context, ap models.Appointment) dto.AppointmentListDTO {
	settings, err := h.source.BusinessSettings(c.Request.Context())
	if err != nil {
		settings = models.DefaultBusinessSettings()
	}
	return dto.AppointmentList([]models.Appointment{ap}, timezone.Location(settings.Timezone))[0]
}
