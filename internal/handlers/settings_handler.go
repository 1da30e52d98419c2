package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SettingsHandler struct {
	source *datasource.Source
	audit  *audit.Dispatcher
}

func NewSettingsHandler(source *datasource.Source, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{source: source, audit: audit}
}

// GetBusiness reports the defaults until settings are saved.
func (h *SettingsHandler) GetBusiness(c *gin.Context) {
	settings, err := h.source.BusinessSettings(c.Request.Context())
	if datasource.IsNotFound(err) {
		c.JSON(http.StatusOK, models.DefaultBusinessSettings())
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) PutBusiness(c *gin.Context) {
	settings := models.DefaultBusinessSettings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.source.PutBusinessSettings(c.Request.Context(), settings); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actorFrom(c).ID,
		Action:   "BUSINESS_SETTINGS_UPDATED",
		Entity:   "settings",
		EntityID: "business",
		Metadata: settings,
	})

	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) GetNotifications(c *gin.Context) {
	settings, err := h.source.NotificationSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (h *SettingsHandler) PutNotifications(c *gin.Context) {
	settings := models.DefaultNotificationSettings()
	if err := c.ShouldBindJSON(&settings); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.source.PutNotificationSettings(c.Request.Context(), settings); err != nil {
		respondError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:  actorFrom(c).ID,
		Action:   "NOTIFICATION_SETTINGS_UPDATED",
		Entity:   "settings",
		EntityID: "notifications",
		Metadata: settings,
	})

	c.JSON(http.StatusOK, settings)
}
