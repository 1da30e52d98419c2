package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type MeHandler struct {
	gateway *auth.Gateway
	source  *datasource.Source
	listUC  *ucAppointment.ListClientAppointments
}

func NewMeHandler(
	gateway *auth.Gateway,
	source *datasource.Source,
	listUC *ucAppointment.ListClientAppointments,
) *MeHandler {
	return &MeHandler{gateway: gateway, source: source, listUC: listUC}
}

type UpdateMeRequest struct {
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	Phone      *string `json:"phone"`
}

type PreferencesRequest struct {
	ServiceIDs []string `json:"service_ids"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	actor := actorFrom(c)

	user, err := h.gateway.Profile(c.Request.Context(), actor.ID, actor.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	actor := actorFrom(c)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.gateway.UpdateProfile(c.Request.Context(), actor.ID, actor.Role, auth.ProfileUpdate{
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Phone:      req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func (h *MeHandler) UpdatePreferences(c *gin.Context) {
	actor := actorFrom(c)
	if actor.Role != models.RoleClient {
		httperr.Forbidden(c, "clients_only", "Only clients keep service preferences.")
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	client, err := h.source.Client(c.Request.Context(), actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	if _, err := client.WithPreferredServices(req.ServiceIDs); err != nil {
		respondError(c, err)
		return
	}

	if err := h.source.UpdateClientPreferences(c.Request.Context(), actor.ID, req.ServiceIDs); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferred_services": req.ServiceIDs})
}

func (h *MeHandler) MyAppointments(c *gin.Context) {
	list, err := h.listUC.Execute(c.Request.Context(), actorFrom(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, list)
}
