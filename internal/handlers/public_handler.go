package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type PublicHandler struct {
	availabilityUC *ucAppointment.GetAvailability
}

func NewPublicHandler(availabilityUC *ucAppointment.GetAvailability) *PublicHandler {
	return &PublicHandler{availabilityUC: availabilityUC}
}

// Availability lists free slots: ?date=YYYY-MM-DD&services=id1,id2
func (h *PublicHandler) Availability(c *gin.Context) {
	date, ok := parseDay(c.Query("date"))
	if !ok {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	serviceIDs := splitIDs(c.Query("services"))
	if len(serviceIDs) == 0 {
		httperr.BadRequest(c, "services_required", "At least one service is required.")
		return
	}

	slots, err := h.availabilityUC.Execute(c.Request.Context(), domain.AvailabilityInput{
		Date:       date,
		ServiceIDs: serviceIDs,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.List(c, slots)
}
