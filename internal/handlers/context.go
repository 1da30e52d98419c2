package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

func actorFrom(c *gin.Context) ucAppointment.Actor {
	return ucAppointment.Actor{
		ID:   c.GetString(middleware.ContextUserID),
		Role: roleFrom(c),
	}
}

func roleFrom(c *gin.Context) models.Role {
	v, _ := c.Get(middleware.ContextUserRole)
	role, _ := v.(models.Role)
	return role
}

// parseDay reads a YYYY-MM-DD calendar day. Use cases anchor it to the
// business timezone.
func parseDay(s string) (time.Time, bool) {
	d, err := time.Parse(models.DateLayout, s)
	return d, err == nil
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryInt(c *gin.Context, key string, def, max int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil || n <= 0 {
		return def
	}
	if max > 0 && n > max {
		return def
	}
	return n
}
