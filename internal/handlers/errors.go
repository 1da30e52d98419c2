package handlers

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var errInvalidRole = errors.New("role must be BUSINESS_ADMIN or DEVELOPER_ADMIN")

// respondError maps domain, auth and store errors to a JSON error body.
func respondError(c *gin.Context, err error) {
	var (
		be httperr.BusinessError
		ve *models.ValidationError
		nf *datasource.NotFoundError
		se *datasource.SyncError
		de *datasource.DecodeError
	)

	switch {
	case errors.As(err, &be):
		httperr.Write(c, be.Status(), be.Code, be.Code)

	case errors.As(err, &de):
		slog.Default().Error("stored record is malformed", "path", de.Path, "error", de.Err)
		httperr.Internal(c, "malformed_record", "Stored record is malformed.")

	case errors.Is(err, auth.ErrInvalidCredentials):
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
	case errors.Is(err, auth.ErrEmailTaken):
		httperr.Conflict(c, "email_taken", "Email is already registered.")
	case errors.Is(err, auth.ErrInvalidToken):
		httperr.BadRequest(c, "invalid_token", "Token is invalid or expired.")
	case errors.Is(err, auth.ErrNoProfile):
		httperr.Forbidden(c, "profile_missing", "Account has no profile.")

	case errors.As(err, &nf):
		httperr.NotFound(c, "not_found", nf.Error())
	case errors.As(err, &se):
		slog.Default().Error("store unavailable", "op", se.Op, "path", se.Path, "error", se.Err)
		httperr.Unavailable(c, "store_unavailable", "Data store is unavailable.")

	case errors.As(err, &ve):
		httperr.BadRequest(c, "validation_failed", ve.Error())

	default:
		slog.Default().Error("request failed", "path", c.FullPath(), "error", err)
		httperr.Internal(c, "internal_error", "Unexpected error.")
	}
}

func badRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
