package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AuthHandler struct {
	gateway *auth.Gateway
	audit   *audit.Dispatcher
	// exposeResetToken returns reset tokens in the response body; there is
	// no mail delivery.
	exposeResetToken bool
}

func NewAuthHandler(gateway *auth.Gateway, audit *audit.Dispatcher, exposeResetToken bool) *AuthHandler {
	return &AuthHandler{gateway: gateway, audit: audit, exposeResetToken: exposeResetToken}
}

// --------- Requests ---------

type RegisterRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FirstName  string `json:"first_name" binding:"required"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name" binding:"required"`
	Phone      string `json:"phone"`
	Role       string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" binding:"required"`
}

type PasswordResetConfirm struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register signs up a client. Admin accounts are created by an existing
// admin through RegisterAdmin.
func (h *AuthHandler) Register(c *gin.Context) {
	h.register(c, false)
}

func (h *AuthHandler) RegisterAdmin(c *gin.Context) {
	h.register(c, true)
}

func (h *AuthHandler) register(c *gin.Context, admin bool) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	role := models.RoleClient
	if admin {
		parsed, err := models.ParseRole(req.Role)
		if err != nil || !parsed.IsAdmin() {
			badRequest(c, errInvalidRole)
			return
		}
		role = parsed
	}

	session, err := h.gateway.Register(c.Request.Context(), auth.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FirstName:  req.FirstName,
		MiddleName: req.MiddleName,
		LastName:   req.LastName,
		Phone:      req.Phone,
		Role:       role,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	actor := session.User.UID()
	if admin {
		actor = actorFrom(c).ID
	}
	h.audit.Dispatch(audit.Event{
		ActorID:  actor,
		Action:   "USER_REGISTERED",
		Entity:   "user",
		EntityID: session.User.UID(),
		Details:  string(role),
	})

	c.JSON(http.StatusCreated, sessionResponse(session))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	session, err := h.gateway.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session))
}

func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	token, err := h.gateway.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	body := gin.H{"status": "accepted"}
	if h.exposeResetToken && token != "" {
		body["reset_token"] = token
	}
	c.JSON(http.StatusAccepted, body)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req PasswordResetConfirm
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	if err := h.gateway.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --------- Responses ---------

func sessionResponse(s auth.Session) gin.H {
	return gin.H{
		"user":       userResponse(s.User),
		"token":      s.Token,
		"expires_at": s.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

func userResponse(u models.User) gin.H {
	out := gin.H{
		"uid":         u.UID(),
		"email":       u.Email(),
		"first_name":  u.FirstName(),
		"middle_name": u.MiddleName(),
		"last_name":   u.LastName(),
		"full_name":   u.FullName(),
		"phone":       u.Phone(),
		"role":        u.Role(),
		"is_active":   u.IsActive(),
		"created_at":  u.CreatedAt(),
	}

	switch v := u.(type) {
	case models.AdminUser:
		out["last_login_at"] = v.LastLoginAt()
	case models.ClientUser:
		out["notes"] = v.Notes()
		out["preferred_services"] = v.PreferredServices()
	}
	return out
}
