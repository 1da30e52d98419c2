package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// Handlers groups every HTTP handler the API exposes.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Me          *handlers.MeHandler
	Catalog     *handlers.CatalogHandler
	Public      *handlers.PublicHandler
	Appointment *handlers.AppointmentHandler
	Schedule    *handlers.ScheduleHandler
	Settings    *handlers.SettingsHandler
	Clients     *handlers.ClientHandler
	AuditLogs   *handlers.AuditLogsHandler
}

func RegisterRoutes(r *gin.Engine, tokens *auth.TokenIssuer, h Handlers) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", h.Catalog.ListServices)
			public.GET("/services/stream", h.Catalog.StreamServices)
			public.GET("/categories", h.Catalog.ListCategories)
			public.GET("/availability", h.Public.Availability)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/password-reset", h.Auth.RequestPasswordReset)
		api.POST("/auth/password-reset/confirm", h.Auth.ResetPassword)

		// ------------------------------
		// SIGNED IN
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", h.Me.GetMe)
			secured.PATCH("/me", h.Me.UpdateMe)
			secured.PUT("/me/preferences", h.Me.UpdatePreferences)

			secured.POST("/me/appointments", h.Appointment.Create)
			secured.GET("/me/appointments", h.Me.MyAppointments)
			secured.PATCH("/me/appointments/:id/cancel", h.Appointment.Cancel)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(tokens), middleware.RequireAdmin())
		{
			admin.POST("/register", h.Auth.RegisterAdmin)

			// APPOINTMENTS
			admin.GET("/appointments", h.Appointment.ListByDate)
			admin.GET("/appointments/month", h.Appointment.ListByMonth)
			admin.GET("/appointments/stream", h.Appointment.Stream)
			admin.PATCH("/appointments/:id/confirm", h.Appointment.Confirm)
			admin.PATCH("/appointments/:id/complete", h.Appointment.Complete)
			admin.PATCH("/appointments/:id/cancel", h.Appointment.Cancel)
			admin.PATCH("/appointments/:id/reschedule", h.Appointment.Reschedule)

			// SCHEDULE
			admin.GET("/business-hours", h.Schedule.GetHours)
			admin.PUT("/business-hours/:weekday", h.Schedule.PutDay)
			admin.GET("/blocked-dates", h.Schedule.ListBlocked)
			admin.POST("/blocked-dates", h.Schedule.AddBlocked)
			admin.DELETE("/blocked-dates/:id", h.Schedule.RemoveBlocked)

			// CATALOG
			admin.PUT("/services/:id", h.Catalog.SaveService)
			admin.PUT("/categories/:id", h.Catalog.SaveCategory)

			// SETTINGS
			admin.GET("/settings/business", h.Settings.GetBusiness)
			admin.PUT("/settings/business", h.Settings.PutBusiness)
			admin.GET("/settings/notifications", h.Settings.GetNotifications)
			admin.PUT("/settings/notifications", h.Settings.PutNotifications)

			admin.GET("/clients", h.Clients.List)
			admin.GET("/clients/:uid", h.Clients.Get)

			admin.GET("/audit-logs", h.AuditLogs.List)
		}
	}
}
