package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/datasource"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/credentials"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote/gormstore"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote/memstore"
	"github.com/BruksfildServices01/salon-scheduler/internal/remote/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/telemetry"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

const serviceName = "salon-scheduler"

func main() {
	logger := logging.New(serviceName)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.Setup(ctx, serviceName, logger)

	// ======================================================
	// INFRA
	// ======================================================
	store, creds, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("open store", "error", err)
		os.Exit(1)
	}

	source := datasource.New(store, logger)

	serviceRepo := infraRepo.NewServiceRepository(source, logger)
	appointmentRepo := infraRepo.NewAppointmentRepository(source, serviceRepo)

	auditDispatcher := audit.NewDispatcher(audit.New(source), cfg.AuditQueueSize, logger)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, cfg.ResetTokenTTL)
	gateway := auth.NewGateway(creds, source, tokens, logger, auth.Options{
		MinPasswordLen: cfg.MinPasswordLen,
		CheckEmailMX:   cfg.CheckEmailMX,
	})

	// ======================================================
	// USE CASES
	// ======================================================
	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditDispatcher)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, auditDispatcher)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	listClientUC := ucAppointment.NewListClientAppointments(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), middleware.CORSMiddleware(cfg.CORSOrigins))

	routes.RegisterRoutes(r, tokens, routes.Handlers{
		Auth:    handlers.NewAuthHandler(gateway, auditDispatcher, cfg.Env != "production"),
		Me:      handlers.NewMeHandler(gateway, source, listClientUC),
		Catalog: handlers.NewCatalogHandler(serviceRepo, auditDispatcher),
		Public:  handlers.NewPublicHandler(availabilityUC),
		Appointment: handlers.NewAppointmentHandler(
			source,
			createUC,
			confirmUC,
			completeUC,
			cancelUC,
			rescheduleUC,
			listByDateUC,
			listByMonthUC,
		),
		Schedule:  handlers.NewScheduleHandler(source, auditDispatcher),
		Settings:  handlers.NewSettingsHandler(source, auditDispatcher),
		Clients:   handlers.NewClientHandler(source),
		AuditLogs: handlers.NewAuditLogsHandler(source),
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           otelhttp.NewHandler(r, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "store", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown server", "error", err)
	}
	if err := auditDispatcher.Close(shutdownCtx); err != nil {
		logger.Warn("audit queue not drained", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("shutdown tracing", "error", err)
	}
}

// openStore builds the JSON store and the credential backend for the
// configured driver. The postgres store runs its change notifier until ctx
// ends.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (remote.Store, auth.Credentials, error) {
	if cfg.StoreDriver == config.StoreMemory {
		return memstore.New(), credentials.NewMemoryStore(), nil
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return nil, nil, err
	}

	var notifier gormstore.Notifier
	switch cfg.Notifier {
	case config.NotifierRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		notifier = notify.NewRedis(redis.NewClient(opts), cfg.NotifyChannel)
	case config.NotifierPostgres:
		pool, err := pgxpool.New(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		notifier = notify.NewPostgres(pool, cfg.NotifyChannel)
	}

	store := gormstore.New(db, notifier, logger)
	go func() {
		if err := store.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("store notifier stopped", "error", err)
		}
	}()

	return store, credentials.NewGormStore(db), nil
}
