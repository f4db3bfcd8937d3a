package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/proven-platform/proven/internal/actions"
	"github.com/proven-platform/proven/internal/app"
	"github.com/proven-platform/proven/internal/auth"
	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/decisions"
	"github.com/proven-platform/proven/internal/documents"
	"github.com/proven-platform/proven/internal/guard"
	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/issues"
	"github.com/proven-platform/proven/internal/meetings"
	"github.com/proven-platform/proven/internal/notifications"
	"github.com/proven-platform/proven/internal/observability"
	"github.com/proven-platform/proven/internal/platform/cache"
	"github.com/proven-platform/proven/internal/platform/db"
	"github.com/proven-platform/proven/internal/projects"
	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
	"github.com/proven-platform/proven/internal/users"
	"github.com/proven-platform/proven/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "proven_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := shared.NewAuditLogger(pool)
	metrics := observability.NewMetrics()

	authRepo := auth.NewRepository(pool)
	provider := auth.NewLocalProvider(authRepo)

	identityRepo := identity.NewRepository(pool)
	resolver := identity.NewResolver(identityRepo, logger)

	store := session.NewStore(provider, identityRepo, resolver, logger)
	go store.Run(ctx)

	authzMW := authz.Middleware{Store: store, Logger: logger}
	routeGuard := guard.Guard{Store: store, Logger: logger}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	authHandler := auth.NewHandler(logger, store, authRepo, sessionManager, metrics)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo, provider, identityRepo, asynqClient, auditLogger, logger)
	usersHandler := users.NewHandler(logger, usersService, authzMW)

	projectsRepo := projects.NewRepository(pool)
	projectsService := projects.NewService(projectsRepo, asynqClient, auditLogger, logger)
	projectsHandler := projects.NewHandler(logger, projectsService, authzMW)

	actionsRepo := actions.NewRepository(pool)
	actionsService := actions.NewService(actionsRepo)
	actionsHandler := actions.NewHandler(logger, actionsService, authzMW)

	decisionsRepo := decisions.NewRepository(pool)
	decisionsService := decisions.NewService(decisionsRepo)
	decisionsHandler := decisions.NewHandler(logger, decisionsService, authzMW)

	issuesRepo := issues.NewRepository(pool)
	issuesService := issues.NewService(issuesRepo)
	issuesHandler := issues.NewHandler(logger, issuesService, authzMW)

	meetingsRepo := meetings.NewRepository(pool)
	meetingsService := meetings.NewService(meetingsRepo)
	meetingsHandler := meetings.NewHandler(logger, meetingsService, authzMW)

	documentsRepo := documents.NewRepository(pool)
	documentsService := documents.NewService(documentsRepo)
	documentsHandler := documents.NewHandler(logger, documentsService, authzMW)

	notificationsRepo := notifications.NewRepository(pool)
	notificationsService := notifications.NewService(notificationsRepo)
	notificationsHandler := notifications.NewHandler(logger, notificationsService, authzMW)

	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:               logger,
		Config:               cfg,
		SessionManager:       sessionManager,
		CSRFManager:          csrfManager,
		Store:                store,
		Guard:                routeGuard,
		AuthHandler:          authHandler,
		UsersHandler:         usersHandler,
		ProjectsHandler:      projectsHandler,
		ActionsHandler:       actionsHandler,
		DecisionsHandler:     decisionsHandler,
		IssuesHandler:        issuesHandler,
		MeetingsHandler:      meetingsHandler,
		DocumentsHandler:     documentsHandler,
		NotificationsHandler: notificationsHandler,
		JobHandler:           jobHandler,
		Metrics:              metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
