package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v3"

	api "kestrel-v0/internal/api/application"
	"kestrel-v0/internal/api/handlers"
	apimiddleware "kestrel-v0/internal/api/middleware"
	configapp "kestrel-v0/internal/config/application"
	heartbeatapp "kestrel-v0/internal/heartbeat/application"
	heartbeatdomain "kestrel-v0/internal/heartbeat/domain"
	sharedlogger "kestrel-v0/internal/shared/logger"
)

// Server represents the API server
type Server struct {
	httpServer *http.Server
	logger     sharedlogger.Logger
}

// NewServer creates a new API server. auditRepo may be nil when no audit
// store is configured; the audit routes then respond 503.
func NewServer(
	logger sharedlogger.Logger,
	runtimeCfg *configapp.RuntimeConfig,
	monitorService *heartbeatapp.Service,
	auditRepo heartbeatdomain.Repository,
) (*Server, error) {
	if err := runtimeCfg.Validate(); err != nil {
		return nil, err
	}

	// Initialize services
	apiMonitorService := api.NewMonitorService(monitorService)
	auditService := api.NewAuditService(auditRepo)

	// Initialize handlers
	monitorHandler := handlers.NewMonitorHandler(apiMonitorService)
	configHandler := handlers.NewConfigHandler(apiMonitorService)
	runHandler := handlers.NewRunHandler(auditService)
	alertHandler := handlers.NewAlertHandler(auditService)

	// Setup chi router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	// HTTP logging middleware - need concrete slog.Logger for httplog
	// Type assert to infrastructure logger to get underlying slog.Logger
	var slogLogger *slog.Logger
	if infraLogger, ok := logger.(interface{ SLog() *slog.Logger }); ok {
		slogLogger = infraLogger.SLog()
	} else {
		// Fallback to default if type assertion fails
		slogLogger = slog.Default()
	}

	requestLogLevel := slog.LevelInfo
	if runtimeCfg.DevMode {
		requestLogLevel = slog.LevelDebug
	}

	r.Use(httplog.RequestLogger(slogLogger, &httplog.Options{
		Level:             requestLogLevel,
		Schema:            httplog.SchemaECS.Concise(true),
		LogRequestHeaders: []string{}, // Log no headers by default to reduce verbosity
	}))

	// API v1 routes (with authentication)
	r.Route("/api/v1", func(r chi.Router) {
		// Apply API key auth middleware with configured API key
		r.Use(apimiddleware.APIKeyAuthWithKey(runtimeCfg.APIKey))

		// Routes
		r.Post("/monitor", monitorHandler.Monitor)
		r.Get("/config", configHandler.GetConfig)
		r.Get("/runs", runHandler.ListRuns)
		r.Get("/alerts", alertHandler.ListAlerts)
	})

	httpServer := &http.Server{
		Addr:         ":" + runtimeCfg.APIPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Debug("Server configured",
		"port", runtimeCfg.APIPort,
		"dev_mode", runtimeCfg.DevMode,
		"middleware", []string{"RequestID", "RealIP", "Recoverer", "httplog"},
	)

	return &Server{
		httpServer: httpServer,
		logger:     logger,
	}, nil
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		s.logger.Error("Server error", "err", err)
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Server shutdown error", "err", err)
	} else {
		s.logger.Info("Server shutdown complete")
	}
	return err
}
