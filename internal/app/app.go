package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/altocrm/altocrm/config"
	"github.com/altocrm/altocrm/internal/database"
	"github.com/altocrm/altocrm/internal/domain"
	httpHandler "github.com/altocrm/altocrm/internal/http"
	"github.com/altocrm/altocrm/internal/http/middleware"
	"github.com/altocrm/altocrm/internal/migrations"
	"github.com/altocrm/altocrm/internal/repository"
	"github.com/altocrm/altocrm/internal/service"
	"github.com/altocrm/altocrm/pkg/logger"
	"github.com/altocrm/altocrm/pkg/tracing"

	"contrib.go.opencensus.io/integrations/ocsql"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB

	// Repository getters for testing
	GetLeadRepository() domain.LeadRepository
	GetFieldRepository() domain.FieldRepository
	GetStageRepository() domain.StageRepository
	GetAuditRepository() domain.AuditRepository
	GetJobRepository() domain.JobRepository
	GetSettingRepository() domain.SettingRepository

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	// Repositories
	leadRepo    domain.LeadRepository
	fieldRepo   domain.FieldRepository
	stageRepo   domain.StageRepository
	auditRepo   domain.AuditRepository
	jobRepo     domain.JobRepository
	settingRepo domain.SettingRepository

	// Services
	leadService       *service.LeadService
	fieldService      *service.FieldService
	stageService      *service.StageService
	enrichmentService *service.EnrichmentService
	jobService        *service.JobService
	jobScheduler      *service.JobScheduler

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64          // atomic counter for active HTTP requests
	requestWg       sync.WaitGroup // wait group for active requests
	shutdownTimeout time.Duration  // configurable shutdown timeout
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	// Create shutdown context
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel), // Use configured log level
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 60 * time.Second, // Default 60 seconds shutdown timeout (buffer over the 50-second job runtime cap)
	}

	// Apply options
	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	if err := tracing.InitTracing(tracingConfig); err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if tracingConfig.Enabled {
		exporter := tracingConfig.TraceExporter
		if exporter == "" {
			exporter = "jaeger" // Default
		}

		metricsExporter := tracingConfig.MetricsExporter
		if metricsExporter == "" {
			metricsExporter = "prometheus" // Default
		}

		a.logger.WithField("trace_exporter", exporter).
			WithField("metrics_exporter", metricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB initializes the database connection
func (a *App) InitDB() error {

	password := a.config.Database.Password
	maskedPassword := ""
	if len(password) > 0 {
		maskedPassword = fmt.Sprintf("%c...%c", password[0], password[len(password)-1])
	}
	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, password: %s, dbname: %s", a.config.Database.Host, a.config.Database.Port, a.config.Database.User, a.config.Database.SSLMode, maskedPassword, a.config.Database.DBName))

	// Ensure the application database exists
	if err := database.EnsureDatabaseExists(database.GetPostgresDSN(&a.config.Database), a.config.Database.DBName); err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	a.logger.Info("Database existence check completed")

	db, err := database.ConnectToDatabase(a.config)
	if err != nil {
		return err
	}

	// Initialize database schema if needed
	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	// Run migrations separately
	migrationManager := migrations.NewManager(a.logger)
	ctx := context.Background()
	if err := migrationManager.RunMigrations(ctx, a.config, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	a.db = db
	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.leadRepo = repository.NewLeadRepository(a.db)
	a.fieldRepo = repository.NewFieldRepository(a.db)
	a.stageRepo = repository.NewStageRepository(a.db)
	a.auditRepo = repository.NewAuditRepository(a.db)
	a.jobRepo = repository.NewJobRepository(a.db)
	a.settingRepo = repository.NewSQLSettingRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	a.fieldService = service.NewFieldService(a.fieldRepo, a.logger)
	a.stageService = service.NewStageService(a.stageRepo, a.logger)
	a.leadService = service.NewLeadService(a.leadRepo, a.fieldRepo, a.stageRepo, a.auditRepo, a.logger)
	a.enrichmentService = service.NewEnrichmentService(a.leadRepo, a.fieldRepo, a.auditRepo, a.logger)

	// Initialize job service
	jobService, err := service.NewJobService(service.JobServiceConfig{
		Repository:        a.jobRepo,
		SettingRepo:       a.settingRepo,
		Logger:            a.logger,
		MaxRuntime:        int(a.config.Jobs.MaxRuntime.Seconds()),
		MaxConcurrent:     a.config.Jobs.MaxConcurrent,
		ProcessingTimeout: a.config.Jobs.ProcessingTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize job service: %w", err)
	}
	a.jobService = jobService

	// Register processors for the job kinds the queue understands
	a.jobService.RegisterProcessor(service.NewEnrichJobProcessor(a.enrichmentService, a.leadService, a.logger))
	a.jobService.RegisterProcessor(service.NewImportJobProcessor(a.leadService, a.fieldService, a.logger))

	// The scheduler drives the queue, it gets started in Start()
	a.jobScheduler = service.NewJobScheduler(
		a.jobService,
		a.logger,
		a.config.Jobs.PollInterval,
		a.config.Jobs.BatchSize,
	)

	return nil
}

// InitHandlers initializes all HTTP handlers and routes
func (a *App) InitHandlers() error {
	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	// Initialize handlers
	leadHandler := httpHandler.NewLeadHandler(
		a.leadService,
		a.fieldService,
		a.enrichmentService,
		a.jobService,
		a.logger,
	)
	fieldHandler := httpHandler.NewFieldHandler(a.fieldService, a.logger)
	stageHandler := httpHandler.NewStageHandler(a.stageService, a.logger)
	jobHandler := httpHandler.NewJobHandler(a.jobService, a.logger)
	rootHandler := httpHandler.NewRootHandler(a.db, a.jobService, a.logger, a.config.Version)

	// Register routes
	leadHandler.RegisterRoutes(a.mux)
	fieldHandler.RegisterRoutes(a.mux)
	stageHandler.RegisterRoutes(a.mux)
	jobHandler.RegisterRoutes(a.mux)
	rootHandler.RegisterRoutes(a.mux)

	return nil
}

// Start starts the HTTP server and the job scheduler
func (a *App) Start() error {
	// Create server with wrapped handler for CORS and tracing
	var handler http.Handler = a.mux

	// Apply graceful shutdown middleware first (outermost)
	handler = a.gracefulShutdownMiddleware(handler)
	a.logger.Info("Graceful shutdown middleware enabled")

	// Apply tracing middleware if enabled
	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
		a.logger.Info("OpenCensus tracing middleware enabled")
	}

	// Apply CORS middleware
	handler = middleware.CORSMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).
		WithField("port", a.config.Server.Port).
		Info(fmt.Sprintf("Server starting on %s", addr))

	// Create a fresh notification channel and update the server
	a.serverMu.Lock()
	// Close the existing channel if it exists
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})

	// Create the server
	a.server = &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Get a reference to the channel before unlocking
	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	// Signal that the server has been created and is about to start
	close(serverStarted)

	// Start the background job polling loop
	if a.jobScheduler != nil {
		a.jobScheduler.Start(a.shutdownCtx)
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	// Signal shutdown to all components
	a.shutdownCancel()

	// Stop the job scheduler before draining HTTP so no new jobs get claimed
	if a.jobScheduler != nil {
		a.jobScheduler.Stop()
	}

	// Get server reference
	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources(ctx)
	}

	// Log current active requests
	activeCount := a.getActiveRequestCount()
	a.logger.WithField("active_requests", activeCount).Info("Active requests at shutdown start")

	// Create a timeout context for shutdown operations
	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		// Use the provided context deadline if it's sooner than our default timeout
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining - time.Second // Leave 1 second buffer
			if shutdownTimeout < 0 {
				shutdownTimeout = 0
			}
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Start HTTP server shutdown in a goroutine
	serverShutdownDone := make(chan error, 1)
	go func() {
		a.logger.WithField("timeout", shutdownTimeout).Info("Starting HTTP server shutdown")
		serverShutdownDone <- server.Shutdown(shutdownCtx)
	}()

	// Wait for active requests to complete in another goroutine
	requestsDone := make(chan struct{}, 1)
	go func() {
		defer close(requestsDone)

		// Wait for all active requests to complete
		a.logger.Info("Waiting for active requests to complete...")
		done := make(chan struct{})

		go func() {
			a.requestWg.Wait()
			close(done)
		}()

		// Monitor progress
		ticker := time.NewTicker(5 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				a.logger.Info("All requests completed")
				return
			case <-ticker.C:
				activeCount := a.getActiveRequestCount()
				a.logger.WithField("active_requests", activeCount).Info("Still waiting for requests to complete...")
			case <-shutdownCtx.Done():
				activeCount := a.getActiveRequestCount()
				a.logger.WithField("active_requests", activeCount).Warn("Shutdown timeout reached, forcing shutdown")
				return
			}
		}
	}()

	// Wait for both server shutdown and requests to complete
	var shutdownErr error

	select {
	case err := <-serverShutdownDone:
		shutdownErr = err
		a.logger.Info("HTTP server shutdown completed")
	case <-shutdownCtx.Done():
		a.logger.Warn("Shutdown timeout reached")
		shutdownErr = fmt.Errorf("shutdown timeout exceeded")
	}

	// Wait a bit more for requests to finish if server shutdown completed quickly
	if shutdownErr == nil {
		select {
		case <-requestsDone:
			// All requests completed
		case <-time.After(2 * time.Second):
			// Give up after 2 more seconds
			activeCount := a.getActiveRequestCount()
			if activeCount > 0 {
				a.logger.WithField("active_requests", activeCount).Warn("Some requests still active, proceeding with shutdown")
			}
		}
	}

	// Cleanup resources
	if cleanupErr := a.cleanupResources(ctx); cleanupErr != nil {
		a.logger.WithField("error", cleanupErr).Error("Error during resource cleanup")
		if shutdownErr == nil {
			shutdownErr = cleanupErr
		}
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

// cleanupResources handles cleanup of database and other resources
func (a *App) cleanupResources(ctx context.Context) error {
	a.logger.Info("Cleaning up resources...")

	// Close database connection if it exists
	if a.db != nil {
		// If tracing is enabled, record final stats
		if a.config.Tracing.Enabled {
			if err := ocsql.RecordStats(a.db, 5*time.Second); err != nil {
				a.logger.WithField("error", err).Error("Failed to record final database stats for tracing")
			}
		}

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err).Error("Error closing database connection")
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized
// Returns true if the server started successfully, false if context expired
func (a *App) WaitForServerStart(ctx context.Context) bool {
	// Get the current channel under lock
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	// If the channel is nil, that's a logic error - just wait on the context
	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	// Wait for signal or timeout
	select {
	case <-started:
		return a.IsServerCreated() // Double-check server was created
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting AltoCRM application")

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")

	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// Repository getters for testing
func (a *App) GetLeadRepository() domain.LeadRepository {
	return a.leadRepo
}

func (a *App) GetFieldRepository() domain.FieldRepository {
	return a.fieldRepo
}

func (a *App) GetStageRepository() domain.StageRepository {
	return a.stageRepo
}

func (a *App) GetAuditRepository() domain.AuditRepository {
	return a.auditRepo
}

func (a *App) GetJobRepository() domain.JobRepository {
	return a.jobRepo
}

func (a *App) GetSettingRepository() domain.SettingRepository {
	return a.settingRepo
}

// SetHandler allows setting a custom HTTP handler
func (a *App) SetHandler(handler http.Handler) {
	a.mux = handler.(*http.ServeMux)
}

// incrementActiveRequests atomically increments the active request counter
func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

// decrementActiveRequests atomically decrements the active request counter
func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

// getActiveRequestCount returns the current number of active requests
func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests (public interface method)
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the shutdown context for components that need to watch for shutdown
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

// isShuttingDown returns true if the application is in shutdown mode
func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware wraps HTTP handlers to track active requests
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if we're shutting down
		if a.isShuttingDown() {
			// Return 503 Service Unavailable if we're shutting down
			http.Error(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		// Track this request
		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		// Call the next handler
		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
