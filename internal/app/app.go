package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/identi-digital/identi-modules/internal/config"
	"github.com/identi-digital/identi-modules/internal/middleware"
	"github.com/identi-digital/identi-modules/internal/module/agent"
	"github.com/identi-digital/identi-modules/internal/module/audit"
	"github.com/identi-digital/identi-modules/internal/module/farmer"
	"github.com/identi-digital/identi-modules/internal/module/location"
	"github.com/identi-digital/identi-modules/internal/module/monitoring"
	"github.com/identi-digital/identi-modules/internal/module/warehouse"
	"github.com/identi-digital/identi-modules/internal/pkg"
)

const (
	defaultRequestTimeout = 30 * time.Second
	shutdownTimeout       = 5 * time.Second
)

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine  *gin.Engine
	db      *gorm.DB
	logger  *logger.Logger
	cfg     *config.Config
	modules *Modules
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// newHTTPServer builds the server; timeout bounds reads and writes.
var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		// Spreadsheet exports stream after the handler finishes its query.
		WriteTimeout: 2 * timeout,
		IdleTimeout:  120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
// Tables are migrated automatically in debug mode only; release deployments
// run the migrate command.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}

	success := false

	log, db, err := open(cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if !success {
			closeAll(db, log)
		}
	}()

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 exposes auto-migration and permissive CORS")
	}

	pkg.SetDefaultPerPage(cfg.Listing.DefaultPerPage)

	modules, err := buildModules(db, cfg)
	if err != nil {
		return nil, fmt.Errorf("build modules: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode {
		if err := config.Migrate(db, modules.Models()...); err != nil {
			return nil, err
		}
		log.Info("auto migration completed", slog.Any("modules", modules.Names()))
	}

	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()
	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{TrustUpstream: false}),
		middleware.Actor(),
		middleware.Logger(log.Logger),
		middleware.CORSWithConfig(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)),
	)

	if err := RegisterRoutes(engine, &RouteDeps{Modules: modules, DB: db}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:  engine,
		db:      db,
		logger:  log,
		cfg:     cfg,
		modules: modules,
	}, nil
}

// Migrate creates or updates every module table and closes the connection.
func Migrate(cfg *config.Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	log, db, err := open(cfg)
	if err != nil {
		return err
	}
	defer closeAll(db, log)

	modules, err := buildModules(db, cfg)
	if err != nil {
		return fmt.Errorf("build modules: %w", err)
	}
	if err := config.Migrate(db, modules.Models()...); err != nil {
		return err
	}
	log.Info("migration completed", slog.Any("modules", modules.Names()))
	return nil
}

// Handler exposes the configured engine, mainly for tests.
func (a *App) Handler() http.Handler { return a.engine }

// buildModules wires repository → service → handler → module for every
// business module. The audit service is shared as the AuditRecorder.
func buildModules(db *gorm.DB, cfg *config.Config) (*Modules, error) {
	maxRows := cfg.Export.MaxRows

	auditSvc := audit.NewAuditService(audit.NewAuditRepository(db), maxRows)

	farmers := farmer.NewModule(farmer.NewFarmerHandler(
		farmer.NewFarmerService(farmer.NewFarmerRepository(db), auditSvc)))

	locations := location.NewModule(location.Handlers{
		Countries:   location.NewCountryHandler(location.NewCountryService(location.NewCountryRepository(db), auditSvc)),
		Departments: location.NewDepartmentHandler(location.NewDepartmentService(location.NewDepartmentRepository(db), auditSvc)),
		Provinces:   location.NewProvinceHandler(location.NewProvinceService(location.NewProvinceRepository(db), auditSvc)),
		Districts:   location.NewDistrictHandler(location.NewDistrictService(location.NewDistrictRepository(db), auditSvc)),
	})

	agents := agent.NewModule(agent.NewAgentHandler(
		agent.NewAgentService(agent.NewAgentRepository(db), auditSvc)))

	visits := monitoring.NewModule(monitoring.NewVisitHandler(
		monitoring.NewMonitoringService(monitoring.NewMonitoringRepository(db), auditSvc)))

	stores := warehouse.NewModule(warehouse.NewWarehouseHandler(
		warehouse.NewWarehouseService(
			warehouse.NewStoreCenterRepository(db),
			warehouse.NewMovementRepository(db),
			auditSvc, maxRows)))

	return NewModules(
		locations,
		farmers,
		agents,
		visits,
		stores,
		audit.NewModule(audit.NewAuditHandler(auditSvc)),
	)
}

func open(cfg *config.Config) (*logger.Logger, *gorm.DB, error) {
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		closeAll(nil, log)
		return nil, nil, fmt.Errorf("setup database: %w", err)
	}
	return log, db, nil
}

func closeAll(db *gorm.DB, log *logger.Logger) {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", slog.Any("error", err))
			}
		}
	}
	if log != nil {
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}
}

// resolveCORSConfig overlays the configured CORS settings on the defaults.
// Release mode without an allowlist denies cross-origin requests.
func resolveCORSConfig(mode string, cfg config.CORSConfig) middleware.CORSConfig {
	out := middleware.DefaultCORSConfig()

	switch {
	case len(cfg.AllowOrigins) > 0:
		out.AllowOrigins = cfg.AllowOrigins
	case mode == gin.ReleaseMode:
		out.AllowOrigins = []string{}
	}
	if len(cfg.AllowMethods) > 0 {
		out.AllowMethods = cfg.AllowMethods
	}
	if len(cfg.AllowHeaders) > 0 {
		out.AllowHeaders = cfg.AllowHeaders
	}
	out.AllowCredentials = cfg.AllowCredentials
	if d, err := time.ParseDuration(cfg.MaxAge); err == nil && d > 0 {
		out.MaxAge = strconv.Itoa(int(d.Seconds()))
	}
	return out
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts
// down gracefully and closes the database and logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	log := slog.Default()
	if a.logger != nil {
		log = a.logger.Logger
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, a.cfg.Server.TimeoutDuration())

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	log.Info("server stopped")
	closeAll(a.db, a.logger)
	return runErr
}
