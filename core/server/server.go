package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"strconv"

	"travel-ticket-api/core/cache"
	"travel-ticket-api/core/config"
	"travel-ticket-api/core/constants"
	"travel-ticket-api/core/controller"
	"travel-ticket-api/core/database"
	"travel-ticket-api/core/logger"
	"travel-ticket-api/core/middleware"
	"travel-ticket-api/core/storage"
	"travel-ticket-api/modules/auth"
	"travel-ticket-api/modules/bridge"
	"travel-ticket-api/modules/event"
	eventbridge "travel-ticket-api/modules/event/bridge"
	"travel-ticket-api/modules/event/repository"
	"travel-ticket-api/modules/event/service"
	"travel-ticket-api/modules/media"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Dependencies are the collaborators the HTTP layer is built from.
// DB is nil when events come from the bridge.
type Dependencies struct {
	Events service.EventStore
	Media  storage.Store
	Cache  cache.Cache
	DB     *database.Database
}

type Server struct {
	cfg  *config.Config
	echo *echo.Echo
	deps Dependencies
}

// New opens the database (when events are stored locally), the cache and the
// media backend, then builds the server on top of them.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	var deps Dependencies

	switch cfg.EventSource {
	case constants.EventSourceBridge:
		logger.Info("Server:New:EventSource", "source", cfg.EventSource, "base_url", cfg.Bridge.BaseURL)
		deps.Events = eventbridge.NewClient(cfg.Bridge.BaseURL, cfg.Bridge.APIKey, http.DefaultClient)
	default:
		if cfg.Database.AutoMigrate {
			if err := database.MigrateUp(cfg.Database); err != nil {
				return nil, err
			}
		}
		db, err := database.InitDB(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		deps.DB = db
		deps.Events = repository.NewEventRepository(db)
	}

	c, err := cache.New(ctx, cfg.Redis)
	if err != nil {
		closeDB(deps.DB)
		return nil, err
	}
	deps.Cache = c

	store, err := storage.New(ctx, cfg)
	if err != nil {
		closeDB(deps.DB)
		_ = c.Close()
		return nil, err
	}
	deps.Media = store
	logger.Info("Server:New:Media", "backend", store.Backend())

	return NewWithDependencies(cfg, deps), nil
}

// NewWithDependencies registers middleware and routes over ready-made collaborators.
func NewWithDependencies(cfg *config.Config, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = controller.HTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(middleware.Metrics())

	s := &Server{cfg: cfg, echo: e, deps: deps}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.Static("/"+constants.UploadsDirName, filepath.Join(s.cfg.Media.PublicDir, constants.UploadsDirName))
	e.Static("/"+constants.QRCodesDirName, filepath.Join(s.cfg.Media.PublicDir, constants.QRCodesDirName))

	var db pinger
	if s.deps.DB != nil {
		db = s.deps.DB
	}
	health := newHealthHandler(db)
	e.GET("/health/live", health.Live)
	e.GET("/health/ready", health.Ready)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	events := event.Init(api, s.deps.Events, s.deps.Media)
	media.Init(api, s.deps.Media, events)
	auth.Init(api, s.cfg.Auth, s.deps.Cache)

	if s.deps.DB != nil && s.cfg.Bridge.APIKey != "" {
		bridge.Init(e.Group("/bridge"), s.cfg.Bridge.APIKey, events)
		logger.Info("Server:Routes:BridgeMounted", "prefix", "/bridge")
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Server.Host, strconv.Itoa(s.cfg.Server.Port))
}

// Run serves until ctx is cancelled, then drains in-flight requests within
// the configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", s.Addr())
		if err := s.echo.Start(s.Addr()); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Server:Run:ShuttingDown")
	case err := <-errCh:
		if err != nil {
			s.Close()
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
	defer cancel()

	err := s.echo.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	logger.Info("Server:Run:Stopped")
	return nil
}

// Close releases the database and cache connections.
func (s *Server) Close() {
	closeDB(s.deps.DB)
	if s.deps.Cache != nil {
		if err := s.deps.Cache.Close(); err != nil {
			logger.Warn("Server:Close:Cache", "error", err)
		}
	}
}

func closeDB(db *database.Database) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("Server:Close:Database", "error", err)
	}
}
