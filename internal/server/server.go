package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/controlescolar/escolar/internal/bootstrap"
	"github.com/controlescolar/escolar/internal/client"
	"github.com/controlescolar/escolar/internal/pkg/helpers"
	"github.com/controlescolar/escolar/internal/pkg/logger"
	"github.com/controlescolar/escolar/internal/web"
	"github.com/controlescolar/escolar/internal/web/router"
)

// Server runs one HTTP handler until interrupted and then releases the
// resources registered with it.
type Server struct {
	name    string
	addr    string
	handler http.Handler
	logger  zerolog.Logger
	closers []func()
	http    *http.Server
}

// New creates a server for handler on addr
func New(name, addr string, handler http.Handler, lgr zerolog.Logger, closers ...func()) *Server {
	return &Server{
		name:    name,
		addr:    addr,
		handler: handler,
		logger:  lgr.With().Str("server", name).Logger(),
		closers: closers,
	}
}

// NewAPIServer creates the REST API server by calling bootstrap functions.
func NewAPIServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}
	bootstrap.SetGinMode(cfg.Server.Mode, lgr)

	repos, releaseStorage, err := bootstrap.SetupStorage(context.Background(), cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup storage: %w", err)
	}

	publisher, releaseEvents, err := bootstrap.SetupEvents(cfg, lgr)
	if err != nil {
		releaseStorage()
		return nil, fmt.Errorf("failed to setup events: %w", err)
	}

	deps := bootstrap.BuildDependencies(repos, publisher, lgr)
	router := bootstrap.SetupRouter(cfg, deps)

	return New("api", ":"+cfg.Server.Port, router, lgr, releaseEvents, releaseStorage), nil
}

// NewWebServer creates the front-end shell server talking to the API at
// api.base_url.
func NewWebServer(configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}
	bootstrap.SetGinMode(cfg.Server.Mode, lgr)

	api, err := client.New(cfg.API.BaseURL,
		client.WithTimeout(helpers.ParseDuration(cfg.API.Timeout, 15*time.Second)),
		client.WithLogger(logger.WithComponent("api-client")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	engine, err := web.NewEngine(api, router.Default(), lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to build web shell: %w", err)
	}

	lgr.Info().Str("api", api.BaseURL()).Msg("Web shell configured")
	return New("web", ":"+cfg.Web.Port, engine, lgr), nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         s.addr,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(osSignals)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.release()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var shutdownErr error
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownErr = fmt.Errorf("server shutdown completed with errors: %w", err)
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	s.release()
	s.logger.Info().Msg("Server shutdown process complete.")
	return shutdownErr
}

// release runs the registered closers once, in registration order
func (s *Server) release() {
	closers := s.closers
	s.closers = nil
	for _, c := range closers {
		c()
	}
}
