package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/controlescolar/escolar/internal/app/controllers"
	appMigrations "github.com/controlescolar/escolar/internal/app/migrations"
	appRepos "github.com/controlescolar/escolar/internal/app/repositories"
	"github.com/controlescolar/escolar/internal/app/repositories/memory"
	appRoutes "github.com/controlescolar/escolar/internal/app/routes"
	appServices "github.com/controlescolar/escolar/internal/app/services"
	"github.com/controlescolar/escolar/internal/config"
	"github.com/controlescolar/escolar/internal/db"
	"github.com/controlescolar/escolar/internal/events"
	appMiddleware "github.com/controlescolar/escolar/internal/middleware"
	"github.com/controlescolar/escolar/internal/pkg/logger"
	"github.com/controlescolar/escolar/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	Services    *appServices.Services
	Controllers appRoutes.Controllers
	Events      events.Publisher
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured storage, applies migrations when it is
// PostgreSQL and creates the default data. The returned func releases it.
func SetupStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	var (
		repos   *appRepos.Repositories
		release = func() {}
	)

	switch cfg.Storage.Driver {
	case config.StorageMemory:
		lgr.Info().Msg("Using in-memory storage")
		repos = memory.NewRepositories()

	case config.StoragePostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		migrator := appMigrations.NewMigrator(database.Pool, appMigrations.Files(), lgr)
		if err := migrator.Migrate(ctx); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		repos = appRepos.NewRepositories(database.Pool)
		release = func() {
			lgr.Info().Msg("Closing database connection pool...")
			database.Close()
		}

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if err := seed.CreateDefaultData(ctx, repos, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}
	return repos, release, nil
}

// SetupEvents connects the configured change event publisher. The returned
// func drains and closes the connection.
func SetupEvents(cfg *config.Config, lgr zerolog.Logger) (events.Publisher, func(), error) {
	if cfg.Events.Driver != config.EventsNATS {
		return events.Nop{}, func() {}, nil
	}

	nc, err := events.Connect(cfg.Events.NATSURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to NATS")
		return nil, nil, err
	}
	lgr.Info().Str("url", cfg.Events.NATSURL).Msg("Publishing change events to NATS")

	release := func() {
		if err := nc.Drain(); err != nil {
			lgr.Warn().Err(err).Msg("NATS drain error")
		}
	}
	return events.NewNATSPublisher(nc, cfg.Events.SubjectPrefix, lgr), release, nil
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(repos *appRepos.Repositories, publisher events.Publisher, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Repos: repos, Events: publisher, Logger: lgr}

	deps.Services = appServices.NewServices(repos, appServices.Options{
		Events: publisher,
		Logger: lgr,
	})

	deps.Controllers = appRoutes.Controllers{
		Alumnos:         appControllers.NewAlumnoController(deps.Services.Alumnos),
		Carreras:        appControllers.NewCarreraController(deps.Services.Carreras),
		CiclosEscolares: appControllers.NewCicloEscolarController(deps.Services.CiclosEscolares),
		Cuentas:         appControllers.NewCuentaController(deps.Services.Cuentas),
		MetodosPago:     appControllers.NewMetodoPagoController(deps.Services.MetodosPago),
		Conceptos:       appControllers.NewConceptoController(deps.Services.Conceptos),
		Observaciones:   appControllers.NewObservacionController(deps.Services.Observaciones),
		Roles:           appControllers.NewRolController(deps.Services.Roles),
		Usuarios:        appControllers.NewUsuarioController(deps.Services.Usuarios),
	}

	return deps
}

// SetGinMode selects release mode for production and debug mode otherwise
func SetGinMode(mode string, lgr zerolog.Logger) {
	if strings.ToLower(mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
		return
	}
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	appMiddleware.UseJSONFieldNames()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.Logger(deps.Logger.With().Str("component", "http").Logger()),
	)

	appRoutes.SetupRouter(router, cfg.Server.APIPrefix, deps.Controllers)
	return router
}
