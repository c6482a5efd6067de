package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pointtaken/timesheet/internal"
	"github.com/pointtaken/timesheet/internal/access"
	"github.com/pointtaken/timesheet/internal/auth"
	authRepo "github.com/pointtaken/timesheet/internal/auth/postgres"
	"github.com/pointtaken/timesheet/internal/notes"
	notesRepo "github.com/pointtaken/timesheet/internal/notes/postgres"
	"github.com/pointtaken/timesheet/internal/project"
	projectRepo "github.com/pointtaken/timesheet/internal/project/postgres"
	"github.com/pointtaken/timesheet/internal/report"
	"github.com/pointtaken/timesheet/internal/timeentry"
	timeentryRepo "github.com/pointtaken/timesheet/internal/timeentry/postgres"
	"github.com/pointtaken/timesheet/internal/transport/rest"
	"github.com/pointtaken/timesheet/internal/transport/swagger"
	"github.com/pointtaken/timesheet/internal/user"
	"github.com/pointtaken/timesheet/pkg/logger"
)

const openapiPath = "./api/openapi.yml"

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Logging.Level, config.Logging.Format)
	lg := logger.L()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize orm: %w", err)
	}

	// A broken spec should fail the boot, not the first UI visit.
	if _, err := swagger.LoadSpec(context.Background(), openapiPath); err != nil {
		return nil, fmt.Errorf("failed to load openapi spec: %w", err)
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, buildHandlers(config, gormDB, lg), lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

func buildHandlers(config *internal.Config, gormDB *gorm.DB, lg *slog.Logger) rest.Handlers {
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenTTL,
		config.Security.RefreshTokenTTL,
	)
	authService := auth.NewService(authRepo.NewAuthRepository(gormDB), tokenGen, lg)

	resolver := access.NewResolver(config.Access)

	entryRepo := timeentryRepo.NewTimeEntryRepository(gormDB)
	projectService := project.NewService(projectRepo.NewProjectRepository(gormDB), entryRepo, lg)
	entryService := timeentry.NewService(entryRepo, projectService, lg)
	notesService := notes.NewService(notesRepo.NewNoteRepository(gormDB), lg)

	return rest.Handlers{
		Auth:      auth.NewHandler(lg, authService),
		User:      user.NewHandler(lg, resolver),
		Project:   project.NewHandler(lg, projectService, resolver),
		TimeEntry: timeentry.NewHandler(lg, entryService),
		Report:    report.NewHandler(lg, entryService, projectService, config.Access.HoursPerWorkday),
		Notes:     notes.NewHandler(lg, notesService),
		Access:    access.NewMiddleware(lg, resolver, projectService.AccessEmailForOrganization),
	}
}

// initDB opens the pgx-backed connection used for both the ORM and the
// health probe.
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
