package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/clinicrecords/clinic/internal/config"
	"github.com/clinicrecords/clinic/internal/domain/billing"
	"github.com/clinicrecords/clinic/internal/domain/chart"
	"github.com/clinicrecords/clinic/internal/domain/diagnostics"
	"github.com/clinicrecords/clinic/internal/domain/identity"
	"github.com/clinicrecords/clinic/internal/domain/scheduling"
	"github.com/clinicrecords/clinic/internal/platform/db"
	"github.com/clinicrecords/clinic/internal/platform/middleware"
	"github.com/clinicrecords/clinic/internal/platform/web"
	"github.com/clinicrecords/clinic/migrations"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-server",
		Short: "Clinic records server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withMigrator(dir, func(ctx context.Context, m *db.Migrator) error {
				count, err := m.Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Printf("Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (default: compiled-in migrations)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			return withMigrator(dir, func(ctx context.Context, m *db.Migrator) error {
				statuses, err := m.Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}

				fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				fmt.Println("---------- ---------------------------------------- ---------- --------------------")
				for _, s := range statuses {
					status, appliedAt := "pending", ""
					if s.Applied {
						status = "applied"
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (default: compiled-in migrations)")
	cmd.AddCommand(statusCmd)

	return cmd
}

func withMigrator(dir string, fn func(ctx context.Context, m *db.Migrator) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dir == "" {
		dir = cfg.MigrationsDir
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()

	return fn(ctx, db.NewMigrator(pool, migrationFiles(dir), newLogger(cfg)))
}

func migrationFiles(dir string) fs.FS {
	if dir == "" {
		return migrations.FS
	}
	return os.DirFS(dir)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).Level(level).With().Timestamp().Logger()
	}
	return logger
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	if cfg.AutoMigrate {
		count, err := db.NewMigrator(pool, migrationFiles(cfg.MigrationsDir), logger).Up(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to apply migrations")
		}
		logger.Info().Int("applied", count).Msg("migrations up to date")
	}

	e := newServer(cfg, pool, logger)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer wires repositories, services and handlers onto a fresh echo
// instance. The pool is only used once requests arrive.
func newServer(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = web.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit(cfg.BodyLimit))

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 || rateLimitCfg.BurstSize <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}

	e.GET("/health", db.LivenessHandler())
	e.GET("/health/db", db.HealthHandler(pool))

	app := e.Group("", middleware.RateLimit(rateLimitCfg))
	app.GET("/", web.IndexHandler())

	identitySvc := identity.NewService(identity.NewPatientRepoPG(pool), identity.NewDoctorRepoPG(pool))
	schedulingSvc := scheduling.NewService(scheduling.NewAppointmentRepoPG(pool), identitySvc)
	diagnosticsSvc := diagnostics.NewService(diagnostics.NewLabResultRepoPG(pool), identitySvc)
	billingSvc := billing.NewService(
		billing.NewBillRepoPG(pool),
		billing.NewBillItemRepoPG(pool),
		db.NewTxRunner(pool),
		identitySvc,
		schedulingSvc,
	)
	chartSvc := chart.NewService(identitySvc, schedulingSvc, diagnosticsSvc, billingSvc)

	identity.NewHandler(identitySvc).RegisterRoutes(app)
	scheduling.NewHandler(schedulingSvc).RegisterRoutes(app)
	diagnostics.NewHandler(diagnosticsSvc).RegisterRoutes(app)
	billing.NewHandler(billingSvc).RegisterRoutes(app)
	chart.NewHandler(chartSvc).RegisterRoutes(app)

	return e
}
