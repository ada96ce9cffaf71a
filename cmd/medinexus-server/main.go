package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/spaik6556-ops/MediNexus-Pro/internal/config"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/careplan"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/documents"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/healthsync"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/insights"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/labs"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/notify"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/radiology"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/scheduling"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/symptoms"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/twin"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/domain/vitals"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/auth"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/db"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/llm"
	"github.com/spaik6556-ops/MediNexus-Pro/internal/platform/middleware"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "medinexus-server",
		Short: "Patient digital twin API server",
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
		Short: "Start the API server",
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

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Text generation client. Without an API key every AI surface falls
	// back to its deterministic path.
	var gen llm.Client = llm.Noop{}
	if cfg.LLMAPIKey != "" {
		gen = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
		logger.Info().Str("model", cfg.LLMModel).Msg("text generation enabled")
	}

	// Repositories
	eventRepo := twin.NewEventRepoPG(pool)
	vitalRepo := vitals.NewVitalRepoPG(pool)
	labRepo := labs.NewLabRepoPG(pool)
	docRepo := documents.NewDocumentRepoPG(pool)
	planRepo := careplan.NewCarePlanRepoPG(pool)
	apptRepo := scheduling.NewAppointmentRepoPG(pool)
	analysisRepo := radiology.NewAnalysisRepoPG(pool)
	deviceRepo := healthsync.NewDeviceRepoPG(pool)
	notifyRepo := notify.NewNotifyRepoPG(pool)

	// Services. The twin service is the recorder every write path mirrors
	// into.
	twinSvc := twin.NewService(eventRepo, logger)
	vitalSvc := vitals.NewService(vitalRepo, twinSvc, logger)
	labSvc := labs.NewService(labRepo, twinSvc)
	docSvc := documents.NewService(docRepo, twinSvc, gen, logger)
	planSvc := careplan.NewService(planRepo, twinSvc)
	apptSvc := scheduling.NewService(apptRepo, twinSvc)
	symptomSvc := symptoms.NewService(gen, twinSvc, twinSvc, logger)
	radiologySvc := radiology.NewService(analysisRepo, gen, twinSvc, logger)
	syncSvc := healthsync.NewService(deviceRepo, vitalRepo, twinSvc, pool, logger)
	insightSvc := insights.NewService(vitalRepo, deviceRepo, planRepo, twinSvc, gen, cfg.InsightsCacheTTL, logger)
	notifySvc := notify.NewService(notifyRepo, logger)

	snap := &twin.SnapshotBuilder{
		LatestVitalFn: func(ctx context.Context, patientID, vitalType string) (*twin.VitalReading, error) {
			v, err := vitalRepo.LatestByType(ctx, patientID, vitalType)
			if err != nil || v == nil {
				return nil, err
			}
			return &twin.VitalReading{
				Type:       v.Type,
				Value:      v.Value,
				Unit:       v.Unit,
				Source:     v.Source,
				MeasuredAt: v.MeasuredAt,
			}, nil
		},
		ActivePlansFn: planRepo.CountActive,
		UpcomingAppointmentsFn: func(ctx context.Context, patientID string) (int, error) {
			return apptRepo.CountUpcoming(ctx, patientID, time.Now().UTC())
		},
		RecentLabsFn:    labRepo.CountSince,
		DocumentCountFn: docRepo.Count,
		Log:             logger,
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() && cfg.JWTSecret == "" {
		e.Use(auth.DevAuthMiddleware())
		logger.Warn().Msg("running with development auth, all requests are unrestricted")
	} else {
		e.Use(auth.JWTMiddleware([]byte(cfg.JWTSecret)))
	}

	// Health check
	e.GET("/health", func(c echo.Context) error {
		h := db.Check(c.Request().Context(), pool)
		code := http.StatusOK
		if h.Status != "ok" {
			code = http.StatusServiceUnavailable
		}
		return c.JSON(code, h)
	})

	// API routes
	apiV1 := e.Group("/api/v1")
	twin.NewHandler(twinSvc, snap).RegisterRoutes(apiV1)
	vitals.NewHandler(vitalSvc).RegisterRoutes(apiV1)
	labs.NewHandler(labSvc).RegisterRoutes(apiV1)
	documents.NewHandler(docSvc).RegisterRoutes(apiV1)
	careplan.NewHandler(planSvc).RegisterRoutes(apiV1)
	scheduling.NewHandler(apptSvc).RegisterRoutes(apiV1)
	symptoms.NewHandler(symptomSvc).RegisterRoutes(apiV1)
	radiology.NewHandler(radiologySvc).RegisterRoutes(apiV1)
	healthsync.NewHandler(syncSvc).RegisterRoutes(apiV1)
	insights.NewHandler(insightSvc).RegisterRoutes(apiV1)
	notify.NewHandler(notifySvc).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
