package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"oliveflow/cmd"
	httpadapter "oliveflow/internal/adapters/in/http"
	"oliveflow/internal/adapters/out/inbox"
	"oliveflow/internal/adapters/out/postgres"
	"oliveflow/internal/adapters/out/reportstore"
	"oliveflow/internal/core/ports"
	"oliveflow/internal/pkg/metrics"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm/logger"
)

func main() {
	configs := getConfigs()
	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := postgres.Open(postgres.DSN(
		configs.DBHost,
		configs.DBPort,
		configs.DBUser,
		configs.DBPassword,
		configs.DBName,
		configs.DBSslMode,
	), logger.Warn)
	if err != nil {
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	notifications, err := inbox.New(configs.InboxPath, slogger)
	if err != nil {
		log.Fatalf("Failed to open inbox: %v", err)
	}
	defer notifications.Close()

	reports, err := newReportStore(configs, slogger)
	if err != nil {
		log.Fatalf("Failed to configure report store: %v", err)
	}

	m := metrics.New()
	app := cmd.NewCompositionRoot(configs, db, notifications, reports, m, slogger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatal("Failed to start jobs:", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, notifications, m, configs.HTTPPort, slogger)
}

func getConfigs() cmd.Config {
	// .env is optional, the environment wins over it.
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	config := cmd.Config{
		HTTPPort:        envOr("HTTP_PORT", "8080"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          envOr("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       os.Getenv("DB_SSLMODE"),
		InboxPath:       envOr("INBOX_PATH", "inbox.db"),
		ReportsBucket:   os.Getenv("REPORTS_BUCKET"),
		ReportsRegion:   os.Getenv("REPORTS_REGION"),
		ReportsEndpoint: os.Getenv("REPORTS_ENDPOINT"),
		OutboxSchedule:  os.Getenv("OUTBOX_SCHEDULE"),
		AuditSchedule:   os.Getenv("AUDIT_SCHEDULE"),
	}
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newReportStore(configs cmd.Config, logger *slog.Logger) (ports.ReportStore, error) {
	if configs.ReportsBucket == "" {
		logger.Warn("REPORTS_BUCKET is not set, analysis reports are kept in memory")
		return reportstore.NewMemoryStore(), nil
	}
	return reportstore.NewS3Store(context.Background(), reportstore.Config{
		Bucket:   configs.ReportsBucket,
		Region:   configs.ReportsRegion,
		Endpoint: configs.ReportsEndpoint,
	})
}

func startWebServer(
	app cmd.CompositionRoot,
	notifications httpadapter.InboxReader,
	m *metrics.Metrics,
	port string,
	logger *slog.Logger,
) {
	doc, err := httpadapter.GetSwagger()
	if err != nil {
		log.Fatalf("Error loading OpenAPI document: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(m.Middleware())
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	server := httpadapter.NewServer(app.CreateHTTPHandlers(), notifications, m, logger)
	if err := httpadapter.Register(e, server, doc); err != nil {
		log.Fatalf("Error registering HTTP handlers: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Error(err)
	}
}
