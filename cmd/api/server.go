package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"splitledger/internal/api/handlers/dashboard"
	"splitledger/internal/api/handlers/insights"
	mw "splitledger/internal/api/middlewares"
	"splitledger/internal/api/routers"
	"splitledger/internal/config"
	"splitledger/internal/repositories"
	"splitledger/internal/repositories/memstore"
	"splitledger/internal/repositories/mysqlstore"
	"splitledger/internal/repositories/sqlconnect"
	"splitledger/internal/services"
	"splitledger/pkg/cron"
	"splitledger/pkg/utils"
)

func main() {
	cfg := config.Load()

	utils.InitLogger()

	if err := cfg.Validate(); err != nil {
		utils.Logger.Fatal(err)
	}

	store, err := openStore(cfg)
	if err != nil {
		utils.Logger.Fatal("store setup failed: ", err)
	}

	var notifier services.Notifier = services.LogNotifier{}
	if cfg.MailEnabled() {
		notifier = services.EmailNotifier{
			Mailer: utils.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Email, cfg.SMTP.Password),
		}
	} else {
		utils.Logger.Warn("SMTP is not configured, reminders will only be logged")
	}

	loc := cfg.Location()
	dashboardService := services.NewDashboardService(store, loc)
	insightService := services.NewInsightService(store)
	reminderService := services.NewReminderService(store, cfg.LedgerWorkers, notifier)

	c, err := cron.StartCronJob(cron.Jobs{
		ReminderSchedule: cfg.ReminderSchedule,
		InsightSchedule:  cfg.InsightSchedule,
		InsightWindow:    cfg.InsightWindow,
		Reminders:        reminderService,
		Insights:         insightService,
	})
	if err != nil {
		utils.Logger.Fatal(err)
	}
	defer c.Stop()

	router := routers.MainRouter(
		dashboard.New(dashboardService),
		insights.New(insightService, cfg.InsightWindow, loc),
	)
	jwtMiddleware := mw.MiddlewaresExcludePaths(mw.JWTMiddleware(cfg.JWTSecret), "/health")

	secureMux := jwtMiddleware(mw.SecurityHeaders(router))

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           secureMux,
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.Logger.Error("graceful shutdown failed: ", err)
		}
	}()

	utils.Logger.Infof("Server is running on port %s", cfg.Port)
	if cfg.CertFile != "" {
		err = server.ListenAndServeTLS(cfg.CertFile, cfg.KeyFile)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Logger.Fatal("Error starting the server: ", err)
	}
	utils.Logger.Info("Server stopped")
}

func openStore(cfg *config.Config) (repositories.RecordStore, error) {
	switch cfg.DataBackend {
	case "memory":
		if cfg.SeedFile == "" {
			return memstore.New(), nil
		}
		return memstore.NewFromFile(cfg.SeedFile)
	default:
		if err := sqlconnect.ConnectDb(cfg.DB); err != nil {
			return nil, err
		}
		return mysqlstore.New(sqlconnect.DB), nil
	}
}
