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

	"github.com/google/uuid"

	"github.com/example/roster-scheduler/internal/application"
	"github.com/example/roster-scheduler/internal/config"
	httptransport "github.com/example/roster-scheduler/internal/http"
	"github.com/example/roster-scheduler/internal/persistence/sqlite"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.Open(context.Background(), cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	idGenerator := uuid.NewString
	now := time.Now

	rosterRepo := sqlite.NewRosterRepository(pool)
	storeRepo := sqlite.NewStoreRepository(pool)
	employeeRepo := sqlite.NewEmployeeRepository(pool)

	session := application.NewRosterSessionWithLogger(rosterRepo, cfg.BusinessID, idGenerator, now, logger)
	session.SetSaveBoundary(application.SaveBoundary(cfg.SaveBoundary))
	session.SetDefaultShiftDuration(cfg.DefaultShiftDuration())

	stores := application.NewStoreDirectory(storeRepo, cfg.BusinessID, logger)
	employees := application.NewEmployeeDirectory(employeeRepo, cfg.BusinessID, logger)

	sessionHandler := httptransport.NewSessionHandler(session, stores, employees, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{Session: sessionHandler})
	handler := httptransport.RequestLogger(logger)(router)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("roster API listening", "addr", server.Addr, "business_id", cfg.BusinessID)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}
