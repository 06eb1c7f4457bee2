package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adcraft-app/adcraft-backend/config"
	"github.com/adcraft-app/adcraft-backend/internal/auth"
	"github.com/adcraft-app/adcraft-backend/internal/bootstrap"
	"github.com/adcraft-app/adcraft-backend/internal/telemetry"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v\n", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	telemetry.SetupLogger(cfg.App.LogFormat, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	db, err := bootstrap.OpenDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("database connected", "driver", cfg.Database.Driver)

	fbClient, err := auth.NewFirebaseClient(ctx, cfg.Firebase.ServiceAccountJSON)
	if err != nil {
		return err
	}
	verifier := auth.NewFirebaseVerifier(fbClient, cfg.Session.CheckRevoked, cfg.Session.Timeout)

	rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
		slog.Info("identity cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
	}

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "adcraft-backend",
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		Verifier:    verifier,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("listening", "addr", srv.Addr, "env", cfg.App.Environment, "version", cfg.App.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(sctx)
}
