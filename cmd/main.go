package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qwisky/relay-service/config"
	"github.com/qwisky/relay-service/internal/relay"
	httpx "github.com/qwisky/relay-service/internal/transport/http"
	"github.com/qwisky/relay-service/internal/transport/ws"
	"github.com/qwisky/relay-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting relay-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- relay core ---
	relaySrv := relay.NewServer(relay.Config{
		TypingTTL:           cfg.Relay.TypingTTLDur(),
		TypingSweepInterval: cfg.Relay.TypingSweepIntervalDur(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relaySrv.Run(ctx) // выметка устаревших typing-записей

	// --- WS transport ---
	wsServer := ws.NewServer(relaySrv, ws.Config{
		PingInterval:    cfg.WS.PingIntervalDur(),
		WriteTimeout:    cfg.WS.WriteTimeoutDur(),
		MaxMessageBytes: cfg.WS.MaxMessageBytes,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
	})

	// --- HTTP ---
	handler := httpx.NewHandler(relaySrv.Presence())
	router := httpx.NewRouter(handler, wsServer, cfg.CORS.AllowedOrigins)
	httpSrv := &http.Server{
		Addr:        cfg.HTTP.Addr,
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
		// WriteTimeout не ставим: он убивал бы долгоживущие WS-соединения
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	cancel()
	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
