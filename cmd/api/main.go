package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"gigflow/internal/app"
	"gigflow/internal/config"
	"gigflow/internal/logger"
	jwtsvc "gigflow/internal/pkg/jwt"
	"gigflow/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	logger.Init(cfg.AppEnv)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Fatal("server stopped", "error", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	startCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	backend, err := app.Open(startCtx, cfg)
	cancel()
	if err != nil {
		return err
	}

	hub := realtime.NewHub()
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           app.NewRouter(cfg, backend, hub, j),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening",
			"addr", srv.Addr,
			"backend", backend.Name,
			"transactions", backend.Transactor.SupportsTransactions(),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		hub.Close()
		return errors.Join(srv.Shutdown(shutdownCtx), backend.Close(shutdownCtx))
	})
	return g.Wait()
}
