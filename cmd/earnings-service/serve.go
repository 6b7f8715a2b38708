package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-earnings-service/internal/app/background"
	"github.com/LavaJover/shvark-earnings-service/internal/delivery/grpcapi"
	"github.com/LavaJover/shvark-earnings-service/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 15 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	deps, uc, err := bootstrap(cmd)
	if err != nil {
		return err
	}
	defer deps.Close()
	cfg := deps.Config

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := handlers.NewRouter(handlers.RouterConfig{
		Earnings: handlers.NewEarningHandler(uc.EarningUsecase),
		Currency: handlers.NewCurrencyHandler(uc.CurrencyUsecase),
		Ping:     deps.Ping,
		Gatherer: deps.Registry,
		Version:  version,
	})
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:         cfg.HTTPServer.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	grpcServer := grpc.NewServer()
	health := grpcapi.NewHealthHandler(deps.Ping, 15*time.Second)
	health.Register(grpcServer)
	lis, err := net.Listen("tcp", cfg.GRPCServer.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	tasks, err := background.NewBackgroundTasks(uc.CurrencyUsecase, cfg.RatesCache.CheckInterval)
	if err != nil {
		return err
	}
	if err := tasks.StartAll(ctx); err != nil {
		return err
	}
	defer tasks.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		health.Run(gctx)
		return nil
	})
	g.Go(func() error {
		slog.Info("gRPC server started", "addr", cfg.GRPCServer.Addr())
		return grpcServer.Serve(lis)
	})
	g.Go(func() error {
		slog.Info("HTTP server started", "addr", cfg.HTTPServer.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
