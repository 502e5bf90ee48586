package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carviz/internal"
	"carviz/internal/config"
	"carviz/internal/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.DefaultLogger
	logger.SetLevel(internal.ParseLogLevel(appConfig.LogLevel))
	gin.SetMode(appConfig.Server.GinMode)

	c, err := container.New(appConfig, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The views are only built once the load has finished, either way.
	c.LoadDataset(ctx)

	server, err := c.NewServer()
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	servers := []*http.Server{{
		Addr:              ":" + appConfig.Server.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}}
	if appConfig.Profiling.Enabled {
		servers = append(servers, &http.Server{
			Addr:              ":" + appConfig.Profiling.Port,
			Handler:           c.NewAdminApp().Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			logger.Info("listening on http://localhost%s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		return c.Sessions.Run(gctx, time.Minute)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		for _, srv := range servers {
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("shutdown %s: %v", srv.Addr, err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
