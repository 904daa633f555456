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
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/internal/api"
	"github.com/romangod6/pseo-builder/internal/cache"
	"github.com/romangod6/pseo-builder/internal/content"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the page manifest, preview and lead API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if logLevel != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		gen := content.New(cat, content.Options{
			Locales:           cfg.Locales,
			SameCategoryLinks: cfg.Links.SameCategory,
			SameCityLinks:     cfg.Links.SameCity,
			Classifier:        classifier(),
			Logger:            logger,
		})

		var previews api.PreviewCache
		if cfg.Redis.Address != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			rc, err := cache.NewRedis(ctx, cfg.Redis.Address, cfg.Redis.TTL)
			cancel()
			if err != nil {
				logger.Warn("preview cache disabled", zap.Error(err))
			} else {
				defer rc.Close()
				previews = rc
			}
		}

		p := cfg.Server.Port
		if port > 0 {
			p = port
		}
		server := api.NewServer(p, api.NewHandler(store, cat, gen, previews, logger), logger)

		errCh := make(chan error, 1)
		go func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		return waitForShutdown(server, errCh)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default: server.port)")
}

func waitForShutdown(server *api.Server, errCh <-chan error) error {
	// Handle system signals for shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err := <-errCh:
		return err
	case <-sigChan:
	}
	logger.Info("shutting down")

	// Graceful server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("error shutting down server", zap.Error(err))
		return err
	}
	logger.Info("server shut down gracefully")
	return nil
}
