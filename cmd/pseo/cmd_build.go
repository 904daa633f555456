package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/internal/content"
	"github.com/romangod6/pseo-builder/internal/models"
	"github.com/romangod6/pseo-builder/internal/sitemap"
	"github.com/romangod6/pseo-builder/internal/storage"
	"github.com/romangod6/pseo-builder/internal/utils"
)

var (
	workers int
	baseURL string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write MDX pages for every locale, location and category",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		store, err := openStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}
		return runGenerate(ctx, store)
	},
}

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Build tiered sitemaps from the content directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		store, err := openStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}
		return runSitemap(ctx, store)
	},
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate content and then build the sitemaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		store, err := openStore()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
		}
		if err := runGenerate(ctx, store); err != nil {
			return err
		}
		return runSitemap(ctx, store)
	},
}

func init() {
	for _, c := range []*cobra.Command{generateCmd, buildCmd} {
		c.Flags().IntVar(&workers, "workers", 0, "Concurrent page writers (default: generate.workers)")
	}
	for _, c := range []*cobra.Command{sitemapCmd, buildCmd} {
		c.Flags().StringVar(&baseURL, "base-url", "", "Absolute site URL for loc values (default: sitemap.base_url)")
	}
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runGenerate(ctx context.Context, store storage.Store) error {
	runLog, err := utils.NewRunLogger(cfg.Logging.Dir, models.RunKindContent, logLevel)
	if err != nil {
		return err
	}
	defer runLog.Close()

	cat, err := loadCatalog()
	if err != nil {
		runLog.LogError("failed to load catalog: %v", err)
		return err
	}
	runLog.LogDebug("catalog: %d locations, %d categories", len(cat.Locations), len(cat.Categories))

	n := cfg.Generate.Workers
	if workers > 0 {
		n = workers
	}

	runLog.LogInfo("generating %d locales into %s", len(cfg.Locales), cfg.Content.Dir)
	res, err := content.New(cat, content.Options{
		ContentDir:        cfg.Content.Dir,
		Locales:           cfg.Locales,
		Workers:           n,
		SameCategoryLinks: cfg.Links.SameCategory,
		SameCityLinks:     cfg.Links.SameCity,
		Classifier:        classifier(),
		Store:             store,
		Logger:            runLog.Logger(),
	}).Run(ctx)
	if err != nil {
		runLog.LogError("generation failed: %v", err)
		return fmt.Errorf("content generation failed: %w", err)
	}

	runLog.LogInfo("pages: %d, written: %d, unchanged: %d", res.Pages, res.Written, res.Unchanged)
	logger.Info("content generated", zap.String("log", runLog.Path()), zap.Int("pages", res.Pages))
	return nil
}

func runSitemap(ctx context.Context, store storage.Store) error {
	runLog, err := utils.NewRunLogger(cfg.Logging.Dir, models.RunKindSitemap, logLevel)
	if err != nil {
		return err
	}
	defer runLog.Close()

	url := cfg.Sitemap.BaseURL
	if baseURL != "" {
		url = baseURL
	}

	run := models.NewGenerationRun(models.RunKindSitemap)
	if store != nil {
		if err := store.CreateRun(ctx, run); err != nil {
			return fmt.Errorf("failed to record sitemap run: %w", err)
		}
	}

	res, genErr := sitemap.Generate(sitemap.Options{
		ContentDir: cfg.Content.Dir,
		PublicDir:  cfg.Public.Dir,
		BaseURL:    url,
		Locales:    cfg.Locales,
		Classifier: classifier(),
		Logger:     runLog.Logger(),
	})
	if res != nil {
		run.Pages = res.Total()
		run.Files = len(res.Batches)
	}
	run.Finish(genErr)
	if store != nil {
		if err := store.UpdateRun(ctx, run); err != nil {
			runLog.LogError("failed to update sitemap run: %v", err)
		}
	}
	if genErr != nil {
		runLog.LogError("sitemap build failed: %v", genErr)
		return fmt.Errorf("sitemap build failed: %w", genErr)
	}

	for _, tier := range sitemap.Tiers {
		runLog.LogInfo("%s: %d urls", tier, res.URLs[tier])
	}
	if res.IndexPath != "" {
		runLog.LogInfo("index written to %s", res.IndexPath)
	}
	return nil
}
