package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/romangod6/pseo-builder/config"
	"github.com/romangod6/pseo-builder/internal/catalog"
	"github.com/romangod6/pseo-builder/internal/sitemap"
	"github.com/romangod6/pseo-builder/internal/storage"
	"github.com/romangod6/pseo-builder/internal/utils"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	// logLevel is the configured level, raised to debug by --verbose.
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "pseo",
	Short: "Programmatic SEO page and sitemap builder",
	Long: `pseo generates location x category landing pages as MDX, builds tiered
XML sitemaps over the generated content, serves a small API for previews and
lead capture, and audits published sitemaps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return err
		}

		logLevel = cfg.Logging.Level
		if verbose {
			logLevel = "debug"
		}
		logger = utils.NewLogger(logLevel, cfg.Logging.Format)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ./config.yaml or ./config/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(sitemapCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(auditCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openStore opens and migrates the configured store. It returns nil when
// the database driver is "none".
func openStore() (storage.Store, error) {
	store, err := storage.Open(cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	if store == nil {
		logger.Info("no database configured, manifest and leads disabled")
		return nil, nil
	}
	if err := store.Initialize(); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize database tables: %w", err)
	}
	return store, nil
}

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded",
		zap.Int("locations", len(cat.Locations)),
		zap.Int("categories", len(cat.Categories)),
	)
	return cat, nil
}

func classifier() *sitemap.Classifier {
	return sitemap.NewClassifier(cfg.Sitemap.PriorityCountries, cfg.Sitemap.PriorityCategories)
}
