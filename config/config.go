package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. PSEO_SERVER_PORT.
const EnvPrefix = "PSEO"

// DefaultBaseURL is used for sitemap loc values when nothing overrides it.
const DefaultBaseURL = "https://example.com"

type Config struct {
	Server struct {
		Port int `mapstructure:"port"`
	} `mapstructure:"server"`
	Database struct {
		Driver string `mapstructure:"driver"`
		URL    string `mapstructure:"url"`
	} `mapstructure:"database"`
	Content struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"content"`
	Public struct {
		Dir string `mapstructure:"dir"`
	} `mapstructure:"public"`
	Locales []string `mapstructure:"locales"`
	Sitemap struct {
		BaseURL            string   `mapstructure:"base_url"`
		PriorityCountries  []string `mapstructure:"priority_countries"`
		PriorityCategories []string `mapstructure:"priority_categories"`
	} `mapstructure:"sitemap"`
	Generate struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"generate"`
	Links struct {
		SameCategory int `mapstructure:"same_category"`
		SameCity     int `mapstructure:"same_city"`
	} `mapstructure:"links"`
	Catalog struct {
		File string `mapstructure:"file"`
	} `mapstructure:"catalog"`
	Redis struct {
		Address string        `mapstructure:"address"`
		TTL     time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`
	Audit struct {
		Sample    int    `mapstructure:"sample"`
		UserAgent string `mapstructure:"user_agent"`
	} `mapstructure:"audit"`
	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
		Dir    string `mapstructure:"dir"`
	} `mapstructure:"logging"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "pseo.db")
	v.SetDefault("content.dir", "content")
	v.SetDefault("public.dir", "public")
	v.SetDefault("locales", []string{"en", "es", "fr", "de"})
	v.SetDefault("sitemap.base_url", DefaultBaseURL)
	v.SetDefault("sitemap.priority_countries", []string{"united-states", "united-kingdom", "canada", "australia", "germany"})
	v.SetDefault("sitemap.priority_categories", []string{"web-design", "seo", "ecommerce", "web-development"})
	v.SetDefault("generate.workers", 8)
	v.SetDefault("links.same_category", 3)
	v.SetDefault("links.same_city", 3)
	v.SetDefault("catalog.file", "")
	v.SetDefault("redis.address", "")
	v.SetDefault("redis.ttl", "10m")
	v.SetDefault("audit.sample", 20)
	v.SetDefault("audit.user_agent", "pSEO Sitemap Auditor v1.0")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.dir", "logs")
}

// LoadConfig reads config.yaml from path, or from . and ./config when path
// is empty. A missing file is not an error. A .env file in the working
// directory is loaded first so its values reach the PSEO_ overrides.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("sitemap.base_url", "SITEMAP_BASE_URL", EnvPrefix+"_SITEMAP_BASE_URL"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Sitemap.BaseURL = strings.TrimRight(cfg.Sitemap.BaseURL, "/")
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "", "none", "sqlite", "sqlite3", "postgres", "postgresql":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if len(c.Locales) == 0 {
		return errors.New("at least one locale is required")
	}
	if !strings.HasPrefix(c.Sitemap.BaseURL, "http://") && !strings.HasPrefix(c.Sitemap.BaseURL, "https://") {
		return fmt.Errorf("sitemap.base_url must be absolute, got %q", c.Sitemap.BaseURL)
	}
	if c.Generate.Workers <= 0 {
		return fmt.Errorf("generate.workers must be positive, got %d", c.Generate.Workers)
	}
	return nil
}
