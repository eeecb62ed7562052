// Package config loads and validates service configuration.
//
// Configuration comes from an optional YAML file with environment variable
// overrides. Missing external credentials are not a startup error: the
// component that needs them runs in disabled mode instead.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default server values.
const (
	DefaultPort            = 8080
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	defaultSiteURL = "https://thebharatmirror.com"
)

// Config holds the full application configuration.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	WordPress WordPressConfig `yaml:"wordpress"`
	Site      SiteConfig      `yaml:"site"`
	Webhook   WebhookConfig   `yaml:"webhook"`
	Indexing  IndexingConfig  `yaml:"indexing"`
	LinkedIn  LinkedInConfig  `yaml:"linkedin"`
	Redis     RedisConfig     `yaml:"redis"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// WordPressConfig holds the upstream CMS configuration. An empty APIURL
// disables all content fetching (every fetch returns no data).
type WordPressConfig struct {
	APIURL string `yaml:"api_url"`
}

// SiteConfig holds the public site configuration.
type SiteConfig struct {
	URL string `yaml:"url"`
}

// WebhookConfig holds the shared secret for the indexing webhook. An empty
// secret rejects every webhook call as unauthorized.
type WebhookConfig struct {
	Secret string `yaml:"secret"`
}

// IndexingConfig holds the Google Indexing API service account credentials.
type IndexingConfig struct {
	ClientEmail string `yaml:"client_email"`
	PrivateKey  string `yaml:"private_key"`
}

// LinkedInConfig holds the LinkedIn posting credentials. The organization
// URN is preferred over the person URN when both are configured.
type LinkedInConfig struct {
	AccessToken     string `yaml:"access_token"`
	OrganizationURN string `yaml:"organization_urn"`
	PersonURN       string `yaml:"person_urn"`
}

// OwnerURN returns the URN shares are published on behalf of, or an empty
// string when neither variant is configured.
func (c *LinkedInConfig) OwnerURN() string {
	if c.OrganizationURN != "" {
		return c.OrganizationURN
	}
	return c.PersonURN
}

// RedisConfig holds the optional revalidation cache backend. An empty Addr
// disables caching and every fetch goes straight to the CMS.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Load reads configuration from the YAML file at path (if it exists),
// applies environment variable overrides, then defaults, then validates.
// An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err):
			// Config file is optional, env vars carry everything.
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	overrideWithEnvVars(&cfg)
	setDefaults(&cfg)
	normalize(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func overrideWithEnvVars(cfg *Config) {
	if v := os.Getenv("APP_DEBUG"); v != "" {
		cfg.Debug = parseBool(v)
	}
	if v := os.Getenv("HTTPD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("WORDPRESS_API_URL"); v != "" {
		cfg.WordPress.APIURL = v
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.Site.URL = v
	}
	if v := os.Getenv("INDEXING_WEBHOOK_SECRET"); v != "" {
		cfg.Webhook.Secret = v
	}
	if v := os.Getenv("GOOGLE_INDEXING_CLIENT_EMAIL"); v != "" {
		cfg.Indexing.ClientEmail = v
	}
	if v := os.Getenv("GOOGLE_INDEXING_PRIVATE_KEY"); v != "" {
		cfg.Indexing.PrivateKey = v
	}
	if v := os.Getenv("LINKEDIN_ACCESS_TOKEN"); v != "" {
		cfg.LinkedIn.AccessToken = v
	}
	if v := os.Getenv("LINKEDIN_ORGANIZATION_URN"); v != "" {
		cfg.LinkedIn.OrganizationURN = v
	}
	if v := os.Getenv("LINKEDIN_PERSON_URN"); v != "" {
		cfg.LinkedIn.PersonURN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.Redis.DB = db
		}
	}
}

func setDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Site.URL == "" {
		cfg.Site.URL = defaultSiteURL
	}
}

// normalize cleans up values whose raw environment form differs from the
// form components expect.
func normalize(cfg *Config) {
	// The indexing API treats trailing-slash variants as distinct URLs,
	// and the fetcher joins base + endpoint. One canonical form each.
	cfg.WordPress.APIURL = strings.TrimSuffix(cfg.WordPress.APIURL, "/")
	cfg.Site.URL = strings.TrimSuffix(cfg.Site.URL, "/")

	// Private keys arrive through env vars with literal "\n" escapes.
	cfg.Indexing.PrivateKey = strings.ReplaceAll(cfg.Indexing.PrivateKey, `\n`, "\n")
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	return nil
}

// parseBool parses common boolean string representations. Returns true for
// "true", "1", "yes" (case-insensitive), false otherwise.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}
