package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// BranchPolicy controls what a scrape run does when fetching one quadrant
// of a subdivided region fails after retries.
type BranchPolicy string

const (
	// BranchBestEffort logs the failure and continues with the sibling
	// quadrants; the failed branch contributes no records.
	BranchBestEffort BranchPolicy = "best_effort"
	// BranchFailFast aborts the whole run on the first branch failure.
	BranchFailFast BranchPolicy = "fail_fast"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Dyrt     DyrtConfig
	Geocoder GeocoderConfig
	Scraper  ScraperConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

type DyrtConfig struct {
	BaseURL        string
	SearchPath     string
	UserAgent      string
	RequestTimeout time.Duration
}

type GeocoderConfig struct {
	Enabled        bool
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration
}

type ScraperConfig struct {
	Enabled bool

	// Root region covered by a full run.
	BoundsNorth float64
	BoundsSouth float64
	BoundsEast  float64
	BoundsWest  float64

	// PageSize is the capacity of one search query: the maximum result
	// count the API is trusted to return completely in a single page.
	PageSize int
	// MaxDepth bounds quadtree subdivision; at the bottom level results
	// are accepted even if the region is still over capacity.
	MaxDepth int

	MaxRetries   int
	RetryBackoff time.Duration
	Concurrency  int
	BranchPolicy BranchPolicy

	ScheduleInterval time.Duration
	RunLockTTL       time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Environment-only configuration is fine in containers; a missing
	// .env file is not an error.
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Dyrt: DyrtConfig{
			BaseURL:        viper.GetString("DYRT_BASE_URL"),
			SearchPath:     viper.GetString("DYRT_SEARCH_PATH"),
			UserAgent:      viper.GetString("DYRT_USER_AGENT"),
			RequestTimeout: time.Duration(viper.GetInt("DYRT_REQUEST_TIMEOUT")) * time.Second,
		},
		Geocoder: GeocoderConfig{
			Enabled:        viper.GetBool("GEOCODER_ENABLED"),
			BaseURL:        viper.GetString("GEOCODER_BASE_URL"),
			UserAgent:      viper.GetString("GEOCODER_USER_AGENT"),
			RequestTimeout: time.Duration(viper.GetInt("GEOCODER_REQUEST_TIMEOUT")) * time.Second,
		},
		Scraper: ScraperConfig{
			Enabled:          viper.GetBool("SCRAPER_ENABLED"),
			BoundsNorth:      viper.GetFloat64("SCRAPER_BOUNDS_NORTH"),
			BoundsSouth:      viper.GetFloat64("SCRAPER_BOUNDS_SOUTH"),
			BoundsEast:       viper.GetFloat64("SCRAPER_BOUNDS_EAST"),
			BoundsWest:       viper.GetFloat64("SCRAPER_BOUNDS_WEST"),
			PageSize:         viper.GetInt("SCRAPER_PAGE_SIZE"),
			MaxDepth:         viper.GetInt("SCRAPER_MAX_DEPTH"),
			MaxRetries:       viper.GetInt("SCRAPER_MAX_RETRIES"),
			RetryBackoff:     time.Duration(viper.GetInt("SCRAPER_RETRY_BACKOFF")) * time.Second,
			Concurrency:      viper.GetInt("SCRAPER_CONCURRENCY"),
			BranchPolicy:     BranchPolicy(viper.GetString("SCRAPER_BRANCH_POLICY")),
			ScheduleInterval: time.Duration(viper.GetInt("SCRAPER_SCHEDULE_INTERVAL")) * time.Hour,
			RunLockTTL:       time.Duration(viper.GetInt("SCRAPER_RUN_LOCK_TTL")) * time.Minute,
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Dyrt.BaseURL == "" {
		cfg.Dyrt.BaseURL = "https://thedyrt.com"
	}
	if cfg.Dyrt.SearchPath == "" {
		cfg.Dyrt.SearchPath = "/api/v6/locations/search-results"
	}
	if cfg.Dyrt.UserAgent == "" {
		cfg.Dyrt.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36"
	}
	if cfg.Dyrt.RequestTimeout == 0 {
		cfg.Dyrt.RequestTimeout = 30 * time.Second
	}

	if cfg.Geocoder.BaseURL == "" {
		cfg.Geocoder.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocoder.UserAgent == "" {
		cfg.Geocoder.UserAgent = "TheDyrtScraper/1.0"
	}
	if cfg.Geocoder.RequestTimeout == 0 {
		cfg.Geocoder.RequestTimeout = 10 * time.Second
	}

	// Continental US by default.
	if cfg.Scraper.BoundsNorth == 0 && cfg.Scraper.BoundsSouth == 0 &&
		cfg.Scraper.BoundsEast == 0 && cfg.Scraper.BoundsWest == 0 {
		cfg.Scraper.BoundsNorth = 49.38
		cfg.Scraper.BoundsSouth = 25.82
		cfg.Scraper.BoundsEast = -66.94
		cfg.Scraper.BoundsWest = -124.39
	}
	if cfg.Scraper.PageSize == 0 {
		cfg.Scraper.PageSize = 500
	}
	if cfg.Scraper.MaxDepth == 0 {
		cfg.Scraper.MaxDepth = 5
	}
	if cfg.Scraper.MaxRetries == 0 {
		cfg.Scraper.MaxRetries = 3
	}
	if cfg.Scraper.RetryBackoff == 0 {
		cfg.Scraper.RetryBackoff = 1 * time.Second
	}
	if cfg.Scraper.Concurrency == 0 {
		cfg.Scraper.Concurrency = 4
	}
	if cfg.Scraper.BranchPolicy == "" {
		cfg.Scraper.BranchPolicy = BranchBestEffort
	}
	if cfg.Scraper.ScheduleInterval == 0 {
		cfg.Scraper.ScheduleInterval = 24 * time.Hour
	}
	if cfg.Scraper.RunLockTTL == 0 {
		cfg.Scraper.RunLockTTL = 120 * time.Minute
	}
}

func (c *Config) validate() error {
	if c.Scraper.BoundsNorth <= c.Scraper.BoundsSouth {
		return fmt.Errorf("invalid scraper bounds: north (%f) must be greater than south (%f)",
			c.Scraper.BoundsNorth, c.Scraper.BoundsSouth)
	}
	if c.Scraper.BoundsEast <= c.Scraper.BoundsWest {
		return fmt.Errorf("invalid scraper bounds: east (%f) must be greater than west (%f)",
			c.Scraper.BoundsEast, c.Scraper.BoundsWest)
	}
	if p := c.Scraper.BranchPolicy; p != BranchBestEffort && p != BranchFailFast {
		return fmt.Errorf("invalid branch policy %q: must be %q or %q",
			p, BranchBestEffort, BranchFailFast)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
