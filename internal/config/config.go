package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"route_planner/internal/game"
	"route_planner/internal/models"
)

// Config holds server configuration
type Config struct {
	// Server
	Port string

	// Catalog
	AirportsPath string
	PlanesPath   string
	SnapshotPath string

	// Logging
	LogDir   string
	LogLevel string

	// Stopover search
	StopoverDepth int
	MaxCandidates int
	CacheSize     int
	CacheTTL      time.Duration

	// EconomicsPath is an optional YAML file overriding the default
	// pricing parameters in Economics.
	EconomicsPath string
	Economics     models.ProfitOptions
}

// Load loads configuration from environment variables, after reading .env
// if one exists.
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "4000"),
		AirportsPath: getEnv("AIRPORTS_FILE", "data/airports.csv"),
		PlanesPath:   getEnv("PLANES_FILE", "data/planes.json"),
		SnapshotPath: os.Getenv("CATALOG_SNAPSHOT"),

		LogDir:   getEnv("LOG_DIR", "logs"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EconomicsPath: os.Getenv("ECONOMICS_FILE"),
	}

	var err error
	if cfg.StopoverDepth, err = getEnvInt("STOPOVER_DEPTH", 1); err != nil {
		return nil, err
	}
	if cfg.MaxCandidates, err = getEnvInt("STOPOVER_MAX_CANDIDATES", 400); err != nil {
		return nil, err
	}
	if cfg.CacheSize, err = getEnvInt("STOPOVER_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getEnvDuration("STOPOVER_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}

	cfg.Economics = game.DefaultProfitOptions()
	if cfg.EconomicsPath != "" {
		if cfg.Economics, err = LoadEconomics(cfg.EconomicsPath, cfg.Economics); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadEconomics reads pricing parameters from a YAML file. Fields missing
// from the file keep their value in def.
func LoadEconomics(path string, def models.ProfitOptions) (models.ProfitOptions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return def, err
	}
	opts := def
	if err := yaml.Unmarshal(b, &opts); err != nil {
		return def, fmt.Errorf("%s: %w", path, err)
	}
	if opts.Reputation < 0 || opts.Reputation > 100 {
		return def, fmt.Errorf("%s: reputation %.1f: %w", path, opts.Reputation, game.ErrInvalidReputation)
	}
	if opts.Activity < 0 || opts.Activity > 24 {
		return def, fmt.Errorf("%s: activity %.1f: %w", path, opts.Activity, game.ErrInvalidActivity)
	}
	return opts, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
