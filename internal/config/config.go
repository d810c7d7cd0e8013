package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	defaultPort          = "3000"
	defaultDatabaseURL   = "contactcard.db"
	defaultStorageDriver = "filesystem"
	defaultStoragePath   = "./uploads"
	defaultStaticBase    = "/static"
	defaultCodeImageSize = "500"
)

// Config holds every runtime knob, loaded once at startup and passed
// down by reference. No package reads the environment after this.
type Config struct {
	AppEnv        string
	Port          string
	DatabaseURL   string
	PublicBaseURL string // optional; overrides request-derived viewer links

	StorageDriver    string // s3 | filesystem | memory
	S3Bucket         string
	S3Region         string
	LocalStoragePath string
	StaticURLBase    string

	CodeImageSize int // long edge of the stored code image, in pixels
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.PublicBaseURL = strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/")

	cfg.StorageDriver = strings.ToLower(strings.TrimSpace(getEnv("STORAGE_DRIVER", defaultStorageDriver)))
	cfg.S3Bucket = strings.TrimSpace(os.Getenv("S3_BUCKET"))
	cfg.S3Region = strings.TrimSpace(os.Getenv("S3_REGION"))
	cfg.LocalStoragePath = strings.TrimSpace(getEnv("LOCAL_STORAGE_PATH", defaultStoragePath))
	cfg.StaticURLBase = strings.TrimSpace(getEnv("STATIC_URL_BASE", defaultStaticBase))

	size, err := parseIntEnv("CODE_IMAGE_SIZE", defaultCodeImageSize)
	if err != nil {
		return nil, err
	}
	cfg.CodeImageSize = size

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.StorageDriver {
	case "s3":
		if cfg.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET must be set when STORAGE_DRIVER=s3")
		}
		if cfg.S3Region == "" {
			return fmt.Errorf("S3_REGION must be set when STORAGE_DRIVER=s3")
		}
	case "filesystem", "memory":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected s3, filesystem or memory)", cfg.StorageDriver)
	}

	if cfg.CodeImageSize <= 0 {
		return fmt.Errorf("CODE_IMAGE_SIZE must be > 0")
	}

	if cfg.PublicBaseURL != "" {
		u, err := url.Parse(cfg.PublicBaseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PUBLIC_BASE_URL must be an absolute URL, got %q", cfg.PublicBaseURL)
		}
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, raw)
	}
	return v, nil
}
