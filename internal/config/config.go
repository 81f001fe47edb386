package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"golang.org/x/text/language"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// DataSource is a local path, an http(s) URL or s3://bucket/key.
	DataSource   string
	FetchTimeout time.Duration

	SiteDir    string
	SiteLocale language.Tag

	// S3 settings apply only to s3:// data sources.
	S3Region    string
	S3Endpoint  string
	S3PathStyle bool
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "5s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	locale, err := language.Parse(sharedcfg.EnvOrDefault("SITE_LOCALE", "zh-Hant"))
	if err != nil {
		return nil, fmt.Errorf("invalid SITE_LOCALE: %w", err)
	}

	pathStyle, err := parsePathStyle()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DataSource:   sharedcfg.EnvOrDefault("DATA_SOURCE", "docs/data/facilities.json"),
		FetchTimeout: fetchTimeout,

		SiteDir:    sharedcfg.EnvOrDefault("SITE_DIR", "docs"),
		SiteLocale: locale,

		S3Region:    sharedcfg.EnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3PathStyle: pathStyle,
	}

	if cfg.DataSource == "" {
		return nil, errors.New("DATA_SOURCE is required")
	}
	if cfg.SiteDir == "" {
		return nil, errors.New("SITE_DIR is required")
	}

	return cfg, nil
}

func parsePathStyle() (bool, error) {
	v := os.Getenv("S3_PATH_STYLE")
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.New("invalid S3_PATH_STYLE")
	}
	return b, nil
}
