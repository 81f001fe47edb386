package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "docs/data/facilities.json", cfg.DataSource)
	assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "docs", cfg.SiteDir)
	assert.Equal(t, language.MustParse("zh-Hant"), cfg.SiteLocale)
	assert.Equal(t, "us-east-1", cfg.S3Region)
	assert.Empty(t, cfg.S3Endpoint)
	assert.False(t, cfg.S3PathStyle)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_SOURCE", "s3://shelters/facilities.json")
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("SITE_DIR", "/srv/site")
	t.Setenv("SITE_LOCALE", "en")
	t.Setenv("S3_REGION", "ap-northeast-1")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "s3://shelters/facilities.json", cfg.DataSource)
	assert.Equal(t, 2*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "/srv/site", cfg.SiteDir)
	assert.Equal(t, language.English, cfg.SiteLocale)
	assert.Equal(t, "ap-northeast-1", cfg.S3Region)
	assert.Equal(t, "http://localhost:9000", cfg.S3Endpoint)
	assert.True(t, cfg.S3PathStyle)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidFetchTimeout(t *testing.T) {
	for _, v := range []string{"soon", "0s", "-5s"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("FETCH_TIMEOUT", v)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "FETCH_TIMEOUT")
		})
	}
}

func TestLoad_InvalidLocale(t *testing.T) {
	t.Setenv("SITE_LOCALE", "not a locale!")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SITE_LOCALE")
}

func TestLoad_InvalidPathStyle(t *testing.T) {
	t.Setenv("S3_PATH_STYLE", "sometimes")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_PATH_STYLE")
}
