package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shelter-directory/internal/adapter/s3"
	"github.com/couchcryptid/shelter-directory/internal/config"
	"github.com/couchcryptid/shelter-directory/internal/store"
)

func TestOpen_LocalPath(t *testing.T) {
	src, err := Open(context.Background(), "docs/data/facilities.json", Options{})
	require.NoError(t, err)
	assert.Equal(t, store.FileSource{Path: "docs/data/facilities.json"}, src)
}

func TestOpen_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"slug":"a","name":"A","address":"x","village":"v"}]`))
	}))
	defer srv.Close()

	src, err := Open(context.Background(), srv.URL+"/data/facilities.json", Options{FetchTimeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &store.HTTPSource{}, src)

	s := store.Load(context.Background(), src)
	require.NoError(t, s.Err())
	assert.Equal(t, 1, s.Len())
}

func TestOpen_S3(t *testing.T) {
	src, err := Open(context.Background(), "s3://shelters/facilities.json", Options{
		S3Region:    "ap-northeast-1",
		S3Endpoint:  "http://localhost:9000",
		S3PathStyle: true,
	})
	require.NoError(t, err)
	assert.IsType(t, &s3.Source{}, src)
	assert.Equal(t, "s3://shelters/facilities.json", src.String())
}

func TestOpen_BadS3Location(t *testing.T) {
	_, err := Open(context.Background(), "s3://shelters", Options{})
	assert.Error(t, err)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &config.Config{FetchTimeout: 3 * time.Second, S3Region: "eu-west-1", S3Endpoint: "http://minio:9000", S3PathStyle: true}
	assert.Equal(t, Options{
		FetchTimeout: 3 * time.Second,
		S3Region:     "eu-west-1",
		S3Endpoint:   "http://minio:9000",
		S3PathStyle:  true,
	}, OptionsFromConfig(cfg))
}

func TestOpen_ListingPage(t *testing.T) {
	tests := []struct {
		location string
		page     bool
	}{
		{"docs/index.html", true},
		{"docs/INDEX.HTM", true},
		{"https://example.org/shelters/index.html?v=2", true},
		{"s3://shelters/site/index.html", true},
		{"https://example.org/data/facilities.json", false},
		{"docs/data/facilities.json", false},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			src, err := Open(context.Background(), tt.location, Options{})
			require.NoError(t, err)
			_, isPage := src.(store.PageSource)
			assert.Equal(t, tt.page, isPage)
		})
	}
}

func TestOpen_ListingPageLoadsCards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<main data-source="cards">
			<article class="facility-card" data-name="新市國小" data-village="新市里"></article>
			<article class="facility-card" data-name="活動中心" data-village="大營里"></article>
		</main>`))
	}))
	defer srv.Close()

	src, err := Open(context.Background(), srv.URL+"/index.html", Options{FetchTimeout: time.Second})
	require.NoError(t, err)

	s := store.Load(context.Background(), src)
	require.NoError(t, s.Err())
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, srv.URL+"/index.html", s.Source())
}
