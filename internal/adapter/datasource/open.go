// Package datasource resolves a DATA_SOURCE location to a record source.
package datasource

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/couchcryptid/shelter-directory/internal/adapter/s3"
	"github.com/couchcryptid/shelter-directory/internal/config"
	"github.com/couchcryptid/shelter-directory/internal/store"
)

// Options carries the transport settings a location may need.
type Options struct {
	FetchTimeout time.Duration
	S3Region     string
	S3Endpoint   string
	S3PathStyle  bool
}

// OptionsFromConfig copies the source settings out of cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		FetchTimeout: cfg.FetchTimeout,
		S3Region:     cfg.S3Region,
		S3Endpoint:   cfg.S3Endpoint,
		S3PathStyle:  cfg.S3PathStyle,
	}
}

// Open picks a source by scheme: s3://bucket/key, http(s):// URLs, and
// anything else as a local path. A location ending in .html or .htm is a
// pre-rendered listing page whose cards hold the records.
func Open(ctx context.Context, location string, opts Options) (store.Source, error) {
	src, err := open(ctx, location, opts)
	if err != nil {
		return nil, err
	}
	if isPage(location) {
		return store.PageSource{Source: src}, nil
	}
	return src, nil
}

func open(ctx context.Context, location string, opts Options) (store.Source, error) {
	switch {
	case strings.HasPrefix(location, "s3://"):
		bucket, key, err := s3.ParseLocation(location)
		if err != nil {
			return nil, err
		}
		return s3.New(ctx, s3.Config{
			Region:    opts.S3Region,
			Bucket:    bucket,
			Key:       key,
			Endpoint:  opts.S3Endpoint,
			PathStyle: opts.S3PathStyle,
		})
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return store.NewHTTPSource(location, opts.FetchTimeout), nil
	default:
		return store.FileSource{Path: location}, nil
	}
}

func isPage(location string) bool {
	p := location
	if u, err := url.Parse(location); err == nil && u.Scheme != "" {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".html", ".htm":
		return true
	default:
		return false
	}
}
