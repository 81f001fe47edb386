package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// maxPayloadBytes bounds a fetched collection. The directory is a few dozen
// records; anything near this size is not a facility list.
const maxPayloadBytes = 8 << 20

// FileSource reads the collection from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(_ context.Context) ([]byte, error) {
	return os.ReadFile(s.Path)
}

func (s FileSource) String() string { return s.Path }

// HTTPSource fetches the collection with a single GET. Under js/wasm the
// standard client goes through the browser Fetch API.
type HTTPSource struct {
	url        string
	httpClient *http.Client
}

// NewHTTPSource creates a source for url. A non-positive timeout disables the
// client timeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	c := &http.Client{}
	if timeout > 0 {
		c.Timeout = timeout
	}
	return &HTTPSource{url: url, httpClient: c}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort cleanup

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxPayloadBytes {
		return nil, fmt.Errorf("payload exceeds %d bytes", maxPayloadBytes)
	}
	return body, nil
}

func (s *HTTPSource) String() string { return s.url }
