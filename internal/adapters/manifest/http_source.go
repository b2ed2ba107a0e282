package manifest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/pkg/config"
)

// maxErrorBody bounds how much of a failed response is quoted in errors
const maxErrorBody = 64 << 10

// HTTPSource reads the manifest with a single GET request
type HTTPSource struct {
	client    *http.Client
	url       string
	userAgent string
	logger    *slog.Logger
}

// Option configures an HTTPSource
type Option func(*HTTPSource)

// WithClient overrides the HTTP client
func WithClient(c *http.Client) Option {
	return func(s *HTTPSource) { s.client = c }
}

// WithUserAgent sets the User-Agent header sent with the request
func WithUserAgent(ua string) Option {
	return func(s *HTTPSource) { s.userAgent = ua }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(s *HTTPSource) { s.logger = l }
}

// NewHTTPSource creates a manifest source for url. An empty url selects the published manifest.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	if url == "" {
		url = config.DefaultManifestURL
	}

	s := &HTTPSource{
		client: http.DefaultClient,
		url:    url,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the manifest location
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch implements ports.ManifestSource
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build manifest request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	s.logger.Debug("fetching manifest", "url", s.url)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("fetch manifest: status=%s body=%s", resp.Status, string(b))
	}

	var images []domain.Image
	if err := json.NewDecoder(resp.Body).Decode(&images); err != nil {
		return nil, fmt.Errorf("decode manifest JSON: %w", err)
	}

	s.logger.Debug("manifest decoded", "images", len(images))

	return images, nil
}
