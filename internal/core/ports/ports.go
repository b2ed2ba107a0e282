package ports

import (
	"context"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
)

// ManifestSource defines the port for reading the rootfs manifest
type ManifestSource interface {
	// Fetch retrieves and decodes the manifest, preserving its order
	Fetch(ctx context.Context) ([]domain.Image, error)
}

// ProgressFunc receives the number of bytes written so far and the expected
// total, which is -1 when unknown
type ProgressFunc func(written, total int64)

// DownloadRequest describes a single artifact download
type DownloadRequest struct {
	URL      string
	Dir      string // Destination directory
	Filename string // Preferred file name inside Dir

	// ExpectedSHA256 enables verification when non-empty
	ExpectedSHA256 string

	// Overwrite replaces an existing file instead of picking "name (N).ext"
	Overwrite bool

	Progress ProgressFunc
}

// DownloadResult describes a completed download
type DownloadResult struct {
	Path   string
	Bytes  int64
	SHA256 string
}

// Downloader defines the port for streaming an artifact to disk
type Downloader interface {
	Download(ctx context.Context, req DownloadRequest) (*DownloadResult, error)
}
