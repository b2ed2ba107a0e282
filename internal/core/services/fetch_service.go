package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
)

// FetchService resolves an image by name and downloads it
type FetchService struct {
	source     ports.ManifestSource
	downloader ports.Downloader
}

// NewFetchService creates a new fetch service
func NewFetchService(source ports.ManifestSource, downloader ports.Downloader) *FetchService {
	return &FetchService{
		source:     source,
		downloader: downloader,
	}
}

// Resolve fetches the manifest and returns the first image named name.
// A missing image yields an error wrapping domain.ErrImageNotAvailable.
func (s *FetchService) Resolve(ctx context.Context, name string) (domain.Image, error) {
	images, err := s.source.Fetch(ctx)
	if err != nil {
		return domain.Image{}, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	img, ok := domain.FindImage(images, name)
	if !ok {
		return domain.Image{}, fmt.Errorf("%s: %w", name, domain.ErrImageNotAvailable)
	}

	return img, nil
}

// DownloadOptions controls where and how an image is saved
type DownloadOptions struct {
	Dir       string
	Verify    bool
	Overwrite bool
	Progress  ports.ProgressFunc
}

// Download streams the image artifact into opts.Dir
func (s *FetchService) Download(ctx context.Context, img domain.Image, opts DownloadOptions) (*ports.DownloadResult, error) {
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	req := ports.DownloadRequest{
		URL:       img.URL,
		Dir:       dir,
		Filename:  img.Filename(),
		Overwrite: opts.Overwrite,
		Progress:  opts.Progress,
	}

	if opts.Verify {
		if img.SHA256 == "" {
			return nil, fmt.Errorf("%s: %w", img.Name, domain.ErrNoChecksum)
		}
		req.ExpectedSHA256 = img.SHA256
	}

	result, err := s.downloader.Download(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", img.Name, err)
	}

	return result, nil
}
