package mocks

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
)

// MockManifestSource is a mock implementation of ManifestSource for testing
type MockManifestSource struct {
	mu     sync.Mutex
	images []domain.Image
	err    error
	calls  int
}

// NewMockManifestSource creates a mock source serving the given images
func NewMockManifestSource(images ...domain.Image) *MockManifestSource {
	return &MockManifestSource{images: images}
}

// SetError makes subsequent Fetch calls fail with err
func (m *MockManifestSource) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Fetch returns a copy of the configured images
func (m *MockManifestSource) Fetch(ctx context.Context) ([]domain.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.err != nil {
		return nil, m.err
	}

	images := make([]domain.Image, len(m.images))
	copy(images, m.images)
	return images, nil
}

// Calls returns how many times Fetch was invoked
func (m *MockManifestSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// MockDownloader records download requests without touching the network
type MockDownloader struct {
	mu       sync.Mutex
	requests []ports.DownloadRequest
	err      error

	// Size is reported as the number of bytes written
	Size int64
}

// NewMockDownloader creates a new mock downloader
func NewMockDownloader() *MockDownloader {
	return &MockDownloader{Size: 1024}
}

// SetError makes subsequent Download calls fail with err
func (m *MockDownloader) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Download records the request and reports immediate completion
func (m *MockDownloader) Download(ctx context.Context, req ports.DownloadRequest) (*ports.DownloadResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}

	if req.Progress != nil {
		req.Progress(m.Size, m.Size)
	}

	return &ports.DownloadResult{
		Path:   filepath.Join(req.Dir, req.Filename),
		Bytes:  m.Size,
		SHA256: req.ExpectedSHA256,
	}, nil
}

// Requests returns the recorded download requests
func (m *MockDownloader) Requests() []ports.DownloadRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]ports.DownloadRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
