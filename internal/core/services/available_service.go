package services

import (
	"context"
	"fmt"

	"github.com/kamal-hamza/fetch-tool/internal/core/domain"
	"github.com/kamal-hamza/fetch-tool/internal/core/ports"
)

// AvailableService lists the images published in the manifest
type AvailableService struct {
	source ports.ManifestSource
}

// NewAvailableService creates a new available service
func NewAvailableService(source ports.ManifestSource) *AvailableService {
	return &AvailableService{
		source: source,
	}
}

// AvailableResponse represents the manifest contents in manifest order
type AvailableResponse struct {
	Images []domain.Image
	Total  int
}

// Execute fetches the manifest once and returns every record
func (s *AvailableService) Execute(ctx context.Context) (*AvailableResponse, error) {
	images, err := s.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch manifest: %w", err)
	}

	return &AvailableResponse{
		Images: images,
		Total:  len(images),
	}, nil
}
