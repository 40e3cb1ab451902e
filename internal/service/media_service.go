package service

import (
	"context"
	"io"
	"log"

	"turbo/internal/models"
	"turbo/internal/settings"
	"turbo/pkg/cloudinary"
)

// MediaService uploads and deletes media through the Cloudinary credentials
// held in the singleton configuration row.
type MediaService struct {
	store     *settings.Store
	newClient func(cloudName, apiKey, apiSecret string) (cloudinary.Client, error)
}

func NewMediaService(store *settings.Store) *MediaService {
	return &MediaService{store: store, newClient: cloudinary.NewClientFromParams}
}

// NewMediaServiceWithClient injects a client factory (fakes in tests).
func NewMediaServiceWithClient(store *settings.Store, newClient func(cloudName, apiKey, apiSecret string) (cloudinary.Client, error)) *MediaService {
	return &MediaService{store: store, newClient: newClient}
}

// Config returns the Cloudinary configuration, or nil when media storage
// has never been configured or is switched off.
func (s *MediaService) Config() *models.CloudinaryConfig {
	cfg, err := s.store.LoadCloudinary()
	if err != nil {
		log.Printf("[media] load config: %v", err)
		return nil
	}
	if !cfg.Configured() {
		return nil
	}
	return cfg
}

// Upload stores a file and returns its delivery URL. folder defaults to
// the configured default folder. Returns ErrNotConfigured when no
// credentials are set and *ProviderError when the provider rejects the
// upload; the caller must surface either to the user.
func (s *MediaService) Upload(ctx context.Context, file io.Reader, folder, publicID string) (string, error) {
	cfg := s.Config()
	if cfg == nil {
		return "", ErrNotConfigured
	}
	if folder == "" {
		folder = cfg.DefaultFolder
	}
	client, err := s.newClient(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return "", &ProviderError{Provider: "cloudinary", Err: err}
	}
	url, err := client.UploadImage(ctx, file, folder, publicID, cfg.AutoOptimize)
	if err != nil {
		return "", &ProviderError{Provider: "cloudinary", Err: err}
	}
	return url, nil
}

// Delete removes the asset addressed by a Cloudinary delivery URL.
func (s *MediaService) Delete(ctx context.Context, url string) error {
	cfg := s.Config()
	if cfg == nil {
		return ErrNotConfigured
	}
	client, err := s.newClient(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return &ProviderError{Provider: "cloudinary", Err: err}
	}
	if err := client.DeleteByURL(ctx, url); err != nil {
		return &ProviderError{Provider: "cloudinary", Err: err}
	}
	return nil
}
