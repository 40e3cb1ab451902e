package cloudinary

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Client wraps Cloudinary upload and deletion.
type Client interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string, optimize bool) (url string, err error)
	DeleteByURL(ctx context.Context, url string) error
}

// Eager transformation applied when optimization is on (auto quality/format,
// capped width for fast frontend loading).
const imageEager = "q_auto:good,f_auto,w_1600,c_limit"

var eagerAsyncFalse = false

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{cloudName: cloudName, uploader: up}, nil
}

// UploadImage uploads an image and returns its secure URL.
func (c *clientImpl) UploadImage(ctx context.Context, file io.Reader, folder, publicID string, optimize bool) (string, error) {
	params := uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	}
	if optimize {
		params.Eager = imageEager
		params.EagerAsync = &eagerAsyncFalse
	}
	result, err := c.uploader.Upload(ctx, file, params)
	if err != nil {
		return "", err
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	return result.SecureURL, nil
}

// DeleteByURL destroys the asset addressed by a Cloudinary delivery URL.
func (c *clientImpl) DeleteByURL(ctx context.Context, url string) error {
	publicID, ok := PublicIDFromURL(url)
	if !ok {
		return fmt.Errorf("cloudinary: not a cloudinary url: %s", url)
	}
	result, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return err
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary: destroy failed: %s", result.Result)
	}
	return nil
}

// PublicIDFromURL extracts the public id from a delivery URL, e.g.
// https://res.cloudinary.com/demo/image/upload/v123/blog/images/pic.jpg
// yields "blog/images/pic". Returns false for non-Cloudinary URLs.
func PublicIDFromURL(url string) (string, bool) {
	if !strings.Contains(url, "cloudinary.com") {
		return "", false
	}
	parts := strings.Split(url, "/")
	upload := -1
	for i, p := range parts {
		if p == "upload" {
			upload = i
			break
		}
	}
	if upload < 0 || upload+1 >= len(parts) {
		return "", false
	}
	rest := parts[upload+1:]
	// skip version segment (v123...)
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
		rest = rest[1:]
	}
	publicID := strings.Join(rest, "/")
	if i := strings.LastIndex(publicID, "."); i > 0 {
		publicID = publicID[:i]
	}
	if publicID == "" {
		return "", false
	}
	return publicID, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
