package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"turbo/internal/models"
	"turbo/pkg/cloudinary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCloudClient struct {
	uploadedFolder string
	uploadedID     string
	deletedURL     string
	uploadErr      error
	deleteErr      error
}

func (f *fakeCloudClient) UploadImage(ctx context.Context, file io.Reader, folder, publicID string, optimize bool) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.uploadedFolder = folder
	f.uploadedID = publicID
	return "https://res.cloudinary.com/demo/image/upload/v1/" + folder + "/" + publicID + ".jpg", nil
}

func (f *fakeCloudClient) DeleteByURL(ctx context.Context, url string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedURL = url
	return nil
}

func TestUploadUnconfigured(t *testing.T) {
	store := newTestStore(t)
	svc := NewMediaService(store)

	_, err := svc.Upload(context.Background(), strings.NewReader("img"), "", "pic")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUploadUsesDefaultFolder(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCloudinary(&models.CloudinaryConfig{
		IsActive:      true,
		CloudName:     "demo",
		APIKey:        "key",
		APISecret:     "secret",
		DefaultFolder: "site-media",
	}))
	fake := &fakeCloudClient{}
	svc := NewMediaServiceWithClient(store, func(cloudName, apiKey, apiSecret string) (cloudinary.Client, error) {
		return fake, nil
	})

	url, err := svc.Upload(context.Background(), strings.NewReader("img"), "", "pic_1")
	require.NoError(t, err)
	assert.Contains(t, url, "site-media/pic_1")
	assert.Equal(t, "site-media", fake.uploadedFolder)
}

func TestUploadExplicitFolderWins(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCloudinary(&models.CloudinaryConfig{
		IsActive:  true,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
	}))
	fake := &fakeCloudClient{}
	svc := NewMediaServiceWithClient(store, func(cloudName, apiKey, apiSecret string) (cloudinary.Client, error) {
		return fake, nil
	})

	_, err := svc.Upload(context.Background(), strings.NewReader("img"), "users/avatars", "avatar_1")
	require.NoError(t, err)
	assert.Equal(t, "users/avatars", fake.uploadedFolder)
}

func TestUploadWrapsProviderFailure(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCloudinary(&models.CloudinaryConfig{
		IsActive:  true,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
	}))
	fake := &fakeCloudClient{uploadErr: errors.New("rate limited")}
	svc := NewMediaServiceWithClient(store, func(cloudName, apiKey, apiSecret string) (cloudinary.Client, error) {
		return fake, nil
	})

	_, err := svc.Upload(context.Background(), strings.NewReader("img"), "", "pic")
	require.Error(t, err)
	var pErr *ProviderError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "cloudinary", pErr.Provider)
}

func TestDeleteUnconfigured(t *testing.T) {
	store := newTestStore(t)
	svc := NewMediaService(store)

	err := svc.Delete(context.Background(), "https://res.cloudinary.com/demo/image/upload/v1/a/b.jpg")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestDeletePassesURLThrough(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveCloudinary(&models.CloudinaryConfig{
		IsActive:  true,
		CloudName: "demo",
		APIKey:    "key",
		APISecret: "secret",
	}))
	fake := &fakeCloudClient{}
	svc := NewMediaServiceWithClient(store, func(cloudName, apiKey, apiSecret string) (cloudinary.Client, error) {
		return fake, nil
	})

	url := "https://res.cloudinary.com/demo/image/upload/v1/users/avatars/avatar_1.jpg"
	require.NoError(t, svc.Delete(context.Background(), url))
	assert.Equal(t, url, fake.deletedURL)
}
