package service

import (
	"testing"

	"turbo/config"
	"turbo/internal/auth"
	"turbo/internal/domain"
	"turbo/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *repository.UserRepository, *config.Config) {
	t.Helper()
	cfg := config.Load()
	userRepo := repository.NewUserRepository(newTestDB(t))
	return NewAuthService(cfg, userRepo), userRepo, cfg
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, cfg := newAuthService(t)

	u, access, refresh, err := svc.Register("alice@example.com", "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, u.Role)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, "password123", u.PasswordHash)

	claims, err := auth.ParseAccessToken(&cfg.JWT, access)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	logged, _, _, err := svc.Login("alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)

	_, _, _, err = svc.Login("alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestRegisterDuplicates(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, _, err := svc.Register("bob@example.com", "bob", "password123")
	require.NoError(t, err)

	_, _, _, err = svc.Register("bob@example.com", "bob2", "password123")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, _, _, err = svc.Register("bob2@example.com", "bob", "password123")
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc, _, _ := newAuthService(t)

	_, _, refresh, err := svc.Register("carol@example.com", "carol", "password123")
	require.NoError(t, err)

	access2, refresh2, err := svc.RefreshToken(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	assert.NotEmpty(t, refresh2)

	_, _, err = svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthService(t)

	u, _, _, err := svc.Register("dave@example.com", "dave", "password123")
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(u.ID, "password123", "newpassword9"))

	_, _, _, err = svc.Login("dave@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCreds)
	_, _, _, err = svc.Login("dave@example.com", "newpassword9")
	require.NoError(t, err)

	err = svc.ChangePassword(u.ID, "password123", "whatever99")
	assert.ErrorIs(t, err, ErrInvalidCreds)
}

func TestLoginWithGoogleCreatesAndLinks(t *testing.T) {
	svc, userRepo, _ := newAuthService(t)

	u, _, _, isNew, err := svc.LoginWithGoogle("gid_1", "erin@example.com", "Erin", "https://pic.example/1.jpg")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, "https://pic.example/1.jpg", u.AvatarURL)

	again, _, _, isNew, err := svc.LoginWithGoogle("gid_1", "erin@example.com", "Erin", "https://pic.example/other.jpg")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, "https://pic.example/1.jpg", again.AvatarURL, "existing avatar is kept")

	// Linking by email: a password account with the same email picks up the Google ID.
	pw, _, _, err := svc.Register("frank@example.com", "frank", "password123")
	require.NoError(t, err)
	linked, _, _, isNew, err := svc.LoginWithGoogle("gid_2", "frank@example.com", "Frank", "")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, pw.ID, linked.ID)

	stored, err := userRepo.GetByGoogleID("gid_2")
	require.NoError(t, err)
	assert.Equal(t, pw.ID, stored.ID)
}
