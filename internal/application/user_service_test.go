package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
	"github.com/vidstream/vidstream-backend/pkg/helpers"
)

func testJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func newUserService(repo *mockUserRepo) *UserService {
	// Redis and Rabbit stay nil: sessions and the welcome email are
	// best-effort collaborators, the account flow works without them.
	return NewUserService(repo, testJWT(), nil, nil, nil, "vidstream", "https://vidstream.example/support")
}

func TestUserService_RegisterHashesPassword(t *testing.T) {
	repo := &mockUserRepo{
		CreateFunc: func(u *entity.User) error {
			require.NotEqual(t, "password123", u.Password)
			assert.True(t, helpers.CompareHashAndPassword(u.Password, "password123"))
			u.ID = "user-1"
			return nil
		},
	}
	svc := newUserService(repo)

	p, err := svc.Register(context.Background(), "alice@example.com", "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.ID)
	assert.Equal(t, "alice", p.Username)
}

func TestUserService_LoginIssuesTokenPair(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	repo := &mockUserRepo{user: &entity.User{ID: "user-1", Email: "alice@example.com", Username: "alice", Password: hash}}
	svc := newUserService(repo)

	p, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", p.Username)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.AccessTokenExpiry.Before(pair.RefreshTokenExpiry))

	claims, err := testJWT().ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.SessionID)
}

func TestUserService_LoginWrongPassword(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	repo := &mockUserRepo{user: &entity.User{ID: "user-1", Email: "alice@example.com", Username: "alice", Password: hash}}
	svc := newUserService(repo)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.Equal(t, "invalid_credentials", apperr.CodeOf(err))

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "password123")
	assert.Equal(t, "invalid_credentials", apperr.CodeOf(err))
}

func TestUserService_RefreshRotatesTokens(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	repo := &mockUserRepo{user: &entity.User{ID: "user-1", Email: "alice@example.com", Username: "alice", Password: hash}}
	svc := newUserService(repo)

	_, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	rotated, userID, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.NotEmpty(t, rotated.AccessToken)

	_, _, err = svc.Refresh(context.Background(), "not-a-token")
	assert.Equal(t, "invalid_token", apperr.CodeOf(err))
}

func TestUserService_UpdateProfile(t *testing.T) {
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	repo := &mockUserRepo{user: &entity.User{ID: "user-1", Email: "alice@example.com", Username: "alice", Password: hash}}
	svc := newUserService(repo)

	p, err := svc.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{Email: "new@example.com", Password: "newpass456"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", p.Email)
	assert.Equal(t, "alice", p.Username)
	assert.True(t, helpers.CompareHashAndPassword(repo.user.Password, "newpass456"))
}
