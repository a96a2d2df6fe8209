package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	repo "github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
	"github.com/vidstream/vidstream-backend/pkg/helpers"
	"github.com/vidstream/vidstream-backend/pkg/mailer"
	"github.com/vidstream/vidstream-backend/pkg/mailer/templates"
)

const sessionTTL = 24 * time.Hour

// UserService owns account lifecycle and session management.
type UserService struct {
	Repo       repo.UserRepository
	JWT        *helpers.JWTManager
	Redis      *redis.Client
	Rabbit     *helpers.RabbitPublisher
	Logger     *logrus.Logger
	AppName    string
	SupportURL string
}

func NewUserService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, rabbit *helpers.RabbitPublisher, logger *logrus.Logger, appName, supportURL string) *UserService {
	return &UserService{Repo: r, JWT: jwt, Redis: rdb, Rabbit: rabbit, Logger: logger, AppName: appName, SupportURL: supportURL}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func profileOf(u *entity.User) *Profile {
	return &Profile{ID: u.ID, Email: u.Email, Username: u.Username, CreatedAt: u.CreatedAt}
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

// Register creates the account and enqueues a welcome email. The email is
// best-effort; a publish failure is logged, never surfaced.
func (s *UserService) Register(ctx context.Context, email, username, password string) (*Profile, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Fault(err, "hash password")
	}
	u := &entity.User{Email: email, Username: username, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}

	if s.Rabbit != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: templates.Welcome,
			Data: templates.ToMap(templates.EmailData{
				Name:       u.Username,
				Email:      u.Email,
				AppName:    s.AppName,
				SupportURL: s.SupportURL,
			}),
		}
		if err := s.Rabbit.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email publish failed")
		}
	}
	return profileOf(u), nil
}

// Authenticate validates email/password without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.Authorization("invalid_credentials", "invalid email or password")
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records the session hash in
// Redis under a fresh session id.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, u.Username, sid)
	if err != nil {
		return TokenPair{}, apperr.Fault(err, "generate access token")
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, u.Username, sid)
	if err != nil {
		return TokenPair{}, apperr.Fault(err, "generate refresh token")
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"session_id": sid,
			"created_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("session write failed")
		}
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*Profile, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return profileOf(u), pair, nil
}

// Refresh validates the refresh token against the stored session, then rotates
// the session id and both tokens.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperr.Authorization("invalid_token", "invalid refresh token")
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		return TokenPair{}, "", apperr.Authorization("invalid_token", "invalid refresh token")
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["session_id"] != claims.SessionID {
			return TokenPair{}, "", apperr.Authorization("session_revoked", "session no longer valid")
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the Redis session; the cookies are cleared by the handler.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return helpers.RedisDel(ctx, s.Redis, sessionKey(userID))
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(u), nil
}

type UpdateProfileInput struct {
	Email    string
	Password string
}

// UpdateProfile changes email and/or password. Username is the identity key
// for the relation collections and is immutable.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*Profile, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Password != "" {
		hash, hErr := helpers.HashPassword(in.Password)
		if hErr != nil {
			return nil, apperr.Fault(hErr, "hash password")
		}
		u.Password = hash
	}
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		if _, err := s.Redis.HSet(ctx, key, map[string]any{"email": u.Email}).Result(); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("session update failed")
		}
	}
	return profileOf(u), nil
}
