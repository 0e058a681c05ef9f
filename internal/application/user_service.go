package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/coslynx/fitness-tracker/internal/domain/entity"
	"github.com/coslynx/fitness-tracker/internal/domain/repository"
	"github.com/coslynx/fitness-tracker/pkg/apperr"
	"github.com/coslynx/fitness-tracker/pkg/helpers"
	"github.com/coslynx/fitness-tracker/pkg/mailer"
)

const sessionTTL = 24 * time.Hour

// UserService manages accounts and sessions. Passwords are hashed with
// bcrypt before they reach the repository; the plaintext never leaves the
// request that carried it.
type UserService struct {
	Repo        repository.UserRepository
	JWT         *helpers.JWTManager
	Redis       *redis.Client
	GCS         *storage.Client
	GCSBucket   string
	Pub         *helpers.RabbitPublisher
	Logger      *logrus.Logger
	BcryptCost  int
	MailEnabled bool
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register creates a new account with a hashed password and enqueues a
// welcome email. The email side effect is best-effort.
func (s *UserService) Register(ctx context.Context, email, password, name string) (*entity.User, error) {
	const op = "user.create"
	if _, err := s.Repo.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Validation(op, "email already registered")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Persistence(op, err)
	}

	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	u := &entity.User{Email: email, Password: hash, Name: name}
	u.EnsureID()
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, apperr.Persistence(op, err)
	}

	s.enqueueWelcome(ctx, u)
	return u, nil
}

func (s *UserService) enqueueWelcome(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.TemplateWelcome,
		Data:     map[string]any{"name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Authenticate validates email/password and returns the user without issuing tokens.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, apperr.Unauthorized("user.login", "invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.Unauthorized("user.login", "invalid credentials")
	}
	return u, nil
}

// IssueTokens generates an access/refresh pair and records a session in Redis.
func (s *UserService) IssueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

// Refresh rotates the session id and token pair after validating the
// refresh token against the active session.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, string, error) {
	const op = "user.refresh"
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, "", apperr.Unauthorized(op, "invalid refresh token")
	}
	u, err := s.Repo.FindByID(ctx, claims.UserID)
	if err != nil || u == nil {
		return TokenPair{}, "", apperr.Unauthorized(op, "invalid refresh token")
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, "", apperr.Unauthorized(op, "invalid refresh token")
		}
	}
	pair, err := s.IssueTokens(ctx, u)
	if err != nil {
		return TokenPair{}, "", err
	}
	return pair, u.ID, nil
}

// Logout drops the active session.
func (s *UserService) Logout(ctx context.Context, userID string) {
	if s.Redis != nil {
		_ = s.Redis.Del(ctx, sessionKey(userID)).Err()
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	const op = "user.find"
	u, err := s.Repo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound(op, fmt.Sprintf("User with ID %s not found.", id))
	}
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("user.list", err)
	}
	return users, nil
}

// Update merges the patch over the stored user. A plaintext password in the
// patch is hashed before the merge.
func (s *UserService) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	const op = "user.update"
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Password != nil {
		hash, hErr := helpers.HashPassword(*patch.Password, s.BcryptCost)
		if hErr != nil {
			return nil, apperr.Persistence(op, hErr)
		}
		patch.Password = &hash
	}
	u.Merge(patch)
	if err := s.Repo.Update(ctx, u); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound(op, fmt.Sprintf("User with ID %s not found.", id))
		}
		return nil, apperr.Persistence(op, err)
	}
	s.refreshSessionMeta(ctx, u)
	return u, nil
}

func (s *UserService) refreshSessionMeta(ctx context.Context, u *entity.User) {
	if s.Redis == nil {
		return
	}
	key := sessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"email":      u.Email,
		"name":       u.Name,
		"updated_at": nowRFC3339(),
	})
	if ttl, err := s.Redis.TTL(ctx, key).Result(); err == nil && ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

// Delete removes the account and its session. A missing id is treated as
// already deleted.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperr.Persistence("user.delete", err)
	}
	s.Logout(ctx, id)
	return nil
}

// UploadAvatar stores the image in GCS and saves its public URL on the user.
func (s *UserService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	const op = "user.avatar"
	u, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Validation(op, "avatar storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Persistence(op, err)
	}
	u.AvatarURL = url
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", apperr.Persistence(op, err)
	}
	return url, nil
}

// UpsertOAuthUser finds or creates an account for an OAuth profile. New
// accounts get a random password so the credentials flow stays usable only
// after an explicit reset.
func (s *UserService) UpsertOAuthUser(ctx context.Context, email, name string) (*entity.User, error) {
	const op = "user.oauth"
	u, err := s.Repo.FindByEmail(ctx, email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Persistence(op, err)
	}
	hash, err := helpers.HashPassword(uuid.NewString(), s.BcryptCost)
	if err != nil {
		return nil, apperr.Persistence(op, err)
	}
	u = &entity.User{Email: email, Password: hash, Name: name}
	u.EnsureID()
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, apperr.Persistence(op, err)
	}
	s.enqueueWelcome(ctx, u)
	return u, nil
}
