package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"task-planner/internal/domain"
	"task-planner/internal/errors"
	"task-planner/internal/repository/sqlite"
	"task-planner/internal/validation"
)

const tokenBytes = 32

// authServiceImpl implements the AuthService interface
type authServiceImpl struct {
	repo             sqlite.Repository
	projectValidator *validation.ProjectValidator
	ttl              time.Duration
	now              func() time.Time
}

// NewAuthService creates a new AuthService instance
func NewAuthService(repo sqlite.Repository, validator *validation.Validator, ttl time.Duration) AuthService {
	return &authServiceImpl{
		repo:             repo,
		projectValidator: validation.NewProjectValidator(validator),
		ttl:              ttl,
		now:              time.Now,
	}
}

// CreateUser registers a user by email
func (a *authServiceImpl) CreateUser(ctx context.Context, email string) (*domain.User, error) {
	if err := a.projectValidator.ValidateEmail(email); err != nil {
		return nil, invalid(err)
	}

	user := sqlite.User{
		ID:    domain.NewID(),
		Email: domain.NormalizeEmail(email),
	}
	if err := a.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	return &domain.User{ID: user.ID, Email: user.Email, CreatedAt: user.CreatedAt}, nil
}

// IssueToken mints a bearer token for userID; only its hash is stored
func (a *authServiceImpl) IssueToken(ctx context.Context, userID string) (*IssuedToken, error) {
	raw := make([]byte, tokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(raw)

	record := sqlite.APIToken{
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: a.now().UTC().Add(a.ttl),
	}
	if err := a.repo.CreateAPIToken(ctx, &record); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"operation":  "services.IssueToken",
		"user_id":    userID,
		"expires_at": record.ExpiresAt,
	}).Info("token issued")

	return &IssuedToken{Token: token, UserID: userID, ExpiresAt: record.ExpiresAt}, nil
}

// Authenticate resolves a bearer token to its user id
func (a *authServiceImpl) Authenticate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errors.NewAuthError("authentication required")
	}

	record, err := a.repo.FindAPIToken(ctx, hashToken(token))
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return "", errors.NewAuthError("invalid or expired session")
		}
		return "", asStoreError("find api token", err)
	}
	if !a.now().Before(record.ExpiresAt) {
		return "", errors.NewAuthError("invalid or expired session")
	}
	return record.UserID, nil
}

// Revoke deletes a token; revoking an unknown token is not an error
func (a *authServiceImpl) Revoke(ctx context.Context, token string) error {
	err := a.repo.DeleteAPIToken(ctx, hashToken(strings.TrimSpace(token)))
	if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return err
	}
	return nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
