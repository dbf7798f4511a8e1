package service

import (
	"context"
	"errors"
	"fmt"
	"recipe/internal/auth"
	"recipe/internal/entity"
	"recipe/internal/metrics"
	"recipe/internal/model"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// maxKeyAttempts bounds retries when a freshly generated key collides.
const maxKeyAttempts = 3

// TokenService issues and resolves opaque bearer tokens. Each user holds at
// most one token; issuing again returns the existing key.
type TokenService struct {
	repo model.Repository
}

// NewTokenService 创建令牌服务
func NewTokenService(repo model.Repository) *TokenService {
	return &TokenService{repo: repo}
}

// IssueToken returns the user's token, creating one on first use.
func (s *TokenService) IssueToken(ctx context.Context, user *entity.DbUser) (string, error) {
	if user == nil || user.ID == 0 {
		return "", fmt.Errorf("invalid user for token issuance")
	}

	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		existing, err := s.repo.GetTokenByUserID(ctx, user.ID)
		if err == nil {
			metrics.TokensIssuedTotal.WithLabelValues("reused").Inc()
			return existing.Key, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", fmt.Errorf("failed to load token: %w", err)
		}

		key, err := auth.GenerateTokenKey()
		if err != nil {
			return "", err
		}
		err = s.repo.CreateToken(ctx, &entity.DbToken{Key: key, UserID: user.ID})
		if err == nil {
			metrics.TokensIssuedTotal.WithLabelValues("created").Inc()
			logrus.WithField("user_id", user.ID).Info("auth token created")
			return key, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", fmt.Errorf("failed to store token: %w", err)
		}
		// 并发请求已为该用户创建令牌，或随机 key 冲突：重新读取
	}
	return "", fmt.Errorf("failed to issue token for user %d after %d attempts", user.ID, maxKeyAttempts)
}

// ResolveToken returns the active user bound to key.
func (s *TokenService) ResolveToken(ctx context.Context, key string) (*entity.DbUser, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrAuthentication
	}

	token, err := s.repo.GetTokenByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuthentication
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	if token.User.ID == 0 || !token.User.IsActive {
		return nil, ErrAuthentication
	}
	user := token.User
	return &user, nil
}
