package sql

import (
	"context"
	"fmt"
	"recipe/internal/entity"
	"strings"

	"gorm.io/gorm/clause"
)

// CreateToken inserts a token. The user association is never written through it.
func (r *GormRepository) CreateToken(ctx context.Context, token *entity.DbToken) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if token == nil {
		return fmt.Errorf("token is nil")
	}
	if strings.TrimSpace(token.Key) == "" || token.UserID == 0 {
		return fmt.Errorf("invalid token")
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(token).Error
}

// GetTokenByKey loads a token and its owner by key.
func (r *GormRepository) GetTokenByKey(ctx context.Context, key string) (*entity.DbToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if key == "" {
		return nil, fmt.Errorf("token key is empty")
	}
	var token entity.DbToken
	if err := r.db.WithContext(ctx).Preload("User").Where(&entity.DbToken{Key: key}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// GetTokenByUserID loads the token bound to a user.
func (r *GormRepository) GetTokenByUserID(ctx context.Context, userID uint) (*entity.DbToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var token entity.DbToken
	if err := r.db.WithContext(ctx).Where(&entity.DbToken{UserID: userID}).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}
