package model

import (
	"context"
	"recipe/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context) ([]entity.DbUser, error)
	CountUsers(ctx context.Context) (int64, error)

	// 令牌
	CreateToken(ctx context.Context, token *entity.DbToken) error
	GetTokenByKey(ctx context.Context, key string) (*entity.DbToken, error)
	GetTokenByUserID(ctx context.Context, userID uint) (*entity.DbToken, error)

	// 按所有者隔离的资源（标签、食材）
	CreateResource(ctx context.Context, resource *entity.DbResource) error
	ListResources(ctx context.Context, kind entity.ResourceKind, ownerID uint) ([]entity.DbResource, error)
	CountResources(ctx context.Context, kind entity.ResourceKind, ownerID uint) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
