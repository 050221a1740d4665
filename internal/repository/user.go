package repository

import (
	"context"

	"chatgenius/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
type UserRepository interface {
	// Upsert 按 ID 插入用户，已存在时更新名称、邮箱和头像。
	Upsert(ctx context.Context, user *domain.User) error

	// FindByID 根据用户 ID 查找用户，不存在时返回 ErrUserNotFound。
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// UpdateBio 更新用户简介。
	UpdateBio(ctx context.Context, id string, bio string) error
}
