package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"chatgenius/internal/domain"
)

// GormUserRepository 是 UserRepository 接口的 GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository 创建 GormUserRepository 实例
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

// Upsert 以用户 ID 为冲突键插入或更新资料字段 (bio 不覆盖)
func (r *GormUserRepository) Upsert(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "email", "image_url", "updated_at"}),
	}).Create(user).Error
	return wrap(fmt.Sprintf("upsert user %s", user.ID), err)
}

// FindByID 实现根据用户 ID 查找用户
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("find user by id %s", id), err)
	}
	return &user, nil
}

// UpdateBio 更新用户简介
func (r *GormUserRepository) UpdateBio(ctx context.Context, id string, bio string) error {
	err := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("bio", bio).Error
	return wrap(fmt.Sprintf("update bio for user %s", id), err)
}
