package gormpersistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"
)

// GormInviteRepository 是 InviteRepository 接口的 GORM 实现
type GormInviteRepository struct {
	db *gorm.DB
}

func NewGormInviteRepository(db *gorm.DB) *GormInviteRepository {
	if db == nil {
		panic("database connection cannot be nil for GormInviteRepository")
	}
	return &GormInviteRepository{db: db}
}

// Save ID 为空时插入，否则整行更新
func (r *GormInviteRepository) Save(ctx context.Context, invite *domain.WorkspaceInvite) error {
	var err error
	if invite.ID == "" {
		err = r.db.WithContext(ctx).Create(invite).Error
	} else {
		err = r.db.WithContext(ctx).Save(invite).Error
	}
	return wrap(fmt.Sprintf("save invite for %s (workspace: %s)", invite.Email, invite.WorkspaceID), err)
}

func (r *GormInviteRepository) FindByEmail(ctx context.Context, workspaceID, email string) (*domain.WorkspaceInvite, error) {
	var inv domain.WorkspaceInvite
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND email = ?", workspaceID, email).
		First(&inv).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("find invite for %s (workspace: %s)", email, workspaceID), err)
	}
	return &inv, nil
}

func (r *GormInviteRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.WorkspaceInvite, error) {
	var list []domain.WorkspaceInvite
	err := r.db.WithContext(ctx).
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("list invites of workspace %s", workspaceID), err)
	}
	return list, nil
}

// UpdateStatus 条件更新，并发的接受/拒绝/过期清理只有一个能成功
func (r *GormInviteRepository) UpdateStatus(ctx context.Context, id string, from, to domain.InviteStatus) error {
	result := r.db.WithContext(ctx).Model(&domain.WorkspaceInvite{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return wrap(fmt.Sprintf("update invite %s status", id), result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrInviteNotFound
	}
	return nil
}

func (r *GormInviteRepository) ExpirePending(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.WorkspaceInvite{}).
		Where("status = ? AND expires_at < ?", domain.InviteStatusPending, before).
		Update("status", domain.InviteStatusExpired)
	if result.Error != nil {
		return 0, wrap("expire pending invites", result.Error)
	}
	return result.RowsAffected, nil
}

// GormFileRepository 是 FileRepository 接口的 GORM 实现
type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	if db == nil {
		panic("database connection cannot be nil for GormFileRepository")
	}
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) Create(ctx context.Context, file *domain.File) error {
	return wrap(fmt.Sprintf("create file record '%s'", file.Name), r.db.WithContext(ctx).Create(file).Error)
}

func (r *GormFileRepository) ListByChannel(ctx context.Context, channelID string) ([]domain.File, error) {
	var list []domain.File
	err := r.db.WithContext(ctx).Where("channel_id = ?", channelID).Order("created_at DESC").Find(&list).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("list files of channel %s", channelID), err)
	}
	return list, nil
}
