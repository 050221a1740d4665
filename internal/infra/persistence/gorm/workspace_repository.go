package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chatgenius/internal/domain"
)

// GormWorkspaceRepository 是 WorkspaceRepository 接口的 GORM 实现
type GormWorkspaceRepository struct {
	db *gorm.DB
}

func NewGormWorkspaceRepository(db *gorm.DB) *GormWorkspaceRepository {
	if db == nil {
		panic("database connection cannot be nil for GormWorkspaceRepository")
	}
	return &GormWorkspaceRepository{db: db}
}

func (r *GormWorkspaceRepository) Create(ctx context.Context, ws *domain.Workspace) error {
	return wrap(fmt.Sprintf("create workspace '%s'", ws.Name), r.db.WithContext(ctx).Create(ws).Error)
}

func (r *GormWorkspaceRepository) FindByID(ctx context.Context, id string) (*domain.Workspace, error) {
	var ws domain.Workspace
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ws).Error; err != nil {
		return nil, wrap(fmt.Sprintf("find workspace by id %s", id), err)
	}
	return &ws, nil
}

// ListByMember 通过成员表联查用户所在的工作区
func (r *GormWorkspaceRepository) ListByMember(ctx context.Context, userID string) ([]domain.Workspace, error) {
	var list []domain.Workspace
	err := r.db.WithContext(ctx).
		Joins("JOIN workspace_members wm ON wm.workspace_id = workspaces.id").
		Where("wm.user_id = ?", userID).
		Order("workspaces.created_at DESC").
		Find(&list).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("list workspaces for user %s", userID), err)
	}
	return list, nil
}

// GormMemberRepository 是 MemberRepository 接口的 GORM 实现
type GormMemberRepository struct {
	db *gorm.DB
}

func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMemberRepository")
	}
	return &GormMemberRepository{db: db}
}

func (r *GormMemberRepository) Create(ctx context.Context, member *domain.WorkspaceMember) error {
	err := r.db.WithContext(ctx).Omit("User", "Workspace").Create(member).Error
	return wrap(fmt.Sprintf("create member (workspace: %s, user: %s)", member.WorkspaceID, member.UserID), err)
}

func (r *GormMemberRepository) Find(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	var m domain.WorkspaceMember
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		First(&m).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("find member (workspace: %s, user: %s)", workspaceID, userID), err)
	}
	return &m, nil
}

func (r *GormMemberRepository) ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.WorkspaceMember, error) {
	var list []domain.WorkspaceMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("workspace_id = ?", workspaceID).
		Order("joined_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("list members of workspace %s", workspaceID), err)
	}
	return list, nil
}

func (r *GormMemberRepository) Delete(ctx context.Context, workspaceID, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&domain.WorkspaceMember{})
	if result.Error != nil {
		return 0, wrap(fmt.Sprintf("delete member (workspace: %s, user: %s)", workspaceID, userID), result.Error)
	}
	return result.RowsAffected, nil
}
