package repository

import (
	"context"

	"chatgenius/internal/domain"
)

// WorkspaceRepository 定义了工作区的存储和检索操作。
type WorkspaceRepository interface {
	Create(ctx context.Context, ws *domain.Workspace) error

	// FindByID 不存在时返回 ErrWorkspaceNotFound。
	FindByID(ctx context.Context, id string) (*domain.Workspace, error)

	// ListByMember 返回用户所属的全部工作区，按创建时间倒序。
	ListByMember(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// MemberRepository 定义了工作区成员关系的操作。
type MemberRepository interface {
	// Create 重复的 (workspace, user) 返回 ErrDuplicateEntry。
	Create(ctx context.Context, member *domain.WorkspaceMember) error

	// Find 不存在时返回 ErrMemberNotFound。
	Find(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error)

	// ListByWorkspace 返回工作区全部成员 (预加载 User)，按加入时间升序。
	ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.WorkspaceMember, error)

	// Delete 删除成员关系，返回受影响行数。
	Delete(ctx context.Context, workspaceID, userID string) (int64, error)
}
