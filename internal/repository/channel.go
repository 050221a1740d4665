package repository

import (
	"context"

	"chatgenius/internal/domain"
)

// ChannelRepository 定义了频道及频道成员的操作。
type ChannelRepository interface {
	// Create 同一工作区内重名时返回 ErrDuplicateEntry。
	Create(ctx context.Context, channel *domain.Channel) error

	FindByID(ctx context.Context, id string) (*domain.Channel, error)

	// FindByName 按 (workspace, 规范化名称) 查找。
	FindByName(ctx context.Context, workspaceID, name string) (*domain.Channel, error)

	// ListForMember 返回工作区中用户是成员的频道，按创建时间升序。
	ListForMember(ctx context.Context, workspaceID, userID string) ([]domain.Channel, error)

	// AddMember 重复加入时返回 ErrDuplicateEntry。
	AddMember(ctx context.Context, member *domain.ChannelMember) error

	IsMember(ctx context.Context, channelID, userID string) (bool, error)

	// RemoveMemberFromWorkspace 删除用户在该工作区所有频道中的成员关系。
	RemoveMemberFromWorkspace(ctx context.Context, workspaceID, userID string) error
}
