package repository

import (
	"context"
	"time"

	"chatgenius/internal/domain"
)

// MessageRepository 定义了消息与已读回执的操作。
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.Message) error

	// FindByID 预加载作者、回应和已读回执。
	FindByID(ctx context.Context, id string) (*domain.Message, error)

	// ListRecent 取频道内最新的 limit 条消息，按创建时间升序返回。
	ListRecent(ctx context.Context, channelID string, limit int) ([]domain.Message, error)

	// MarkRead 写入已读回执，重复写入返回 ErrDuplicateEntry。
	MarkRead(ctx context.Context, read *domain.MessageRead) error
}

// ReactionRepository 定义了消息回应的操作。
type ReactionRepository interface {
	// Create 重复的 (user, message, emoji) 返回 ErrDuplicateEntry。
	Create(ctx context.Context, reaction *domain.Reaction) error

	FindByID(ctx context.Context, id string) (*domain.Reaction, error)

	DeleteByID(ctx context.Context, id string) error

	// DeleteMatching 删除匹配的回应，返回受影响行数 (可能为 0)。
	DeleteMatching(ctx context.Context, userID, messageID, emoji string) (int64, error)
}

// InviteRepository 定义了工作区邀请的操作。
type InviteRepository interface {
	// Save 创建或更新邀请。
	Save(ctx context.Context, invite *domain.WorkspaceInvite) error

	// FindByEmail 按 (workspace, email) 查找。
	FindByEmail(ctx context.Context, workspaceID, email string) (*domain.WorkspaceInvite, error)

	ListByWorkspace(ctx context.Context, workspaceID string) ([]domain.WorkspaceInvite, error)

	// UpdateStatus 仅当当前状态为 from 时改为 to；状态已变化或邀请不存在时返回 ErrInviteNotFound。
	UpdateStatus(ctx context.Context, id string, from, to domain.InviteStatus) error

	// ExpirePending 把 before 之前到期的 PENDING 邀请标记为 EXPIRED，返回受影响行数。
	ExpirePending(ctx context.Context, before time.Time) (int64, error)
}

// FileRepository 定义了上传文件记录的操作。
type FileRepository interface {
	Create(ctx context.Context, file *domain.File) error
	ListByChannel(ctx context.Context, channelID string) ([]domain.File, error)
}
