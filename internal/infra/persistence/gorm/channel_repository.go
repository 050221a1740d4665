package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chatgenius/internal/domain"
)

// GormChannelRepository 是 ChannelRepository 接口的 GORM 实现
type GormChannelRepository struct {
	db *gorm.DB
}

// NewGormChannelRepository 创建 GormChannelRepository 实例
func NewGormChannelRepository(db *gorm.DB) *GormChannelRepository {
	if db == nil {
		panic("database connection cannot be nil for GormChannelRepository")
	}
	return &GormChannelRepository{db: db}
}

// Create 依赖 (workspace_id, name) 唯一索引报告重名
func (r *GormChannelRepository) Create(ctx context.Context, channel *domain.Channel) error {
	err := r.db.WithContext(ctx).Create(channel).Error
	return wrap(fmt.Sprintf("create channel '%s' in workspace %s", channel.Name, channel.WorkspaceID), err)
}

func (r *GormChannelRepository) FindByID(ctx context.Context, id string) (*domain.Channel, error) {
	var ch domain.Channel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ch).Error; err != nil {
		return nil, wrap(fmt.Sprintf("find channel by id %s", id), err)
	}
	return &ch, nil
}

func (r *GormChannelRepository) FindByName(ctx context.Context, workspaceID, name string) (*domain.Channel, error) {
	var ch domain.Channel
	err := r.db.WithContext(ctx).
		Where("workspace_id = ? AND name = ?", workspaceID, name).
		First(&ch).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("find channel '%s' in workspace %s", name, workspaceID), err)
	}
	return &ch, nil
}

// ListForMember 只返回用户有 ChannelMember 记录的频道
func (r *GormChannelRepository) ListForMember(ctx context.Context, workspaceID, userID string) ([]domain.Channel, error) {
	var list []domain.Channel
	err := r.db.WithContext(ctx).
		Joins("JOIN channel_members cm ON cm.channel_id = channels.id").
		Where("channels.workspace_id = ? AND cm.user_id = ?", workspaceID, userID).
		Order("channels.created_at ASC").
		Find(&list).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("list channels of workspace %s for user %s", workspaceID, userID), err)
	}
	return list, nil
}

func (r *GormChannelRepository) AddMember(ctx context.Context, member *domain.ChannelMember) error {
	err := r.db.WithContext(ctx).Create(member).Error
	return wrap(fmt.Sprintf("add member %s to channel %s", member.UserID, member.ChannelID), err)
}

func (r *GormChannelRepository) IsMember(ctx context.Context, channelID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.ChannelMember{}).
		Where("channel_id = ? AND user_id = ?", channelID, userID).
		Count(&count).Error
	if err != nil {
		return false, wrap(fmt.Sprintf("count channel member (channel: %s, user: %s)", channelID, userID), err)
	}
	return count > 0, nil
}

func (r *GormChannelRepository) RemoveMemberFromWorkspace(ctx context.Context, workspaceID, userID string) error {
	sub := r.db.Model(&domain.Channel{}).Select("id").Where("workspace_id = ?", workspaceID)
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel_id IN (?)", userID, sub).
		Delete(&domain.ChannelMember{}).Error
	return wrap(fmt.Sprintf("remove channel memberships of user %s in workspace %s", userID, workspaceID), err)
}
