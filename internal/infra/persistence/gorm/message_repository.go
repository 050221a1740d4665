package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"chatgenius/internal/domain"
)

// GormMessageRepository 是 MessageRepository 接口的 GORM 实现
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository 创建 GormMessageRepository 实例
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	if db == nil {
		panic("database connection cannot be nil for GormMessageRepository")
	}
	return &GormMessageRepository{db: db}
}

func (r *GormMessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	err := r.db.WithContext(ctx).Omit("User", "Reactions", "Reads").Create(msg).Error
	return wrap(fmt.Sprintf("create message in channel %s", msg.ChannelID), err)
}

func (r *GormMessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var msg domain.Message
	err := r.withRelations(ctx).Where("id = ?", id).First(&msg).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("find message by id %s", id), err)
	}
	return &msg, nil
}

// ListRecent 先按创建时间倒序取最新 limit 条，再反转为升序
func (r *GormMessageRepository) ListRecent(ctx context.Context, channelID string, limit int) ([]domain.Message, error) {
	var list []domain.Message
	err := r.withRelations(ctx).
		Where("channel_id = ?", channelID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	if err != nil {
		return nil, wrap(fmt.Sprintf("list messages of channel %s", channelID), err)
	}
	for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
		list[i], list[j] = list[j], list[i]
	}
	return list, nil
}

func (r *GormMessageRepository) MarkRead(ctx context.Context, read *domain.MessageRead) error {
	err := r.db.WithContext(ctx).Create(read).Error
	return wrap(fmt.Sprintf("mark message %s read by %s", read.MessageID, read.UserID), err)
}

func (r *GormMessageRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Reactions", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Reads", func(db *gorm.DB) *gorm.DB { return db.Order("read_at ASC") })
}

// GormReactionRepository 是 ReactionRepository 接口的 GORM 实现
type GormReactionRepository struct {
	db *gorm.DB
}

// NewGormReactionRepository 创建 GormReactionRepository 实例
func NewGormReactionRepository(db *gorm.DB) *GormReactionRepository {
	if db == nil {
		panic("database connection cannot be nil for GormReactionRepository")
	}
	return &GormReactionRepository{db: db}
}

// Create 不做预检查，重复由唯一索引报告
func (r *GormReactionRepository) Create(ctx context.Context, reaction *domain.Reaction) error {
	err := r.db.WithContext(ctx).Create(reaction).Error
	return wrap(fmt.Sprintf("create reaction %s on message %s", reaction.Emoji, reaction.MessageID), err)
}

func (r *GormReactionRepository) FindByID(ctx context.Context, id string) (*domain.Reaction, error) {
	var reaction domain.Reaction
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&reaction).Error; err != nil {
		return nil, wrap(fmt.Sprintf("find reaction by id %s", id), err)
	}
	return &reaction, nil
}

func (r *GormReactionRepository) DeleteByID(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Reaction{}).Error
	return wrap(fmt.Sprintf("delete reaction %s", id), err)
}

func (r *GormReactionRepository) DeleteMatching(ctx context.Context, userID, messageID, emoji string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND message_id = ? AND emoji = ?", userID, messageID, emoji).
		Delete(&domain.Reaction{})
	if result.Error != nil {
		return 0, wrap(fmt.Sprintf("delete reaction %s on message %s", emoji, messageID), result.Error)
	}
	return result.RowsAffected, nil
}
