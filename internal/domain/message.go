package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message 是频道中的一条消息。创建后内容不可修改，只会追加已读回执。
type Message struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    string    `gorm:"type:varchar(191);not null;index" json:"userId"`
	ChannelID string    `gorm:"type:varchar(36);not null;index:idx_channel_created,priority:1" json:"channelId"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_channel_created,priority:2" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`

	User      *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Reactions []Reaction    `gorm:"foreignKey:MessageID" json:"reactions,omitempty"`
	Reads     []MessageRead `gorm:"foreignKey:MessageID" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ReadBy 返回已读该消息的用户 ID 列表
func (m *Message) ReadBy() []string {
	ids := make([]string, 0, len(m.Reads))
	for _, r := range m.Reads {
		ids = append(ids, r.UserID)
	}
	return ids
}

// MessageRead 是一条已读回执，(message_id, user_id) 唯一。
type MessageRead struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	MessageID string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_message_reader,priority:1" json:"messageId"`
	UserID    string    `gorm:"type:varchar(191);not null;uniqueIndex:uk_message_reader,priority:2" json:"userId"`
	ReadAt    time.Time `gorm:"autoCreateTime" json:"readAt"`
}

func (r *MessageRead) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Reaction 是用户对消息的 emoji 回应，(user_id, message_id, emoji) 唯一。
type Reaction struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Emoji     string    `gorm:"type:varchar(64);not null;uniqueIndex:uk_reaction,priority:3" json:"emoji"`
	UserID    string    `gorm:"type:varchar(191);not null;uniqueIndex:uk_reaction,priority:1" json:"userId"`
	MessageID string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_reaction,priority:2;index" json:"messageId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *Reaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
