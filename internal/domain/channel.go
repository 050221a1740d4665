package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneralChannelName 是每个工作区默认频道的名称
const GeneralChannelName = "general"

// Channel 是工作区内的一个消息流，名称在工作区内唯一。
type Channel struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uk_workspace_channel_name,priority:2" json:"name"`
	WorkspaceID string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_workspace_channel_name,priority:1" json:"workspaceId"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *Channel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// ChannelMember 记录用户在频道中的成员关系，(user_id, channel_id) 唯一。
type ChannelMember struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID    string    `gorm:"type:varchar(191);not null;uniqueIndex:uk_channel_user,priority:2" json:"userId"`
	ChannelID string    `gorm:"type:varchar(36);not null;uniqueIndex:uk_channel_user,priority:1" json:"channelId"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (m *ChannelMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeChannelName 去掉首尾空白、转小写，并把连续空白替换为 "-"。
func NormalizeChannelName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return whitespaceRun.ReplaceAllString(n, "-")
}

// ChannelTopic 返回频道对应的实时事件 topic
func ChannelTopic(channelID string) string {
	return fmt.Sprintf("channel-%s", channelID)
}
