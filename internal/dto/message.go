package dto

import (
	"time"

	"chatgenius/internal/domain"
)

// UserSummary 是嵌入在消息/成员响应中的用户摘要
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// ReactionResponse 既是 API 响应也是 new-reaction 事件载荷
type ReactionResponse struct {
	ID        string    `json:"id"`
	Emoji     string    `json:"emoji"`
	UserID    string    `json:"userId"`
	MessageID string    `json:"messageId"`
	CreatedAt time.Time `json:"createdAt"`
}

// MessageResponse 既是 API 响应也是 new-message 事件载荷
type MessageResponse struct {
	ID        string             `json:"id"`
	Content   string             `json:"content"`
	ChannelID string             `json:"channelId"`
	UserID    string             `json:"userId"`
	CreatedAt time.Time          `json:"createdAt"`
	User      UserSummary        `json:"user"`
	Reactions []ReactionResponse `json:"reactions"`
	ReadBy    []string           `json:"readBy"`
}

// MessageReadEvent 是 message-read 事件载荷
type MessageReadEvent struct {
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
}

// ReactionRemovedEvent 是 reaction-removed 事件载荷
type ReactionRemovedEvent struct {
	ID        string `json:"id,omitempty"`
	MessageID string `json:"messageId"`
	UserID    string `json:"userId"`
	Emoji     string `json:"emoji"`
}

// NewUserSummary 用户缺失时退回到只有 ID 的摘要
func NewUserSummary(userID string, u *domain.User) UserSummary {
	if u == nil {
		return UserSummary{ID: userID}
	}
	return UserSummary{ID: u.ID, Name: u.Name, ImageURL: u.ImageURL}
}

func NewReactionResponse(r *domain.Reaction) ReactionResponse {
	return ReactionResponse{
		ID:        r.ID,
		Emoji:     r.Emoji,
		UserID:    r.UserID,
		MessageID: r.MessageID,
		CreatedAt: r.CreatedAt,
	}
}

func NewMessageResponse(m *domain.Message) MessageResponse {
	reactions := make([]ReactionResponse, 0, len(m.Reactions))
	for i := range m.Reactions {
		reactions = append(reactions, NewReactionResponse(&m.Reactions[i]))
	}
	return MessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		ChannelID: m.ChannelID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		User:      NewUserSummary(m.UserID, m.User),
		Reactions: reactions,
		ReadBy:    m.ReadBy(),
	}
}
