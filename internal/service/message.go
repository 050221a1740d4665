package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"chatgenius/internal/domain"
	"chatgenius/internal/dto"
	"chatgenius/internal/repository"

	"github.com/sirupsen/logrus"
)

const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 100
	maxMessageLength    = 4000
)

// MessageService 负责消息发送、历史查询与已读回执。
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	gate        *Gate
	notifier    EventNotifier
}

// NewMessageService 创建 MessageService 实例。
func NewMessageService(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	gate *Gate,
	notifier EventNotifier,
) *MessageService {
	if messageRepo == nil {
		panic("MessageRepository cannot be nil for MessageService")
	}
	if userRepo == nil {
		panic("UserRepository cannot be nil for MessageService")
	}
	if gate == nil {
		panic("Gate cannot be nil for MessageService")
	}
	if notifier == nil {
		panic("EventNotifier cannot be nil for MessageService")
	}
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		gate:        gate,
		notifier:    notifier,
	}
}

// NormalizeContent 只去除首尾空白。内容按纯文本原样保存，由客户端在渲染时转义。
func NormalizeContent(content string) string {
	return strings.TrimSpace(content)
}

// Send 频道成员发送一条消息，成功后在频道 topic 上发出 new-message 事件。
func (s *MessageService) Send(ctx context.Context, identity domain.Identity, workspaceID, channelID, content string) (*dto.MessageResponse, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{
		"user_id":    identity.UserID,
		"channel_id": channelID,
		"operation":  "SendMessage",
	})

	clean := NormalizeContent(content)
	if clean == "" {
		return nil, newValidationError("content", "content is required")
	}
	if utf8.RuneCountInString(clean) > maxMessageLength {
		return nil, newValidationError("content", fmt.Sprintf("content must be at most %d characters", maxMessageLength))
	}

	if _, err := s.gate.RequireChannelInWorkspace(ctx, identity.UserID, workspaceID, channelID); err != nil {
		return nil, err
	}

	author := identity.ToUser()
	if err := s.userRepo.Upsert(ctx, author); err != nil {
		logCtx.WithError(err).Error("Failed to upsert message author")
		return nil, ErrInternalServer
	}

	msg := &domain.Message{Content: clean, UserID: identity.UserID, ChannelID: channelID}
	if err := s.messageRepo.Create(ctx, msg); err != nil {
		logCtx.WithError(err).Error("Failed to save message")
		return nil, ErrInternalServer
	}
	msg.User = author

	resp := dto.NewMessageResponse(msg)
	s.notifier.Notify(ctx, domain.ChannelTopic(channelID), domain.EventNewMessage, resp)

	logCtx.WithField("message_id", msg.ID).Info("Message sent")
	return &resp, nil
}

// List 返回频道最新的 limit 条消息 (升序)。limit<=0 取默认值，超过上限截断。
func (s *MessageService) List(ctx context.Context, userID, workspaceID, channelID string, limit int) ([]dto.MessageResponse, error) {
	if _, err := s.gate.RequireChannelInWorkspace(ctx, userID, workspaceID, channelID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultMessageLimit
	}
	if limit > MaxMessageLimit {
		limit = MaxMessageLimit
	}

	messages, err := s.messageRepo.ListRecent(ctx, channelID, limit)
	if err != nil {
		logrus.WithFields(logrus.Fields{"channel_id": channelID}).WithError(err).Error("Failed to list messages")
		return nil, ErrInternalServer
	}
	out := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.NewMessageResponse(&messages[i]))
	}
	return out, nil
}

// MarkRead 记录已读回执。重复标记视为成功且不再发出事件。
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID, channelID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	if messageID == "" {
		return newValidationError("messageId", "messageId is required")
	}
	if channelID == "" {
		return newValidationError("channelId", "channelId is required")
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "message_id": messageID, "channel_id": channelID})

	if _, err := s.gate.RequireChannelMember(ctx, userID, channelID); err != nil {
		return err
	}

	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return ErrNotFound
		}
		logCtx.WithError(err).Error("Failed to load message for read receipt")
		return ErrInternalServer
	}
	if msg.ChannelID != channelID {
		logCtx.Warn("MarkRead: message does not belong to channel")
		return ErrNotFound
	}

	err = s.messageRepo.MarkRead(ctx, &domain.MessageRead{MessageID: messageID, UserID: userID})
	if errors.Is(err, repository.ErrDuplicateEntry) {
		logCtx.Debug("Message already marked read")
		return nil
	}
	if err != nil {
		logCtx.WithError(err).Error("Failed to save read receipt")
		return ErrInternalServer
	}

	s.notifier.Notify(ctx, domain.ChannelTopic(channelID), domain.EventMessageRead, dto.MessageReadEvent{
		MessageID: messageID,
		UserID:    userID,
	})
	logCtx.Debug("Message marked read")
	return nil
}
