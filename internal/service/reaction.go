package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"chatgenius/internal/domain"
	"chatgenius/internal/dto"
	"chatgenius/internal/repository"

	"github.com/sirupsen/logrus"
)

const maxEmojiLength = 32

// ReactionService 负责消息 emoji 回应。
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	messageRepo  repository.MessageRepository
	gate         *Gate
	notifier     EventNotifier
}

// NewReactionService 创建 ReactionService 实例。
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	messageRepo repository.MessageRepository,
	gate *Gate,
	notifier EventNotifier,
) *ReactionService {
	if reactionRepo == nil {
		panic("ReactionRepository cannot be nil for ReactionService")
	}
	if messageRepo == nil {
		panic("MessageRepository cannot be nil for ReactionService")
	}
	if gate == nil {
		panic("Gate cannot be nil for ReactionService")
	}
	if notifier == nil {
		panic("EventNotifier cannot be nil for ReactionService")
	}
	return &ReactionService{
		reactionRepo: reactionRepo,
		messageRepo:  messageRepo,
		gate:         gate,
		notifier:     notifier,
	}
}

func validateEmoji(emoji string) (string, error) {
	e := strings.TrimSpace(emoji)
	if e == "" {
		return "", newValidationError("emoji", "emoji is required")
	}
	if utf8.RuneCountInString(e) > maxEmojiLength {
		return "", newValidationError("emoji", "emoji is too long")
	}
	return e, nil
}

// messageForMember 加载消息并要求调用者是消息所在频道的成员
func (s *ReactionService) messageForMember(ctx context.Context, userID, messageID string) (*domain.Message, error) {
	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, repository.ErrMessageNotFound) {
			return nil, ErrNotFound
		}
		logrus.WithField("message_id", messageID).WithError(err).Error("Failed to load message")
		return nil, ErrInternalServer
	}
	if _, err := s.gate.RequireChannelMember(ctx, userID, msg.ChannelID); err != nil {
		return nil, err
	}
	return msg, nil
}

// Add 添加回应。重复的 (用户, 消息, emoji) 由存储层唯一约束拒绝并返回 ErrConflict。
func (s *ReactionService) Add(ctx context.Context, userID, messageID, emoji string) (*dto.ReactionResponse, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	e, err := validateEmoji(emoji)
	if err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "message_id": messageID, "emoji": e})

	msg, err := s.messageForMember(ctx, userID, messageID)
	if err != nil {
		return nil, err
	}

	reaction := &domain.Reaction{Emoji: e, UserID: userID, MessageID: messageID}
	if err := s.reactionRepo.Create(ctx, reaction); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Duplicate reaction rejected")
			return nil, ErrConflict
		}
		logCtx.WithError(err).Error("Failed to save reaction")
		return nil, ErrInternalServer
	}

	resp := dto.NewReactionResponse(reaction)
	s.notifier.Notify(ctx, domain.ChannelTopic(msg.ChannelID), domain.EventNewReaction, resp)
	logCtx.WithField("reaction_id", reaction.ID).Info("Reaction added")
	return &resp, nil
}

// Remove 删除调用者在消息上的指定 emoji 回应，不存在时静默成功。
func (s *ReactionService) Remove(ctx context.Context, userID, messageID, emoji string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	e, err := validateEmoji(emoji)
	if err != nil {
		return err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "message_id": messageID, "emoji": e})

	msg, err := s.messageForMember(ctx, userID, messageID)
	if err != nil {
		return err
	}

	n, err := s.reactionRepo.DeleteMatching(ctx, userID, messageID, e)
	if err != nil {
		logCtx.WithError(err).Error("Failed to delete reaction")
		return ErrInternalServer
	}
	if n == 0 {
		logCtx.Debug("No matching reaction to remove")
		return nil
	}

	s.notifier.Notify(ctx, domain.ChannelTopic(msg.ChannelID), domain.EventReactionRemoved, dto.ReactionRemovedEvent{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     e,
	})
	logCtx.Info("Reaction removed")
	return nil
}

// RemoveByID 按 ID 删除回应，只有回应的作者可以删除。
func (s *ReactionService) RemoveByID(ctx context.Context, userID, reactionID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "reaction_id": reactionID})

	reaction, err := s.reactionRepo.FindByID(ctx, reactionID)
	if err != nil {
		if errors.Is(err, repository.ErrReactionNotFound) {
			return ErrNotFound
		}
		logCtx.WithError(err).Error("Failed to load reaction")
		return ErrInternalServer
	}
	if reaction.UserID != userID {
		logCtx.Warn("RemoveByID: reaction belongs to another user")
		return ErrForbidden
	}

	msg, err := s.messageForMember(ctx, userID, reaction.MessageID)
	if err != nil {
		return err
	}

	if err := s.reactionRepo.DeleteByID(ctx, reactionID); err != nil {
		logCtx.WithError(err).Error("Failed to delete reaction")
		return ErrInternalServer
	}

	s.notifier.Notify(ctx, domain.ChannelTopic(msg.ChannelID), domain.EventReactionRemoved, dto.ReactionRemovedEvent{
		ID:        reaction.ID,
		MessageID: reaction.MessageID,
		UserID:    userID,
		Emoji:     reaction.Emoji,
	})
	logCtx.Info("Reaction removed by id")
	return nil
}
