package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"

	"github.com/sirupsen/logrus"
)

const maxChannelNameLength = 100

// ChannelService 负责频道的创建、查询与 general 频道的保障。
type ChannelService struct {
	channelRepo repository.ChannelRepository
	tx          repository.TxRunner
	gate        *Gate
}

// NewChannelService 创建 ChannelService 实例。
func NewChannelService(channelRepo repository.ChannelRepository, tx repository.TxRunner, gate *Gate) *ChannelService {
	if channelRepo == nil {
		panic("ChannelRepository cannot be nil for ChannelService")
	}
	if tx == nil {
		panic("TxRunner cannot be nil for ChannelService")
	}
	if gate == nil {
		panic("Gate cannot be nil for ChannelService")
	}
	return &ChannelService{channelRepo: channelRepo, tx: tx, gate: gate}
}

// List 返回调用者在工作区中加入的频道，按创建时间升序
func (s *ChannelService) List(ctx context.Context, userID, workspaceID string) ([]domain.Channel, error) {
	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	list, err := s.channelRepo.ListForMember(ctx, workspaceID, userID)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID}).
			WithError(err).Error("Failed to list channels")
		return nil, ErrInternalServer
	}
	return list, nil
}

// Create 规范化名称后创建频道，并把创建者加入频道。重名返回 ErrConflict。
func (s *ChannelService) Create(ctx context.Context, userID, workspaceID, name string) (*domain.Channel, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID, "operation": "CreateChannel"})

	normalized := domain.NormalizeChannelName(name)
	if normalized == "" {
		return nil, newValidationError("name", "name is required")
	}
	if utf8.RuneCountInString(normalized) > maxChannelNameLength {
		return nil, newValidationError("name", fmt.Sprintf("name must be at most %d characters", maxChannelNameLength))
	}

	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}

	channel := &domain.Channel{Name: normalized, WorkspaceID: workspaceID}
	err := s.tx.WithTx(ctx, func(stores repository.Stores) error {
		if err := stores.Channels().Create(ctx, channel); err != nil {
			return err
		}
		return stores.Channels().AddMember(ctx, &domain.ChannelMember{UserID: userID, ChannelID: channel.ID})
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithField("name", normalized).Warn("Channel name already exists in workspace")
			return nil, ErrConflict
		}
		logCtx.WithError(err).Error("Failed to create channel")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{"channel_id": channel.ID, "name": channel.Name}).Info("Channel created")
	return channel, nil
}

// General 幂等地获取或创建 general 频道，并确保调用者是其成员。
// 并发创建时依赖唯一索引收敛：重名创建失败后重新读取，重复加入被忽略。
func (s *ChannelService) General(ctx context.Context, userID, workspaceID string) (*domain.Channel, error) {
	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID, "operation": "GeneralChannel"})

	channel, err := s.channelRepo.FindByName(ctx, workspaceID, domain.GeneralChannelName)
	if errors.Is(err, repository.ErrChannelNotFound) {
		channel = &domain.Channel{Name: domain.GeneralChannelName, WorkspaceID: workspaceID}
		err = s.channelRepo.Create(ctx, channel)
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Debug("General channel created concurrently, re-reading")
			channel, err = s.channelRepo.FindByName(ctx, workspaceID, domain.GeneralChannelName)
		} else if err == nil {
			logCtx.WithField("channel_id", channel.ID).Info("General channel provisioned")
		}
	}
	if err != nil {
		logCtx.WithError(err).Error("Failed to get or create general channel")
		return nil, ErrInternalServer
	}

	err = s.channelRepo.AddMember(ctx, &domain.ChannelMember{UserID: userID, ChannelID: channel.ID})
	if err != nil && !errors.Is(err, repository.ErrDuplicateEntry) {
		logCtx.WithError(err).Error("Failed to ensure general channel membership")
		return nil, ErrInternalServer
	}
	return channel, nil
}

// Get 仅频道成员可见，频道必须属于该工作区
func (s *ChannelService) Get(ctx context.Context, userID, workspaceID, channelID string) (*domain.Channel, error) {
	return s.gate.RequireChannelInWorkspace(ctx, userID, workspaceID, channelID)
}
