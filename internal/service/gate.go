package service

import (
	"context"
	"errors"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"

	"github.com/sirupsen/logrus"
)

// Gate 是所有服务共用的成员资格检查。
type Gate struct {
	memberRepo  repository.MemberRepository
	channelRepo repository.ChannelRepository
}

// NewGate 创建 Gate 实例
func NewGate(memberRepo repository.MemberRepository, channelRepo repository.ChannelRepository) *Gate {
	if memberRepo == nil {
		panic("MemberRepository cannot be nil for Gate")
	}
	if channelRepo == nil {
		panic("ChannelRepository cannot be nil for Gate")
	}
	return &Gate{memberRepo: memberRepo, channelRepo: channelRepo}
}

// RequireWorkspaceMember 非成员返回 ErrForbidden
func (g *Gate) RequireWorkspaceMember(ctx context.Context, userID, workspaceID string) (*domain.WorkspaceMember, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID})

	member, err := g.memberRepo.Find(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			logCtx.Warn("Gate: user is not a workspace member")
			return nil, ErrForbidden
		}
		logCtx.WithError(err).Error("Gate: failed to look up workspace membership")
		return nil, ErrInternalServer
	}
	return member, nil
}

// RequireWorkspaceAdmin 非 ADMIN 成员返回 ErrForbidden
func (g *Gate) RequireWorkspaceAdmin(ctx context.Context, userID, workspaceID string) (*domain.WorkspaceMember, error) {
	member, err := g.RequireWorkspaceMember(ctx, userID, workspaceID)
	if err != nil {
		return nil, err
	}
	if !member.IsAdmin() {
		logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID}).
			Warn("Gate: admin role required")
		return nil, ErrForbidden
	}
	return member, nil
}

// RequireChannelMember 频道不存在返回 ErrNotFound，非频道成员返回 ErrForbidden
func (g *Gate) RequireChannelMember(ctx context.Context, userID, channelID string) (*domain.Channel, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "channel_id": channelID})

	channel, err := g.channelRepo.FindByID(ctx, channelID)
	if err != nil {
		if errors.Is(err, repository.ErrChannelNotFound) {
			logCtx.Warn("Gate: channel not found")
			return nil, ErrNotFound
		}
		logCtx.WithError(err).Error("Gate: failed to load channel")
		return nil, ErrInternalServer
	}

	ok, err := g.channelRepo.IsMember(ctx, channelID, userID)
	if err != nil {
		logCtx.WithError(err).Error("Gate: failed to check channel membership")
		return nil, ErrInternalServer
	}
	if !ok {
		logCtx.Warn("Gate: user is not a channel member")
		return nil, ErrForbidden
	}
	return channel, nil
}

// RequireChannelInWorkspace 在频道成员检查基础上，要求频道属于给定工作区
func (g *Gate) RequireChannelInWorkspace(ctx context.Context, userID, workspaceID, channelID string) (*domain.Channel, error) {
	channel, err := g.RequireChannelMember(ctx, userID, channelID)
	if err != nil {
		return nil, err
	}
	if workspaceID != "" && channel.WorkspaceID != workspaceID {
		logrus.WithFields(logrus.Fields{"channel_id": channelID, "workspace_id": workspaceID}).
			Warn("Gate: channel does not belong to workspace")
		return nil, ErrNotFound
	}
	return channel, nil
}
