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

const maxWorkspaceNameLength = 100

// WorkspaceService 负责工作区相关的业务逻辑。
type WorkspaceService struct {
	workspaceRepo repository.WorkspaceRepository
	memberRepo    repository.MemberRepository
	tx            repository.TxRunner
	gate          *Gate
	appURL        string
}

// NewWorkspaceService 创建 WorkspaceService 实例。
func NewWorkspaceService(
	workspaceRepo repository.WorkspaceRepository,
	memberRepo repository.MemberRepository,
	tx repository.TxRunner,
	gate *Gate,
	appURL string,
) *WorkspaceService {
	if workspaceRepo == nil {
		panic("WorkspaceRepository cannot be nil for WorkspaceService")
	}
	if memberRepo == nil {
		panic("MemberRepository cannot be nil for WorkspaceService")
	}
	if tx == nil {
		panic("TxRunner cannot be nil for WorkspaceService")
	}
	if gate == nil {
		panic("Gate cannot be nil for WorkspaceService")
	}
	return &WorkspaceService{
		workspaceRepo: workspaceRepo,
		memberRepo:    memberRepo,
		tx:            tx,
		gate:          gate,
		appURL:        strings.TrimRight(appURL, "/"),
	}
}

// CreateWorkspaceResult 是创建工作区的结果
type CreateWorkspaceResult struct {
	Workspace      *domain.Workspace `json:"workspace"`
	GeneralChannel *domain.Channel   `json:"generalChannel"`
}

// List 返回调用者所属的工作区
func (s *WorkspaceService) List(ctx context.Context, userID string) ([]domain.Workspace, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	list, err := s.workspaceRepo.ListByMember(ctx, userID)
	if err != nil {
		logrus.WithField("user_id", userID).WithError(err).Error("Failed to list workspaces")
		return nil, ErrInternalServer
	}
	return list, nil
}

// Create 在一个事务中创建工作区、ADMIN 成员关系以及 general 频道 (创建者同时是频道成员)。
func (s *WorkspaceService) Create(ctx context.Context, identity domain.Identity, name, color, imageURL string) (*CreateWorkspaceResult, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "operation": "CreateWorkspace"})

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newValidationError("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxWorkspaceNameLength {
		return nil, newValidationError("name", fmt.Sprintf("name must be at most %d characters", maxWorkspaceNameLength))
	}

	result := &CreateWorkspaceResult{}
	err := s.tx.WithTx(ctx, func(stores repository.Stores) error {
		if err := stores.Users().Upsert(ctx, identity.ToUser()); err != nil {
			return fmt.Errorf("upsert creator: %w", err)
		}
		ws := &domain.Workspace{Name: name, Color: strings.TrimSpace(color), ImageURL: strings.TrimSpace(imageURL)}
		if err := stores.Workspaces().Create(ctx, ws); err != nil {
			return fmt.Errorf("create workspace: %w", err)
		}
		member := &domain.WorkspaceMember{UserID: identity.UserID, WorkspaceID: ws.ID, Role: domain.RoleAdmin}
		if err := stores.Members().Create(ctx, member); err != nil {
			return fmt.Errorf("create admin member: %w", err)
		}
		general := &domain.Channel{Name: domain.GeneralChannelName, WorkspaceID: ws.ID}
		if err := stores.Channels().Create(ctx, general); err != nil {
			return fmt.Errorf("create general channel: %w", err)
		}
		if err := stores.Channels().AddMember(ctx, &domain.ChannelMember{UserID: identity.UserID, ChannelID: general.ID}); err != nil {
			return fmt.Errorf("join general channel: %w", err)
		}
		result.Workspace = ws
		result.GeneralChannel = general
		return nil
	})
	if err != nil {
		logCtx.WithError(err).Error("Failed to create workspace")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{
		"workspace_id": result.Workspace.ID,
		"channel_id":   result.GeneralChannel.ID,
	}).Info("Workspace created with general channel")
	return result, nil
}

// Get 仅成员可见；成员检查先于存在性检查
func (s *WorkspaceService) Get(ctx context.Context, userID, workspaceID string) (*domain.Workspace, error) {
	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	ws, err := s.workspaceRepo.FindByID(ctx, workspaceID)
	if err != nil {
		if !errors.Is(err, repository.ErrWorkspaceNotFound) {
			logrus.WithField("workspace_id", workspaceID).WithError(err).Error("Failed to load workspace")
		}
		return nil, mapRepoError(err)
	}
	return ws, nil
}

// Members 列出工作区成员
func (s *WorkspaceService) Members(ctx context.Context, userID, workspaceID string) ([]dto.MemberResponse, error) {
	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	members, err := s.memberRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		logrus.WithField("workspace_id", workspaceID).WithError(err).Error("Failed to list workspace members")
		return nil, ErrInternalServer
	}
	out := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		out = append(out, dto.NewMemberResponse(&members[i]))
	}
	return out, nil
}

// Leave 删除调用者的工作区成员关系以及其在该工作区所有频道中的成员关系。
func (s *WorkspaceService) Leave(ctx context.Context, userID, workspaceID string) error {
	if userID == "" {
		return ErrUnauthenticated
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID})

	err := s.tx.WithTx(ctx, func(stores repository.Stores) error {
		n, err := stores.Members().Delete(ctx, workspaceID, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			return repository.ErrMemberNotFound
		}
		return stores.Channels().RemoveMemberFromWorkspace(ctx, workspaceID, userID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrMemberNotFound) {
			logCtx.Warn("Leave: user is not a member")
			return ErrNotFound
		}
		logCtx.WithError(err).Error("Failed to leave workspace")
		return ErrInternalServer
	}
	logCtx.Info("User left workspace")
	return nil
}

// InviteLink 仅 ADMIN 可获取工作区邀请链接
func (s *WorkspaceService) InviteLink(ctx context.Context, userID, workspaceID string) (string, error) {
	if _, err := s.gate.RequireWorkspaceAdmin(ctx, userID, workspaceID); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/invite/%s", s.appURL, workspaceID), nil
}
