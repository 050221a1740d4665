package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"

	"github.com/sirupsen/logrus"
)

// InviteService 负责工作区邀请的签发、验证、接受与过期。
type InviteService struct {
	inviteRepo repository.InviteRepository
	memberRepo repository.MemberRepository
	tx         repository.TxRunner
	gate       *Gate
	now        func() time.Time
}

// NewInviteService 创建 InviteService 实例。
func NewInviteService(
	inviteRepo repository.InviteRepository,
	memberRepo repository.MemberRepository,
	tx repository.TxRunner,
	gate *Gate,
) *InviteService {
	if inviteRepo == nil {
		panic("InviteRepository cannot be nil for InviteService")
	}
	if memberRepo == nil {
		panic("MemberRepository cannot be nil for InviteService")
	}
	if tx == nil {
		panic("TxRunner cannot be nil for InviteService")
	}
	if gate == nil {
		panic("Gate cannot be nil for InviteService")
	}
	return &InviteService{
		inviteRepo: inviteRepo,
		memberRepo: memberRepo,
		tx:         tx,
		gate:       gate,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// WithClock 替换时间源 (测试用)
func (s *InviteService) WithClock(now func() time.Time) *InviteService {
	s.now = now
	return s
}

func normalizeEmail(email string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return "", newValidationError("email", "email is required")
	}
	if _, err := mail.ParseAddress(e); err != nil {
		return "", newValidationError("email", "email is invalid")
	}
	return e, nil
}

// Create 为邮箱签发邀请。已有未过期的 PENDING 邀请时返回 ErrConflict，其它状态的旧邀请被重新签发。
func (s *InviteService) Create(ctx context.Context, userID, workspaceID, email string) (*domain.WorkspaceInvite, error) {
	e, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": userID, "workspace_id": workspaceID, "email": e})
	now := s.now()

	invite, err := s.inviteRepo.FindByEmail(ctx, workspaceID, e)
	switch {
	case err == nil:
		if invite.IsUsable(now) {
			logCtx.Warn("Pending invite already exists")
			return nil, ErrConflict
		}
	case errors.Is(err, repository.ErrInviteNotFound):
		invite = &domain.WorkspaceInvite{Email: e, WorkspaceID: workspaceID}
	default:
		logCtx.WithError(err).Error("Failed to look up invite")
		return nil, ErrInternalServer
	}

	invite.InvitedByID = userID
	invite.Status = domain.InviteStatusPending
	invite.ExpiresAt = now.Add(domain.InviteExpiry)
	if err := s.inviteRepo.Save(ctx, invite); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrConflict
		}
		logCtx.WithError(err).Error("Failed to save invite")
		return nil, ErrInternalServer
	}
	logCtx.WithField("invite_id", invite.ID).Info("Invite issued")
	return invite, nil
}

// List 列出工作区的邀请
func (s *InviteService) List(ctx context.Context, userID, workspaceID string) ([]domain.WorkspaceInvite, error) {
	if _, err := s.gate.RequireWorkspaceMember(ctx, userID, workspaceID); err != nil {
		return nil, err
	}
	list, err := s.inviteRepo.ListByWorkspace(ctx, workspaceID)
	if err != nil {
		logrus.WithField("workspace_id", workspaceID).WithError(err).Error("Failed to list invites")
		return nil, ErrInternalServer
	}
	return list, nil
}

// usableInvite 查找可用的邀请，不存在或不可用时返回 ErrNotFound
func (s *InviteService) usableInvite(ctx context.Context, workspaceID, email string) (*domain.WorkspaceInvite, error) {
	invite, err := s.inviteRepo.FindByEmail(ctx, workspaceID, email)
	if err != nil {
		if errors.Is(err, repository.ErrInviteNotFound) {
			return nil, ErrNotFound
		}
		logrus.WithFields(logrus.Fields{"workspace_id": workspaceID, "email": email}).
			WithError(err).Error("Failed to look up invite")
		return nil, ErrInternalServer
	}
	if !invite.IsUsable(s.now()) {
		return nil, ErrNotFound
	}
	return invite, nil
}

// Verify 检查邮箱是否持有可用邀请
func (s *InviteService) Verify(ctx context.Context, workspaceID, email string) error {
	e, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	_, err = s.usableInvite(ctx, workspaceID, e)
	return err
}

// checkIdentityEmail 身份令牌带有邮箱时必须与邀请邮箱一致。
// 令牌没有 email 声明时不校验，知道受邀邮箱即可接受或拒绝。
func checkIdentityEmail(identity domain.Identity, email string) error {
	if identity.UserID == "" {
		return ErrUnauthenticated
	}
	if identity.Email != "" && !strings.EqualFold(strings.TrimSpace(identity.Email), email) {
		return ErrForbidden
	}
	return nil
}

// Accept 在一个事务中把邀请标记为 ACCEPTED 并创建 MEMBER 成员关系，同时加入 general 频道 (如存在)。
func (s *InviteService) Accept(ctx context.Context, identity domain.Identity, workspaceID, email string) (*domain.WorkspaceMember, error) {
	e, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := checkIdentityEmail(identity, e); err != nil {
		return nil, err
	}
	logCtx := logrus.WithFields(logrus.Fields{"user_id": identity.UserID, "workspace_id": workspaceID, "operation": "AcceptInvite"})

	invite, err := s.usableInvite(ctx, workspaceID, e)
	if err != nil {
		return nil, err
	}

	if _, err := s.memberRepo.Find(ctx, workspaceID, identity.UserID); err == nil {
		logCtx.Warn("User is already a workspace member")
		return nil, ErrConflict
	} else if !errors.Is(err, repository.ErrMemberNotFound) {
		logCtx.WithError(err).Error("Failed to check existing membership")
		return nil, ErrInternalServer
	}

	member := &domain.WorkspaceMember{UserID: identity.UserID, WorkspaceID: workspaceID, Role: domain.RoleMember}
	err = s.tx.WithTx(ctx, func(stores repository.Stores) error {
		if err := stores.Users().Upsert(ctx, identity.ToUser()); err != nil {
			return err
		}
		if err := stores.Invites().UpdateStatus(ctx, invite.ID, domain.InviteStatusPending, domain.InviteStatusAccepted); err != nil {
			return err
		}
		if err := stores.Members().Create(ctx, member); err != nil {
			return err
		}
		general, err := stores.Channels().FindByName(ctx, workspaceID, domain.GeneralChannelName)
		if errors.Is(err, repository.ErrChannelNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		err = stores.Channels().AddMember(ctx, &domain.ChannelMember{UserID: identity.UserID, ChannelID: general.ID})
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil
		}
		return err
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Concurrent accept produced duplicate membership")
			return nil, ErrConflict
		}
		if errors.Is(err, repository.ErrInviteNotFound) {
			logCtx.Warn("Invite left PENDING before it could be accepted")
			return nil, ErrNotFound
		}
		logCtx.WithError(err).Error("Failed to accept invite")
		return nil, ErrInternalServer
	}

	logCtx.WithField("invite_id", invite.ID).Info("Invite accepted")
	return member, nil
}

// Reject 把可用邀请标记为 REJECTED
func (s *InviteService) Reject(ctx context.Context, identity domain.Identity, workspaceID, email string) error {
	e, err := normalizeEmail(email)
	if err != nil {
		return err
	}
	if err := checkIdentityEmail(identity, e); err != nil {
		return err
	}
	invite, err := s.usableInvite(ctx, workspaceID, e)
	if err != nil {
		return err
	}
	if err := s.inviteRepo.UpdateStatus(ctx, invite.ID, domain.InviteStatusPending, domain.InviteStatusRejected); err != nil {
		logrus.WithField("invite_id", invite.ID).WithError(err).Error("Failed to reject invite")
		return mapRepoError(err)
	}
	logrus.WithFields(logrus.Fields{"invite_id": invite.ID, "user_id": identity.UserID}).Info("Invite rejected")
	return nil
}

// ExpirePending 把已过期的 PENDING 邀请标记为 EXPIRED，由后台任务周期调用
func (s *InviteService) ExpirePending(ctx context.Context) (int64, error) {
	n, err := s.inviteRepo.ExpirePending(ctx, s.now())
	if err != nil {
		logrus.WithError(err).Error("Failed to expire pending invites")
		return 0, ErrInternalServer
	}
	return n, nil
}
