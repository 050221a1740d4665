package service_test

import (
	"context"
	"errors"
	"testing"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"
	"chatgenius/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWorkspaceService(f *fixture) *service.WorkspaceService {
	return service.NewWorkspaceService(f.stores.WorkspaceRepo, f.stores.MemberRepo, f.tx, f.gate, "https://chat.example.com/")
}

func TestWorkspaceService_Create_ProvisionsAdminAndGeneral(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newFixture()
	svc := newWorkspaceService(f)
	alice := domain.Identity{UserID: "u-alice", Name: "Alice", Email: "alice@example.com"}

	f.stores.UserRepo.On("Upsert", ctx, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "u-alice" && u.Name == "Alice"
	})).Return(nil).Once()
	f.stores.WorkspaceRepo.On("Create", ctx, mock.AnythingOfType("*domain.Workspace")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Workspace).ID = "ws-acme"
		}).Return(nil).Once()
	f.stores.MemberRepo.On("Create", ctx, mock.MatchedBy(func(m *domain.WorkspaceMember) bool {
		return m.UserID == "u-alice" && m.WorkspaceID == "ws-acme" && m.Role == domain.RoleAdmin
	})).Return(nil).Once()
	f.stores.ChannelRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Channel) bool {
		return c.Name == domain.GeneralChannelName && c.WorkspaceID == "ws-acme"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Channel).ID = "ch-general"
	}).Return(nil).Once()
	f.stores.ChannelRepo.On("AddMember", ctx, mock.MatchedBy(func(m *domain.ChannelMember) bool {
		return m.UserID == "u-alice" && m.ChannelID == "ch-general"
	})).Return(nil).Once()

	// Act
	result, err := svc.Create(ctx, alice, "  Acme  ", "#ff0000", "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Acme", result.Workspace.Name)
	assert.Equal(t, "ch-general", result.GeneralChannel.ID)
	assert.Equal(t, 1, f.tx.Calls, "所有写入应在同一个事务中")
	f.stores.AssertAll(t)
}

func TestWorkspaceService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newWorkspaceService(f)

	_, err := svc.Create(ctx, domain.Identity{UserID: "u-1"}, "   ", "", "")
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	assert.ErrorIs(t, err, service.ErrValidation)
	assert.Equal(t, 0, f.tx.Calls)

	_, err = svc.Create(ctx, domain.Identity{}, "Acme", "", "")
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestWorkspaceService_Create_StoreFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newWorkspaceService(f)

	f.stores.UserRepo.On("Upsert", ctx, mock.Anything).Return(nil).Once()
	f.stores.WorkspaceRepo.On("Create", ctx, mock.Anything).Return(errors.New("disk full")).Once()

	_, err := svc.Create(ctx, domain.Identity{UserID: "u-1"}, "Acme", "", "")
	assert.ErrorIs(t, err, service.ErrInternalServer)
	f.stores.MemberRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestWorkspaceService_Get_NonMemberForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newWorkspaceService(f)
	f.stores.MemberRepo.On("Find", ctx, "ws-1", "u-x").Return(nil, repository.ErrMemberNotFound).Once()

	_, err := svc.Get(ctx, "u-x", "ws-1")
	assert.ErrorIs(t, err, service.ErrForbidden)
	f.stores.WorkspaceRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestWorkspaceService_Leave(t *testing.T) {
	ctx := context.Background()

	t.Run("成功离开时同时移除频道成员关系", func(t *testing.T) {
		f := newFixture()
		svc := newWorkspaceService(f)
		f.stores.MemberRepo.On("Delete", ctx, "ws-1", "u-1").Return(int64(1), nil).Once()
		f.stores.ChannelRepo.On("RemoveMemberFromWorkspace", ctx, "ws-1", "u-1").Return(nil).Once()

		assert.NoError(t, svc.Leave(ctx, "u-1", "ws-1"))
		f.stores.AssertAll(t)
	})

	t.Run("非成员返回 NotFound", func(t *testing.T) {
		f := newFixture()
		svc := newWorkspaceService(f)
		f.stores.MemberRepo.On("Delete", ctx, "ws-1", "u-x").Return(int64(0), nil).Once()

		assert.ErrorIs(t, svc.Leave(ctx, "u-x", "ws-1"), service.ErrNotFound)
		f.stores.ChannelRepo.AssertNotCalled(t, "RemoveMemberFromWorkspace", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestWorkspaceService_InviteLink_AdminOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := newWorkspaceService(f)
	f.expectMember(ctx, "ws-1", "u-admin", domain.RoleAdmin)
	f.expectMember(ctx, "ws-1", "u-member", domain.RoleMember)

	link, err := svc.InviteLink(ctx, "u-admin", "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "https://chat.example.com/invite/ws-1", link)

	_, err = svc.InviteLink(ctx, "u-member", "ws-1")
	assert.ErrorIs(t, err, service.ErrForbidden)
}
