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
)

func TestGate_RequireWorkspaceMember(t *testing.T) {
	ctx := context.Background()

	t.Run("未登录", func(t *testing.T) {
		f := newFixture()
		_, err := f.gate.RequireWorkspaceMember(ctx, "", "ws-1")
		assert.ErrorIs(t, err, service.ErrUnauthenticated)
		f.stores.MemberRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("非成员返回 Forbidden", func(t *testing.T) {
		f := newFixture()
		f.stores.MemberRepo.On("Find", ctx, "ws-1", "u-x").Return(nil, repository.ErrMemberNotFound).Once()

		_, err := f.gate.RequireWorkspaceMember(ctx, "u-x", "ws-1")
		assert.ErrorIs(t, err, service.ErrForbidden)
		f.stores.AssertAll(t)
	})

	t.Run("存储错误返回内部错误", func(t *testing.T) {
		f := newFixture()
		f.stores.MemberRepo.On("Find", ctx, "ws-1", "u-1").Return(nil, errors.New("db down")).Once()

		_, err := f.gate.RequireWorkspaceMember(ctx, "u-1", "ws-1")
		assert.ErrorIs(t, err, service.ErrInternalServer)
	})

	t.Run("成员通过", func(t *testing.T) {
		f := newFixture()
		f.expectMember(ctx, "ws-1", "u-1", domain.RoleMember)

		m, err := f.gate.RequireWorkspaceMember(ctx, "u-1", "ws-1")
		assert.NoError(t, err)
		assert.Equal(t, "u-1", m.UserID)
	})
}

func TestGate_RequireWorkspaceAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.expectMember(ctx, "ws-1", "u-member", domain.RoleMember)
	f.expectMember(ctx, "ws-1", "u-admin", domain.RoleAdmin)

	_, err := f.gate.RequireWorkspaceAdmin(ctx, "u-member", "ws-1")
	assert.ErrorIs(t, err, service.ErrForbidden)

	m, err := f.gate.RequireWorkspaceAdmin(ctx, "u-admin", "ws-1")
	assert.NoError(t, err)
	assert.True(t, m.IsAdmin())
	f.stores.AssertAll(t)
}

func TestGate_RequireChannelInWorkspace(t *testing.T) {
	ctx := context.Background()
	channel := &domain.Channel{ID: "ch-1", Name: "general", WorkspaceID: "ws-1"}

	t.Run("频道不存在", func(t *testing.T) {
		f := newFixture()
		f.stores.ChannelRepo.On("FindByID", ctx, "missing").Return(nil, repository.ErrChannelNotFound).Once()

		_, err := f.gate.RequireChannelInWorkspace(ctx, "u-1", "ws-1", "missing")
		assert.ErrorIs(t, err, service.ErrNotFound)
		f.stores.ChannelRepo.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("非频道成员", func(t *testing.T) {
		f := newFixture()
		f.expectChannelMember(ctx, channel, "u-x", false)

		_, err := f.gate.RequireChannelInWorkspace(ctx, "u-x", "ws-1", "ch-1")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("频道不属于该工作区", func(t *testing.T) {
		f := newFixture()
		f.expectChannelMember(ctx, channel, "u-1", true)

		_, err := f.gate.RequireChannelInWorkspace(ctx, "u-1", "ws-other", "ch-1")
		assert.ErrorIs(t, err, service.ErrNotFound)
	})

	t.Run("成员通过", func(t *testing.T) {
		f := newFixture()
		f.expectChannelMember(ctx, channel, "u-1", true)

		got, err := f.gate.RequireChannelInWorkspace(ctx, "u-1", "ws-1", "ch-1")
		assert.NoError(t, err)
		assert.Equal(t, channel, got)
		f.stores.AssertAll(t)
	})
}
