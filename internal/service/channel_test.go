package service_test

import (
	"context"
	"testing"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository"
	"chatgenius/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestChannelService_Create_NormalizesName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := service.NewChannelService(f.stores.ChannelRepo, f.tx, f.gate)

	f.expectMember(ctx, "ws-1", "u-1", domain.RoleMember)
	f.stores.ChannelRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Channel) bool {
		return c.Name == "random-chat" && c.WorkspaceID == "ws-1"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Channel).ID = "ch-random"
	}).Return(nil).Once()
	f.stores.ChannelRepo.On("AddMember", ctx, mock.MatchedBy(func(m *domain.ChannelMember) bool {
		return m.ChannelID == "ch-random" && m.UserID == "u-1"
	})).Return(nil).Once()

	ch, err := svc.Create(ctx, "u-1", "ws-1", "  Random   Chat ")
	require.NoError(t, err)
	assert.Equal(t, "random-chat", ch.Name)
	f.stores.AssertAll(t)
}

func TestChannelService_Create_NonMemberForbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := service.NewChannelService(f.stores.ChannelRepo, f.tx, f.gate)
	f.stores.MemberRepo.On("Find", ctx, "ws-1", "u-x").Return(nil, repository.ErrMemberNotFound).Once()

	_, err := svc.Create(ctx, "u-x", "ws-1", "random")
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Equal(t, 0, f.tx.Calls, "非成员不应产生任何写入")
	f.stores.ChannelRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestChannelService_Create_DuplicateNameConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := service.NewChannelService(f.stores.ChannelRepo, f.tx, f.gate)
	f.expectMember(ctx, "ws-1", "u-1", domain.RoleMember)
	f.stores.ChannelRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	_, err := svc.Create(ctx, "u-1", "ws-1", "General")
	assert.ErrorIs(t, err, service.ErrConflict)
	f.stores.ChannelRepo.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything)
}

func TestChannelService_Create_InvalidName(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := service.NewChannelService(f.stores.ChannelRepo, f.tx, f.gate)

	_, err := svc.Create(ctx, "u-1", "ws-1", "   ")
	var vErr *service.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
	f.stores.MemberRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything, mock.Anything)
}

func TestChannelService_General_ExistingIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := service.NewChannelService(f.stores.ChannelRepo, f.tx, f.gate)
	general := &domain.Channel{ID: "ch-general", Name: "general", WorkspaceID: "ws-1"}

	f.stores.MemberRepo.On("Find", ctx, "ws-1", "u-1").
		Return(&domain.WorkspaceMember{UserID: "u-1", WorkspaceID: "ws-1", Role: domain.RoleMember}, nil).Twice()
	f.stores.ChannelRepo.On("FindByName", ctx, "ws-1", "general").Return(general, nil).Twice()
	f.stores.ChannelRepo.On("AddMember", ctx, mock.Anything).Return(nil).Once()
	f.stores.ChannelRepo.On("AddMember", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()

	first, err := svc.General(ctx, "u-1", "ws-1")
	require.NoError(t, err)
	second, err := svc.General(ctx, "u-1", "ws-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	f.stores.ChannelRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.stores.AssertAll(t)
}

func TestChannelService_General_ConcurrentCreateRereads(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := service.NewChannelService(f.stores.ChannelRepo, f.tx, f.gate)
	general := &domain.Channel{ID: "ch-general", Name: "general", WorkspaceID: "ws-1"}

	f.expectMember(ctx, "ws-1", "u-1", domain.RoleMember)
	f.stores.ChannelRepo.On("FindByName", ctx, "ws-1", "general").Return(nil, repository.ErrChannelNotFound).Once()
	f.stores.ChannelRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEntry).Once()
	f.stores.ChannelRepo.On("FindByName", ctx, "ws-1", "general").Return(general, nil).Once()
	f.stores.ChannelRepo.On("AddMember", ctx, mock.Anything).Return(nil).Once()

	ch, err := svc.General(ctx, "u-1", "ws-1")
	require.NoError(t, err)
	assert.Equal(t, "ch-general", ch.ID)
	f.stores.AssertAll(t)
}
