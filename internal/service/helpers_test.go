package service_test

import (
	"context"
	"sync"

	"chatgenius/internal/domain"
	"chatgenius/internal/repository/mocks"
	"chatgenius/internal/service"
)

// recordedEvent 是 fakeNotifier 记录的一次通知
type recordedEvent struct {
	Topic   string
	Event   string
	Payload interface{}
}

// fakeNotifier 记录所有通知，供断言事件是否发出
type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *fakeNotifier) Notify(_ context.Context, topic, event string, payload interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Topic: topic, Event: event, Payload: payload})
}

func (n *fakeNotifier) Events() []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]recordedEvent(nil), n.events...)
}

// fixture 聚合一组 mock 仓库和依赖它们的 Gate
type fixture struct {
	stores   *mocks.Stores
	tx       *mocks.TxRunner
	gate     *service.Gate
	notifier *fakeNotifier
}

func newFixture() *fixture {
	stores := mocks.NewStores()
	return &fixture{
		stores:   stores,
		tx:       &mocks.TxRunner{Stores: stores},
		gate:     service.NewGate(stores.MemberRepo, stores.ChannelRepo),
		notifier: &fakeNotifier{},
	}
}

// expectMember 设置 (workspace, user) 成员关系查找的预期
func (f *fixture) expectMember(ctx context.Context, workspaceID, userID string, role domain.MemberRole) {
	f.stores.MemberRepo.On("Find", ctx, workspaceID, userID).
		Return(&domain.WorkspaceMember{ID: "m-" + userID, WorkspaceID: workspaceID, UserID: userID, Role: role}, nil).
		Once()
}

// expectChannelMember 设置频道查找和频道成员检查的预期
func (f *fixture) expectChannelMember(ctx context.Context, channel *domain.Channel, userID string, isMember bool) {
	f.stores.ChannelRepo.On("FindByID", ctx, channel.ID).Return(channel, nil).Once()
	f.stores.ChannelRepo.On("IsMember", ctx, channel.ID, userID).Return(isMember, nil).Once()
}
