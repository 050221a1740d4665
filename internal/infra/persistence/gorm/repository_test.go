package gormpersistence_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"chatgenius/internal/domain"
	gormpersistence "chatgenius/internal/infra/persistence/gorm"
	"chatgenius/internal/infra/setup"
	"chatgenius/internal/repository"
	"chatgenius/internal/service"
)

// openTestDB 每个测试一个独立的内存库
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=private", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), setup.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库按连接隔离，只允许一个连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, setup.MigrateDB(db))
	return db
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Notify(_ context.Context, topic, event string, _ interface{}) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, topic+"/"+event)
}

func (n *recordingNotifier) Events() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type app struct {
	workspaces *service.WorkspaceService
	channels   *service.ChannelService
	messages   *service.MessageService
	reactions  *service.ReactionService
	invites    *service.InviteService
	notifier   *recordingNotifier
}

func newApp(db *gorm.DB) *app {
	memberRepo := gormpersistence.NewGormMemberRepository(db)
	channelRepo := gormpersistence.NewGormChannelRepository(db)
	messageRepo := gormpersistence.NewGormMessageRepository(db)
	txRunner := gormpersistence.NewGormTxRunner(db)
	gate := service.NewGate(memberRepo, channelRepo)
	notifier := &recordingNotifier{}

	return &app{
		workspaces: service.NewWorkspaceService(gormpersistence.NewGormWorkspaceRepository(db), memberRepo, txRunner, gate, "http://localhost:3000"),
		channels:   service.NewChannelService(channelRepo, txRunner, gate),
		messages:   service.NewMessageService(messageRepo, gormpersistence.NewGormUserRepository(db), gate, notifier),
		reactions:  service.NewReactionService(gormpersistence.NewGormReactionRepository(db), messageRepo, gate, notifier),
		invites:    service.NewInviteService(gormpersistence.NewGormInviteRepository(db), memberRepo, txRunner, gate),
		notifier:   notifier,
	}
}

var (
	alice = domain.Identity{UserID: "user_alice", Name: "Alice", Email: "alice@acme.test"}
	bob   = domain.Identity{UserID: "user_bob", Name: "Bob", Email: "bob@acme.test"}
)

func TestAcmeScenario(t *testing.T) {
	ctx := context.Background()
	a := newApp(openTestDB(t))

	// 创建工作区：自动生成 general 频道，创建者是 ADMIN 且在频道内
	created, err := a.workspaces.Create(ctx, alice, "Acme", "#4f46e5", "")
	require.NoError(t, err)
	wsID := created.Workspace.ID
	general := created.GeneralChannel
	assert.Equal(t, domain.GeneralChannelName, general.Name)

	members, err := a.workspaces.Members(ctx, alice.UserID, wsID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, domain.RoleAdmin, members[0].Role)

	channels, err := a.channels.List(ctx, alice.UserID, wsID)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, general.ID, channels[0].ID)

	// 发送消息
	msg, err := a.messages.Send(ctx, alice, wsID, general.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Content)
	assert.Equal(t, "Alice", msg.User.Name)

	// 回应，重复回应冲突且只保留一行
	_, err = a.reactions.Add(ctx, alice.UserID, msg.ID, "👍")
	require.NoError(t, err)
	_, err = a.reactions.Add(ctx, alice.UserID, msg.ID, "👍")
	assert.ErrorIs(t, err, service.ErrConflict)

	listed, err := a.messages.List(ctx, alice.UserID, wsID, general.ID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Len(t, listed[0].Reactions, 1)

	// 删除回应，再删一次静默成功
	require.NoError(t, a.reactions.Remove(ctx, alice.UserID, msg.ID, "👍"))
	require.NoError(t, a.reactions.Remove(ctx, alice.UserID, msg.ID, "👍"))

	listed, err = a.messages.List(ctx, alice.UserID, wsID, general.ID, 0)
	require.NoError(t, err)
	assert.Empty(t, listed[0].Reactions)

	topic := domain.ChannelTopic(general.ID)
	assert.Equal(t, []string{
		topic + "/" + domain.EventNewMessage,
		topic + "/" + domain.EventNewReaction,
		topic + "/" + domain.EventReactionRemoved,
	}, a.notifier.Events())
}

func TestNonMemberIsForbidden(t *testing.T) {
	ctx := context.Background()
	a := newApp(openTestDB(t))

	created, err := a.workspaces.Create(ctx, alice, "Acme", "", "")
	require.NoError(t, err)
	wsID, channelID := created.Workspace.ID, created.GeneralChannel.ID

	_, err = a.channels.Create(ctx, bob.UserID, wsID, "random")
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = a.messages.List(ctx, bob.UserID, wsID, channelID, 0)
	assert.ErrorIs(t, err, service.ErrForbidden)

	_, err = a.messages.Send(ctx, bob, wsID, channelID, "hi")
	assert.ErrorIs(t, err, service.ErrForbidden)
	assert.Empty(t, a.notifier.Events())
}

func TestInviteAcceptGrantsAccess(t *testing.T) {
	ctx := context.Background()
	a := newApp(openTestDB(t))

	created, err := a.workspaces.Create(ctx, alice, "Acme", "", "")
	require.NoError(t, err)
	wsID, channelID := created.Workspace.ID, created.GeneralChannel.ID
	_, err = a.messages.Send(ctx, alice, wsID, channelID, "welcome")
	require.NoError(t, err)

	_, err = a.invites.Create(ctx, alice.UserID, wsID, "Bob@Acme.test")
	require.NoError(t, err)
	require.NoError(t, a.invites.Verify(ctx, wsID, bob.Email))

	member, err := a.invites.Accept(ctx, bob, wsID, bob.Email)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleMember, member.Role)

	// 接受后加入 general 频道，可以读取历史
	listed, err := a.messages.List(ctx, bob.UserID, wsID, channelID, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "welcome", listed[0].Content)

	// 邀请已被使用
	err = a.invites.Verify(ctx, wsID, bob.Email)
	assert.ErrorIs(t, err, service.ErrNotFound)

	// 普通成员不能生成邀请链接
	_, err = a.workspaces.InviteLink(ctx, bob.UserID, wsID)
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestMessageContentRoundTripsVerbatim(t *testing.T) {
	ctx := context.Background()
	a := newApp(openTestDB(t))

	created, err := a.workspaces.Create(ctx, alice, "Acme", "", "")
	require.NoError(t, err)
	wsID, channelID := created.Workspace.ID, created.GeneralChannel.ID

	contents := []string{"if x<y then swap", "vector<int> v", "wrap it in <div> tags", "&lt;script&gt;"}
	for _, content := range contents {
		_, err := a.messages.Send(ctx, alice, wsID, channelID, content)
		require.NoError(t, err)
	}

	listed, err := a.messages.List(ctx, alice.UserID, wsID, channelID, 0)
	require.NoError(t, err)
	got := make([]string, 0, len(listed))
	for _, m := range listed {
		got = append(got, m.Content)
	}
	assert.ElementsMatch(t, contents, got)
}

func TestChannelNamesUniquePerWorkspace(t *testing.T) {
	ctx := context.Background()
	a := newApp(openTestDB(t))

	acme, err := a.workspaces.Create(ctx, alice, "Acme", "", "")
	require.NoError(t, err)
	other, err := a.workspaces.Create(ctx, alice, "Other", "", "")
	require.NoError(t, err)

	ch, err := a.channels.Create(ctx, alice.UserID, acme.Workspace.ID, "Product Launch")
	require.NoError(t, err)
	assert.Equal(t, "product-launch", ch.Name)

	_, err = a.channels.Create(ctx, alice.UserID, acme.Workspace.ID, "product launch")
	assert.ErrorIs(t, err, service.ErrConflict)

	// 不同工作区可以同名
	_, err = a.channels.Create(ctx, alice.UserID, other.Workspace.ID, "product-launch")
	assert.NoError(t, err)

	// general 已存在时幂等返回
	general, err := a.channels.General(ctx, alice.UserID, acme.Workspace.ID)
	require.NoError(t, err)
	assert.Equal(t, acme.GeneralChannel.ID, general.ID)
}

func TestMessageRepository_ListRecentAscending(t *testing.T) {
	ctx := context.Background()
	repo := gormpersistence.NewGormMessageRepository(openTestDB(t))

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Message{
			Content:   fmt.Sprintf("m%d", i),
			UserID:    alice.UserID,
			ChannelID: "ch-1",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, &domain.Message{Content: "elsewhere", UserID: alice.UserID, ChannelID: "ch-2"}))

	// 取最新 3 条，升序返回
	list, err := repo.ListRecent(ctx, "ch-1", 3)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "m2", list[0].Content)
	assert.Equal(t, "m3", list[1].Content)
	assert.Equal(t, "m4", list[2].Content)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].CreatedAt.Before(list[i-1].CreatedAt))
	}
}

func TestMessageRepository_MarkReadDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := gormpersistence.NewGormMessageRepository(openTestDB(t))

	msg := &domain.Message{Content: "hi", UserID: alice.UserID, ChannelID: "ch-1"}
	require.NoError(t, repo.Create(ctx, msg))

	require.NoError(t, repo.MarkRead(ctx, &domain.MessageRead{MessageID: msg.ID, UserID: bob.UserID}))
	err := repo.MarkRead(ctx, &domain.MessageRead{MessageID: msg.ID, UserID: bob.UserID})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrMessageNotFound)
}

func TestReactionRepository_DeleteMatching(t *testing.T) {
	ctx := context.Background()
	repo := gormpersistence.NewGormReactionRepository(openTestDB(t))

	n, err := repo.DeleteMatching(ctx, alice.UserID, "msg-1", "👍")
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, repo.Create(ctx, &domain.Reaction{Emoji: "👍", UserID: alice.UserID, MessageID: "msg-1"}))
	err = repo.Create(ctx, &domain.Reaction{Emoji: "👍", UserID: alice.UserID, MessageID: "msg-1"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)

	n, err = repo.DeleteMatching(ctx, alice.UserID, "msg-1", "👍")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInviteRepository_UpdateStatusRequiresExpectedStatus(t *testing.T) {
	ctx := context.Background()
	repo := gormpersistence.NewGormInviteRepository(openTestDB(t))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	inv := &domain.WorkspaceInvite{WorkspaceID: "ws-1", Email: "bob@acme.test", Status: domain.InviteStatusPending, ExpiresAt: now.Add(-time.Minute)}
	require.NoError(t, repo.Save(ctx, inv))

	// 过期清理先执行，随后的接受不能覆盖 EXPIRED
	n, err := repo.ExpirePending(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	err = repo.UpdateStatus(ctx, inv.ID, domain.InviteStatusPending, domain.InviteStatusAccepted)
	assert.ErrorIs(t, err, repository.ErrInviteNotFound)

	got, err := repo.FindByEmail(ctx, "ws-1", "bob@acme.test")
	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusExpired, got.Status)
}

func TestReactionRepository_DistinctEmojiAreDistinct(t *testing.T) {
	ctx := context.Background()
	repo := gormpersistence.NewGormReactionRepository(openTestDB(t))

	// 补充平面字符之间、以及带/不带变体选择符的同一符号都必须视为不同 emoji
	for _, emoji := range []string{"👍", "😀", "❤", "❤️"} {
		err := repo.Create(ctx, &domain.Reaction{Emoji: emoji, UserID: alice.UserID, MessageID: "msg-1"})
		require.NoError(t, err, "emoji %q", emoji)
	}

	n, err := repo.DeleteMatching(ctx, alice.UserID, "msg-1", "❤")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestInviteRepository_ExpirePending(t *testing.T) {
	ctx := context.Background()
	repo := gormpersistence.NewGormInviteRepository(openTestDB(t))
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	stale := &domain.WorkspaceInvite{WorkspaceID: "ws-1", Email: "old@acme.test", Status: domain.InviteStatusPending, ExpiresAt: now.Add(-time.Hour)}
	fresh := &domain.WorkspaceInvite{WorkspaceID: "ws-1", Email: "new@acme.test", Status: domain.InviteStatusPending, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Save(ctx, stale))
	require.NoError(t, repo.Save(ctx, fresh))

	n, err := repo.ExpirePending(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.FindByEmail(ctx, "ws-1", "old@acme.test")
	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusExpired, got.Status)

	got, err = repo.FindByEmail(ctx, "ws-1", "new@acme.test")
	require.NoError(t, err)
	assert.Equal(t, domain.InviteStatusPending, got.Status)
}
