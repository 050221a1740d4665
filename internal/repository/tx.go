package repository

import "context"

// Stores 聚合了所有仓库，事务内的仓库共享同一个事务。
type Stores interface {
	Users() UserRepository
	Workspaces() WorkspaceRepository
	Members() MemberRepository
	Channels() ChannelRepository
	Messages() MessageRepository
	Reactions() ReactionRepository
	Invites() InviteRepository
	Files() FileRepository
}

// TxRunner 在一个事务中执行 fn。fn 返回错误时回滚，否则提交。
type TxRunner interface {
	WithTx(ctx context.Context, fn func(stores Stores) error) error
}
