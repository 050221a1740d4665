package gormpersistence

import (
	"context"

	"gorm.io/gorm"

	"chatgenius/internal/repository"
)

// GormStores 用同一个 *gorm.DB (可能是事务) 构造全部仓库。
type GormStores struct {
	db *gorm.DB
}

// NewGormStores 创建 GormStores 实例
func NewGormStores(db *gorm.DB) *GormStores {
	if db == nil {
		panic("database connection cannot be nil for GormStores")
	}
	return &GormStores{db: db}
}

func (s *GormStores) Users() repository.UserRepository { return NewGormUserRepository(s.db) }
func (s *GormStores) Workspaces() repository.WorkspaceRepository {
	return NewGormWorkspaceRepository(s.db)
}
func (s *GormStores) Members() repository.MemberRepository     { return NewGormMemberRepository(s.db) }
func (s *GormStores) Channels() repository.ChannelRepository   { return NewGormChannelRepository(s.db) }
func (s *GormStores) Messages() repository.MessageRepository   { return NewGormMessageRepository(s.db) }
func (s *GormStores) Reactions() repository.ReactionRepository { return NewGormReactionRepository(s.db) }
func (s *GormStores) Invites() repository.InviteRepository     { return NewGormInviteRepository(s.db) }
func (s *GormStores) Files() repository.FileRepository         { return NewGormFileRepository(s.db) }

// GormTxRunner 基于 gorm.DB.Transaction 实现 TxRunner
type GormTxRunner struct {
	db *gorm.DB
}

// NewGormTxRunner 创建 GormTxRunner 实例
func NewGormTxRunner(db *gorm.DB) *GormTxRunner {
	if db == nil {
		panic("database connection cannot be nil for GormTxRunner")
	}
	return &GormTxRunner{db: db}
}

// WithTx fn 返回错误时整个事务回滚
func (r *GormTxRunner) WithTx(ctx context.Context, fn func(stores repository.Stores) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStores(tx))
	})
}
