package mocks

import (
	"context"

	"chatgenius/internal/repository"

	"github.com/stretchr/testify/mock"
)

// Stores 把一组 mock 仓库组合成 repository.Stores，供事务 fake 使用。
type Stores struct {
	UserRepo      *UserRepository
	WorkspaceRepo *WorkspaceRepository
	MemberRepo    *MemberRepository
	ChannelRepo   *ChannelRepository
	MessageRepo   *MessageRepository
	ReactionRepo  *ReactionRepository
	InviteRepo    *InviteRepository
	FileRepo      *FileRepository
}

// NewStores 创建一组全新的 mock 仓库
func NewStores() *Stores {
	return &Stores{
		UserRepo:      new(UserRepository),
		WorkspaceRepo: new(WorkspaceRepository),
		MemberRepo:    new(MemberRepository),
		ChannelRepo:   new(ChannelRepository),
		MessageRepo:   new(MessageRepository),
		ReactionRepo:  new(ReactionRepository),
		InviteRepo:    new(InviteRepository),
		FileRepo:      new(FileRepository),
	}
}

func (s *Stores) Users() repository.UserRepository           { return s.UserRepo }
func (s *Stores) Workspaces() repository.WorkspaceRepository { return s.WorkspaceRepo }
func (s *Stores) Members() repository.MemberRepository       { return s.MemberRepo }
func (s *Stores) Channels() repository.ChannelRepository     { return s.ChannelRepo }
func (s *Stores) Messages() repository.MessageRepository     { return s.MessageRepo }
func (s *Stores) Reactions() repository.ReactionRepository   { return s.ReactionRepo }
func (s *Stores) Invites() repository.InviteRepository       { return s.InviteRepo }
func (s *Stores) Files() repository.FileRepository           { return s.FileRepo }

// TxRunner 是一个直通的事务 fake：直接用同一组 mock 仓库执行 fn。
type TxRunner struct {
	Stores *Stores
	Calls  int
}

func (r *TxRunner) WithTx(ctx context.Context, fn func(stores repository.Stores) error) error {
	r.Calls++
	return fn(r.Stores)
}

// AssertAll 断言所有 mock 仓库的预期都已满足
func (s *Stores) AssertAll(t mock.TestingT) {
	s.UserRepo.AssertExpectations(t)
	s.WorkspaceRepo.AssertExpectations(t)
	s.MemberRepo.AssertExpectations(t)
	s.ChannelRepo.AssertExpectations(t)
	s.MessageRepo.AssertExpectations(t)
	s.ReactionRepo.AssertExpectations(t)
	s.InviteRepo.AssertExpectations(t)
	s.FileRepo.AssertExpectations(t)
}
