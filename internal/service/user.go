package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"chatgenius/internal/domain"
	"chatgenius/internal/dto"
	"chatgenius/internal/repository"

	"github.com/sirupsen/logrus"
)

const maxBioLength = 500

// UserService 维护本地用户资料 (身份本身由外部提供方管理)。
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建 UserService 实例。
func NewUserService(userRepo repository.UserRepository) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo}
}

// Me upsert 并返回调用者
func (s *UserService) Me(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	if err := s.userRepo.Upsert(ctx, identity.ToUser()); err != nil {
		logrus.WithField("user_id", identity.UserID).WithError(err).Error("Failed to upsert user")
		return nil, ErrInternalServer
	}
	user, err := s.userRepo.FindByID(ctx, identity.UserID)
	if err != nil {
		logrus.WithField("user_id", identity.UserID).WithError(err).Error("Failed to reload user after upsert")
		return nil, ErrInternalServer
	}
	return user, nil
}

// Get 返回用户公开资料
func (s *UserService) Get(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logrus.WithField("user_id", userID).WithError(err).Error("Failed to load user")
		}
		return nil, mapRepoError(err)
	}
	resp := dto.NewProfileResponse(user)
	return &resp, nil
}

// UpdateBio 更新调用者简介
func (s *UserService) UpdateBio(ctx context.Context, identity domain.Identity, bio string) (*dto.ProfileResponse, error) {
	if identity.UserID == "" {
		return nil, ErrUnauthenticated
	}
	bio = strings.TrimSpace(bio)
	if utf8.RuneCountInString(bio) > maxBioLength {
		return nil, newValidationError("bio", "bio is too long")
	}
	logCtx := logrus.WithField("user_id", identity.UserID)

	if err := s.userRepo.Upsert(ctx, identity.ToUser()); err != nil {
		logCtx.WithError(err).Error("Failed to upsert user before bio update")
		return nil, ErrInternalServer
	}
	if err := s.userRepo.UpdateBio(ctx, identity.UserID, bio); err != nil {
		logCtx.WithError(err).Error("Failed to update bio")
		return nil, mapRepoError(err)
	}
	logCtx.Info("Bio updated")
	return s.Get(ctx, identity.UserID)
}
