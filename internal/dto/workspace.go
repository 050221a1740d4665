package dto

import (
	"time"

	"chatgenius/internal/domain"
)

// MemberResponse 工作区成员
type MemberResponse struct {
	UserID   string            `json:"userId"`
	Role     domain.MemberRole `json:"role"`
	JoinedAt time.Time         `json:"joinedAt"`
	User     UserSummary       `json:"user"`
}

func NewMemberResponse(m *domain.WorkspaceMember) MemberResponse {
	return MemberResponse{
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: m.JoinedAt,
		User:     NewUserSummary(m.UserID, m.User),
	}
}

// ProfileResponse 用户公开资料
type ProfileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
	Bio      string `json:"bio"`
}

func NewProfileResponse(u *domain.User) ProfileResponse {
	return ProfileResponse{ID: u.ID, Name: u.Name, ImageURL: u.ImageURL, Bio: u.Bio}
}
