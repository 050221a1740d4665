package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InviteStatus 邀请状态
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "PENDING"
	InviteStatusAccepted InviteStatus = "ACCEPTED"
	InviteStatusRejected InviteStatus = "REJECTED"
	InviteStatusExpired  InviteStatus = "EXPIRED"
)

// InviteExpiry 是邀请的有效期
const InviteExpiry = 7 * 24 * time.Hour

// WorkspaceInvite 是发给某个邮箱的工作区邀请，(email, workspace_id) 唯一。
type WorkspaceInvite struct {
	ID          string       `gorm:"type:varchar(36);primaryKey" json:"id"`
	Email       string       `gorm:"type:varchar(191);not null;uniqueIndex:uk_invite_email_workspace,priority:1" json:"email"`
	WorkspaceID string       `gorm:"type:varchar(36);not null;uniqueIndex:uk_invite_email_workspace,priority:2" json:"workspaceId"`
	InvitedByID string       `gorm:"type:varchar(191);not null" json:"invitedById"`
	Status      InviteStatus `gorm:"type:varchar(16);not null;default:PENDING;index" json:"status"`
	ExpiresAt   time.Time    `gorm:"index" json:"expiresAt"`
	CreatedAt   time.Time    `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time    `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (i *WorkspaceInvite) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// IsUsable 判断邀请在 now 时刻是否仍可被验证/接受
func (i *WorkspaceInvite) IsUsable(now time.Time) bool {
	return i.Status == InviteStatusPending && now.Before(i.ExpiresAt)
}
