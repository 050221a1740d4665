package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberRole 是工作区成员的角色
type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleMember MemberRole = "MEMBER"
)

// Workspace 表示一个团队工作区，包含若干频道。
type Workspace struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Color     string    `gorm:"type:varchar(32)" json:"color"`  // 可选的主题色
	ImageURL  string    `gorm:"type:varchar(512)" json:"imageUrl"` // 可选的图标
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (w *Workspace) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// WorkspaceMember 记录用户在工作区中的成员关系，(user_id, workspace_id) 唯一。
type WorkspaceMember struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID      string     `gorm:"type:varchar(191);not null;uniqueIndex:uk_workspace_user,priority:2" json:"userId"`
	WorkspaceID string     `gorm:"type:varchar(36);not null;uniqueIndex:uk_workspace_user,priority:1" json:"workspaceId"`
	Role        MemberRole `gorm:"type:varchar(16);not null;default:MEMBER" json:"role"`
	JoinedAt    time.Time  `gorm:"autoCreateTime" json:"joinedAt"`

	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (m *WorkspaceMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin 判断成员是否为管理员
func (m *WorkspaceMember) IsAdmin() bool { return m.Role == RoleAdmin }
