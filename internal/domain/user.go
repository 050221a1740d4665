// Package domain 定义了聊天服务的核心数据结构 (数据库模型)。
package domain

import "time"

// User 表示一个由外部身份提供方认证过的用户。
// ID 直接使用身份提供方的 subject，不由本服务生成。
type User struct {
	ID        string    `gorm:"type:varchar(191);primaryKey" json:"id"`  // 身份提供方用户 ID
	Name      string    `gorm:"type:varchar(191);not null" json:"name"`    // 显示名称
	Email     string    `gorm:"type:varchar(191);index" json:"email"`       // 邮箱 (可能为空)
	ImageURL  string    `gorm:"type:varchar(512)" json:"imageUrl"`             // 头像地址
	Bio       string    `gorm:"type:text" json:"bio"`                     // 个人简介
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Identity 是认证中间件从会话令牌中解析出的调用者身份。
type Identity struct {
	UserID   string
	Name     string
	Email    string
	ImageURL string
}

// ToUser 根据身份信息构造一个待 upsert 的 User。
func (i Identity) ToUser() *User {
	name := i.Name
	if name == "" {
		name = "Unknown"
	}
	return &User{
		ID:       i.UserID,
		Name:     name,
		Email:    i.Email,
		ImageURL: i.ImageURL,
	}
}
