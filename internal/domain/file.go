package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// File 记录一个已上传到对象存储的文件。
type File struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	URL          string    `gorm:"type:varchar(1024);not null" json:"url"`
	ObjectKey    string    `gorm:"type:varchar(512);not null" json:"objectKey"`
	Size         int64     `gorm:"not null" json:"size"`
	ContentType  string    `gorm:"type:varchar(127)" json:"contentType"`
	ChannelID    *string   `gorm:"type:varchar(36);index" json:"channelId"` // 未关联频道的上传为 nil
	UploadedByID string    `gorm:"type:varchar(191);not null;index" json:"uploadedById"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (f *File) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
