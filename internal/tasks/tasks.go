package tasks

import (
	"encoding/json"
	"fmt"
	"time"
)

// 任务类型常量
const (
	TypeInviteExpirySweep = "invite:expire_sweep" // 周期性过期邀请清理
	TypeBlobRemove        = "blob:remove"         // 删除孤儿对象
)

// InviteExpirySweepPayload 周期任务的载荷，只记录调度时间便于排查
type InviteExpirySweepPayload struct {
	ScheduledAt time.Time `json:"scheduled_at"`
}

// NewInviteExpirySweepTask 创建过期邀请清理任务的 payload
func NewInviteExpirySweepTask(at time.Time) ([]byte, error) {
	return json.Marshal(InviteExpirySweepPayload{ScheduledAt: at.UTC()})
}

// BlobRemovePayload 待删除对象的键
type BlobRemovePayload struct {
	Key string `json:"key"`
}

// NewBlobRemoveTask 创建删除对象任务的 payload
func NewBlobRemoveTask(key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("blob key cannot be empty")
	}
	return json.Marshal(BlobRemovePayload{Key: key})
}
