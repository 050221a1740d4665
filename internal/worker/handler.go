package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"chatgenius/internal/metrics"
	"chatgenius/internal/service"
	"chatgenius/internal/tasks"
)

// taskLogger 返回带任务 ID、类型和重试信息的日志条目
func taskLogger(ctx context.Context, t *asynq.Task) *logrus.Entry {
	taskID := ""
	if rw := t.ResultWriter(); rw != nil {
		taskID = rw.TaskID()
	}
	currentRetry, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	return logrus.WithFields(logrus.Fields{
		"task_id":   taskID,
		"task_type": t.Type(),
		"retry":     currentRetry,
		"max_retry": maxRetry,
	})
}

// InviteSweeper 是过期清理任务依赖的最小接口 (由 service.InviteService 实现)
type InviteSweeper interface {
	ExpirePending(ctx context.Context) (int64, error)
}

// InviteExpiryHandler 把过期的 PENDING 邀请标记为 EXPIRED
type InviteExpiryHandler struct {
	sweeper InviteSweeper
}

// NewInviteExpiryHandler 创建 Handler 实例
func NewInviteExpiryHandler(sweeper InviteSweeper) *InviteExpiryHandler {
	if sweeper == nil {
		panic("InviteSweeper cannot be nil for InviteExpiryHandler")
	}
	return &InviteExpiryHandler{sweeper: sweeper}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *InviteExpiryHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	var payload tasks.InviteExpirySweepPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			logCtx.WithError(err).Error("Failed to unmarshal task payload")
			return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
		}
	}

	n, err := h.sweeper.ExpirePending(ctx)
	if err != nil {
		logCtx.WithError(err).Error("Invite expiry sweep failed")
		return fmt.Errorf("expire pending invites: %w", err)
	}
	metrics.InvitesExpired.Add(float64(n))
	logCtx.WithFields(logrus.Fields{"expired": n, "scheduled_at": payload.ScheduledAt}).Info("Invite expiry sweep completed")
	return nil
}

// BlobRemoveHandler 删除上传失败后遗留在对象存储中的对象
type BlobRemoveHandler struct {
	blobs service.BlobStore
}

// NewBlobRemoveHandler 创建 Handler 实例
func NewBlobRemoveHandler(blobs service.BlobStore) *BlobRemoveHandler {
	if blobs == nil {
		panic("BlobStore cannot be nil for BlobRemoveHandler")
	}
	return &BlobRemoveHandler{blobs: blobs}
}

// ProcessTask 实现 asynq.Handler 接口
func (h *BlobRemoveHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := taskLogger(ctx, t)

	var payload tasks.BlobRemovePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil || payload.Key == "" {
		logCtx.WithError(err).Error("Invalid blob remove payload")
		return fmt.Errorf("invalid blob remove payload: %w", asynq.SkipRetry)
	}
	if err := h.blobs.Remove(ctx, payload.Key); err != nil {
		logCtx.WithError(err).WithField("key", payload.Key).Warn("Failed to remove blob, will retry")
		return err
	}
	logCtx.WithField("key", payload.Key).Info("Orphaned blob removed")
	return nil
}
