package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"chatgenius/internal/tasks"
)

// TaskEnqueuer 把后台清理任务投递到 asynq 队列
type TaskEnqueuer struct {
	client *asynq.Client
}

// NewTaskEnqueuer 创建 TaskEnqueuer 实例
func NewTaskEnqueuer(client *asynq.Client) *TaskEnqueuer {
	if client == nil {
		panic("asynq client cannot be nil for TaskEnqueuer")
	}
	return &TaskEnqueuer{client: client}
}

// EnqueueBlobRemoval 延迟一分钟在 low 队列中删除对象
func (e *TaskEnqueuer) EnqueueBlobRemoval(ctx context.Context, key string) error {
	payload, err := tasks.NewBlobRemoveTask(key)
	if err != nil {
		return err
	}
	task := asynq.NewTask(tasks.TypeBlobRemove, payload)
	if _, err := e.client.EnqueueContext(ctx, task,
		asynq.Queue("low"),
		asynq.ProcessIn(time.Minute),
		asynq.MaxRetry(5),
	); err != nil {
		return fmt.Errorf("enqueue blob removal for %s: %w", key, err)
	}
	return nil
}
