package worker

import (
	"context"
	"errors"
	"net/http"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"chatgenius/internal/service"
	"chatgenius/internal/tasks"
)

// WorkerServer 封装了 Asynq Worker Server 的启动和关闭逻辑
type WorkerServer struct {
	server  *asynq.Server
	log     *logrus.Entry
	sweeper InviteSweeper     // 邀请过期清理依赖
	blobs   service.BlobStore // 附件对象删除依赖
}

// NewWorkerServer 创建一个新的 WorkerServer 实例
func NewWorkerServer(redisOpt asynq.RedisClientOpt, sweeper InviteSweeper, blobs service.BlobStore, logger *logrus.Logger) *WorkerServer {
	logEntry := logger.WithField("component", "worker_server")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			// 同时处理任务的最大 goroutine 数
			Concurrency: 10,
			// 队列优先级权重，数值越大越优先
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1, // 过期清理与对象删除都在 low 队列
			},
			// 任务最终失败 (或每次重试失败) 时记录日志
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				// 获取任务 ID 和重试信息用于排查
				taskID := ""
				if rw := task.ResultWriter(); rw != nil {
					taskID = rw.TaskID()
				}
				retryCount, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logEntry.WithFields(logrus.Fields{
					"task_id":   taskID,
					"task_type": task.Type(),
					"retries":   retryCount,
					"max_retry": maxRetry,
				}).Errorf("Task failed: %v", err)
			}),
		},
	)

	return &WorkerServer{
		server:  server,
		log:     logEntry,
		sweeper: sweeper,
		blobs:   blobs,
	}
}

// NewServeMux 注册全部任务处理器
func NewServeMux(sweeper InviteSweeper, blobs service.BlobStore) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	// 任务类型 -> 处理函数
	mux.HandleFunc(tasks.TypeInviteExpirySweep, NewInviteExpiryHandler(sweeper).ProcessTask)
	mux.HandleFunc(tasks.TypeBlobRemove, NewBlobRemoveHandler(blobs).ProcessTask)
	return mux
}

// Start 运行 Worker Server，应在单独的 goroutine 中调用
func (ws *WorkerServer) Start() {
	mux := NewServeMux(ws.sweeper, ws.blobs)

	ws.log.Info("Worker server starting...")
	// Run 阻塞直到收到退出信号或 Shutdown 被调用
	if err := ws.server.Run(mux); err != nil {
		// 正常关闭返回的错误不视为故障
		if !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, asynq.ErrServerClosed) {
			ws.log.Fatalf("Could not run worker server: %v", err)
		} else {
			ws.log.Info("Worker server stopped.")
		}
	}
}

// Shutdown 优雅地关闭 Worker Server
func (ws *WorkerServer) Shutdown() {
	ws.log.Info("Shutting down worker server...")
	// 停止拉取新任务，等待正在执行的任务完成
	ws.server.Shutdown()
	ws.log.Info("Worker server shut down complete.")
}
