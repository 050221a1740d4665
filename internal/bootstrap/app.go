package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "chatgenius/internal/handler/http"
	wsHandler "chatgenius/internal/handler/websocket"
	"chatgenius/internal/hub"
	gormpersistence "chatgenius/internal/infra/persistence/gorm"
	kafkarelay "chatgenius/internal/infra/relay/kafka"
	redisrelay "chatgenius/internal/infra/relay/redis"
	"chatgenius/internal/infra/setup"
	miniostorage "chatgenius/internal/infra/storage/minio"
	"chatgenius/internal/relay"
	"chatgenius/internal/service"
	"chatgenius/internal/tasks"
	"chatgenius/internal/worker"
)

// App 结构体包含应用的所有组件和配置
type App struct {
	Config         *Config
	Log            *logrus.Logger
	DB             *gorm.DB
	RedisClient    *redis.Client
	AsynqClient    *asynq.Client
	AsynqServer    *worker.WorkerServer
	Hub            *hub.Hub
	HttpServer     *http.Server
	redisClientOpt asynq.RedisClientOpt
	scheduler      *asynq.Scheduler
	kafka          *kafkarelay.Publisher
}

func newLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	logLevel, _ := logrus.ParseLevel(cfg.LogLevel) // LoadConfig 已校验
	log.SetLevel(logLevel)
	log.SetOutput(os.Stdout)

	// 服务层使用 logrus 包级 logger，保持与 App logger 一致
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(logLevel)
	return log
}

// NewApp 创建并初始化应用的所有组件
func NewApp() (*App, error) {
	// 1. 加载配置
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	// 2. 初始化 Logger
	log := newLogger(cfg)
	log.Infof("Logger initialized (Level: %s, Format: %T)", log.GetLevel().String(), log.Formatter)

	// 3. 初始化基础设施
	log.Info("Initializing infrastructure...")
	db, err := setup.InitDB(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database initialized and migrated")

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis client initialized")

	redisClientOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	asynqClient := asynq.NewClient(redisClientOpt)

	blobs, err := miniostorage.New(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to init object storage: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := blobs.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure storage bucket: %w", err)
	}
	log.WithField("bucket", cfg.Storage.Bucket).Info("Object storage initialized")

	// 4. 实时事件后端：Redis pub/sub 必选，Kafka 可选
	publishers := relay.Fanout{redisrelay.NewPublisher(redisClient, cfg.KeyPrefix)}
	var kafkaPub *kafkarelay.Publisher
	if cfg.KafkaBrokers != "" {
		kafkaPub, err = kafkarelay.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("failed to init Kafka publisher: %w", err)
		}
		publishers = append(publishers, kafkaPub)
		log.WithField("topic", cfg.KafkaTopic).Info("Kafka event export enabled")
	}
	notifier := relay.NewNotifier(publishers)
	log.Info("Infrastructure initialized successfully")

	// 5. 初始化 Repositories
	userRepo := gormpersistence.NewGormUserRepository(db)
	workspaceRepo := gormpersistence.NewGormWorkspaceRepository(db)
	memberRepo := gormpersistence.NewGormMemberRepository(db)
	channelRepo := gormpersistence.NewGormChannelRepository(db)
	messageRepo := gormpersistence.NewGormMessageRepository(db)
	reactionRepo := gormpersistence.NewGormReactionRepository(db)
	inviteRepo := gormpersistence.NewGormInviteRepository(db)
	fileRepo := gormpersistence.NewGormFileRepository(db)
	txRunner := gormpersistence.NewGormTxRunner(db)
	log.Info("Repositories initialized")

	// 6. 初始化 Services
	gate := service.NewGate(memberRepo, channelRepo)
	userService := service.NewUserService(userRepo)
	workspaceService := service.NewWorkspaceService(workspaceRepo, memberRepo, txRunner, gate, cfg.AppURL)
	channelService := service.NewChannelService(channelRepo, txRunner, gate)
	messageService := service.NewMessageService(messageRepo, userRepo, gate, notifier)
	reactionService := service.NewReactionService(reactionRepo, messageRepo, gate, notifier)
	inviteService := service.NewInviteService(inviteRepo, memberRepo, txRunner, gate)
	fileService := service.NewFileService(fileRepo, blobs, gate, cfg.UploadMaxBytes).
		WithCleanupQueue(worker.NewTaskEnqueuer(asynqClient))
	log.Info("Services initialized")

	// 7. 初始化 Hub
	hubInstance := hub.NewHub()

	// 8. 初始化 Handlers 和路由
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := NewRouter(cfg, log, redisClient, Handlers{
		User:      httpHandler.NewUserHandler(userService),
		Workspace: httpHandler.NewWorkspaceHandler(workspaceService),
		Channel:   httpHandler.NewChannelHandler(channelService),
		Message:   httpHandler.NewMessageHandler(messageService, reactionService),
		Invite:    httpHandler.NewInviteHandler(inviteService),
		File:      httpHandler.NewFileHandler(fileService),
		WS:        wsHandler.NewWebSocketHandler(hubInstance, gate, cfg.CORSAllowedOrigin),
	})
	log.Info("Router setup complete")

	// 9. 初始化 Worker Server
	workerServer := worker.NewWorkerServer(redisClientOpt, inviteService, blobs, log)

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config:         cfg,
		Log:            log,
		DB:             db,
		RedisClient:    redisClient,
		AsynqClient:    asynqClient,
		AsynqServer:    workerServer,
		Hub:            hubInstance,
		HttpServer:     httpServer,
		redisClientOpt: redisClientOpt,
		kafka:          kafkaPub,
	}, nil
}

// Start 启动应用的所有后台 Goroutine 和 HTTP 服务器
func (a *App) Start() {
	a.Log.Info("Starting application background routines...")
	go a.Hub.Run()
	if err := a.Hub.StartRedisSubscription(a.RedisClient, a.Config.KeyPrefix); err != nil {
		a.Log.Fatalf("Failed to subscribe hub to relay: %v", err)
	}

	go a.AsynqServer.Start()
	a.registerPeriodicTasks()

	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

func (a *App) registerPeriodicTasks() {
	scheduler := asynq.NewScheduler(a.redisClientOpt, &asynq.SchedulerOpts{Location: time.UTC})

	payload, err := tasks.NewInviteExpirySweepTask(time.Now())
	if err != nil {
		a.Log.Errorf("Failed to create invite expiry sweep payload: %v", err)
		return
	}
	task := asynq.NewTask(tasks.TypeInviteExpirySweep, payload)

	schedule := a.Config.InviteSweepSchedule
	entryID, err := scheduler.Register(schedule, task, asynq.Queue("low"))
	if err != nil {
		a.Log.Errorf("Could not register invite expiry sweep: %v", err)
		return
	}
	a.Log.Infof("Invite expiry sweep registered with schedule '%s' (EntryID: %s)", schedule, entryID)
	// Start 不监听信号，由 Shutdown 负责停止
	if err := scheduler.Start(); err != nil {
		a.Log.Errorf("Asynq scheduler failed to start: %v", err)
		return
	}
	a.scheduler = scheduler
}

// Shutdown 优雅地关闭应用
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	if a.Hub != nil {
		a.Hub.StopAllSubscriptions()
	}
	if a.scheduler != nil {
		a.scheduler.Shutdown()
	}
	if a.AsynqServer != nil {
		a.AsynqServer.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.kafka != nil {
		if err := a.kafka.Close(); err != nil {
			a.Log.Errorf("Error closing Kafka writer: %v", err)
		}
	}
	if a.AsynqClient != nil {
		if err := a.AsynqClient.Close(); err != nil {
			a.Log.Errorf("Error closing Asynq client: %v", err)
		}
	}
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete.")
}
