package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"chatgenius/internal/infra/setup"
	miniostorage "chatgenius/internal/infra/storage/minio"
)

// Config 结构体用于存储从环境变量或配置文件加载的配置
type Config struct {
	AppEnv     string
	ServerPort string
	LogLevel   string
	AppURL     string

	DB setup.DBConfig

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	KeyPrefix     string // Redis Key 前缀

	JWTSecret string
	JWTIssuer string

	CORSAllowedOrigin string
	RateLimitMax      int
	RateLimitWindow   time.Duration

	Storage        miniostorage.Config
	UploadMaxBytes int64

	KafkaBrokers string // 逗号分隔，为空时不启用 Kafka 导出
	KafkaTopic   string

	InviteSweepSchedule string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_URL", "http://localhost:3000")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_NAME", "chatgenius")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "cg:")
	v.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", "1s")
	v.SetDefault("STORAGE_ENDPOINT", "127.0.0.1:9000")
	v.SetDefault("STORAGE_BUCKET", "chatgenius")
	v.SetDefault("STORAGE_USE_SSL", false)
	v.SetDefault("UPLOAD_MAX_BYTES", 10<<20)
	v.SetDefault("KAFKA_TOPIC", "chatgenius.events")
	v.SetDefault("INVITE_SWEEP_SCHEDULE", "@every 1h")
}

// LoadConfig 依次读取 .env、可选的 CONFIG_FILE 和环境变量，环境变量优先
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // 忽略错误，允许只使用环境变量

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := v.GetString("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return configFrom(v)
}

func configFrom(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppEnv:     v.GetString("APP_ENV"),
		ServerPort: v.GetString("SERVER_PORT"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		AppURL:     strings.TrimRight(v.GetString("APP_URL"), "/"),
		DB: setup.DBConfig{
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
		},
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		KeyPrefix:         v.GetString("REDIS_KEY_PREFIX"),
		JWTSecret:         v.GetString("AUTH_JWT_SECRET"),
		JWTIssuer:         v.GetString("AUTH_JWT_ISSUER"),
		CORSAllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
		RateLimitMax:      v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:   v.GetDuration("RATE_LIMIT_WINDOW"),
		Storage: miniostorage.Config{
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			PublicURL: v.GetString("STORAGE_PUBLIC_URL"),
		},
		UploadMaxBytes:      v.GetInt64("UPLOAD_MAX_BYTES"),
		KafkaBrokers:        v.GetString("KAFKA_BROKERS"),
		KafkaTopic:          v.GetString("KAFKA_TOPIC"),
		InviteSweepSchedule: v.GetString("INVITE_SWEEP_SCHEDULE"),
	}

	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable AUTH_JWT_SECRET must be set")
	}
	if cfg.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", cfg.RateLimitMax)
	}
	if cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_WINDOW must be a positive duration")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	return cfg, nil
}
