package redisrelay

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"chatgenius/internal/relay"
)

// Publisher 通过 Redis PUBLISH 把事件投递到 "<prefix>relay:<topic>"
type Publisher struct {
	client    *redis.Client
	keyPrefix string
}

// NewPublisher 创建 Publisher 实例
func NewPublisher(client *redis.Client, keyPrefix string) *Publisher {
	if client == nil {
		panic("redis client cannot be nil for redis relay Publisher")
	}
	return &Publisher{client: client, keyPrefix: keyPrefix}
}

// ChannelName 返回 topic 对应的 Redis 频道名
func ChannelName(keyPrefix, topic string) string {
	return fmt.Sprintf("%srelay:%s", keyPrefix, topic)
}

// TopicFromChannel 从 Redis 频道名还原 topic
func TopicFromChannel(keyPrefix, channel string) string {
	return strings.TrimPrefix(channel, keyPrefix+"relay:")
}

// Pattern 返回订阅全部频道 topic 的 PSUBSCRIBE 模式
func Pattern(keyPrefix string) string {
	return ChannelName(keyPrefix, "channel-*")
}

// Publish 实现 relay.Publisher
func (p *Publisher) Publish(ctx context.Context, evt relay.Event) error {
	payload, err := evt.Encode()
	if err != nil {
		return err
	}
	channel := ChannelName(p.keyPrefix, evt.Topic)
	receivers, err := p.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("redis: publish %s to %s: %w", evt.Event, channel, err)
	}
	logrus.WithFields(logrus.Fields{
		"channel":   channel,
		"event":     evt.Event,
		"receivers": receivers,
	}).Debug("Redis relay: event published")
	return nil
}
