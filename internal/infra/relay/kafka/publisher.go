// Package kafkarelay 把实时事件同时写入 Kafka，供下游消费者 (通知、搜索索引等) 使用。
package kafkarelay

import (
	"context"
	"fmt"
	"strings"
	"time"

	k "github.com/segmentio/kafka-go"

	"chatgenius/internal/relay"
)

// Publisher 以 topic 为消息 key 写入单个 Kafka topic，保证同一频道内有序
type Publisher struct {
	w *k.Writer
}

// NewPublisher brokers 为逗号分隔的地址列表
func NewPublisher(brokers, topic string) (*Publisher, error) {
	addrs := splitBrokers(brokers)
	if len(addrs) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka: topic is required")
	}
	w := &k.Writer{
		Addr:         k.TCP(addrs...),
		Topic:        topic,
		Balancer:     &k.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: k.RequireOne,
		Async:        true,
	}
	return &Publisher{w: w}, nil
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Publish 实现 relay.Publisher
func (p *Publisher) Publish(ctx context.Context, evt relay.Event) error {
	value, err := evt.Encode()
	if err != nil {
		return err
	}
	err = p.w.WriteMessages(ctx, k.Message{
		Key:   []byte(evt.Topic),
		Value: value,
		Time:  evt.SentAt,
	})
	if err != nil {
		return fmt.Errorf("kafka: write %s for %s: %w", evt.Event, evt.Topic, err)
	}
	return nil
}

func (p *Publisher) Close() error { return p.w.Close() }
