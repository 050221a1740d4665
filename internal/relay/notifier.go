package relay

import (
	"context"
	"time"

	"chatgenius/internal/metrics"

	"github.com/sirupsen/logrus"
)

const defaultPublishTimeout = 3 * time.Second

// Notifier 以 fire-and-forget 方式投递事件：失败只记录日志和指标，不返回给调用方。
type Notifier struct {
	pub     Publisher
	timeout time.Duration
}

// NewNotifier 创建 Notifier 实例
func NewNotifier(pub Publisher) *Notifier {
	if pub == nil {
		panic("Publisher cannot be nil for Notifier")
	}
	return &Notifier{pub: pub, timeout: defaultPublishTimeout}
}

// Notify 发布事件。使用脱离请求取消的 context，请求结束后事件仍会投递。
func (n *Notifier) Notify(ctx context.Context, topic, event string, payload interface{}) {
	logCtx := logrus.WithFields(logrus.Fields{"topic": topic, "event": event})

	evt, err := NewEvent(topic, event, payload)
	if err != nil {
		logCtx.WithError(err).Error("Relay: failed to build event")
		metrics.RelayPublished.WithLabelValues(event, "error").Inc()
		return
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()
	if err := n.pub.Publish(pubCtx, evt); err != nil {
		logCtx.WithError(err).Error("Relay: publish failed, event dropped")
		metrics.RelayPublished.WithLabelValues(event, "error").Inc()
		return
	}
	metrics.RelayPublished.WithLabelValues(event, "ok").Inc()
	logCtx.Debug("Relay: event published")
}
