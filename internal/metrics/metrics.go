// Package metrics 定义服务暴露的 Prometheus 指标。
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests 按路由和状态码统计请求数
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chatgenius",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration 请求耗时
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chatgenius",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// RelayPublished 事件投递结果，result 为 ok 或 error
	RelayPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chatgenius",
		Name:      "relay_events_published_total",
		Help:      "Real-time events handed to the relay, by event name and result.",
	}, []string{"event", "result"})

	// HubClients 当前在线的 websocket 订阅者
	HubClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "chatgenius",
		Name:      "hub_clients",
		Help:      "Currently connected websocket subscribers.",
	})

	// HubDropped 因订阅者发送队列已满而丢弃的事件
	HubDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chatgenius",
		Name:      "hub_events_dropped_total",
		Help:      "Events dropped because a subscriber's send queue was full.",
	})

	// InvitesExpired 后台任务标记为过期的邀请数
	InvitesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "chatgenius",
		Name:      "invites_expired_total",
		Help:      "Pending invites marked EXPIRED by the sweep task.",
	})
)
