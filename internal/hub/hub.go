package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"chatgenius/internal/metrics"
	redisrelay "chatgenius/internal/infra/relay/redis"
	"chatgenius/internal/relay"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// 包级别的 WebSocket 常量，供 hub 和 client 使用
const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// 订阅者只发送控制帧，消息体很小
	maxMessageSize = 512

	// 每个订阅者的发送队列长度，满了之后新事件对该订阅者丢弃
	sendQueueSize = 256

	// Hub 主队列长度 (注册与事件共用)
	hubQueueSize = 512
)

// 内部消息类型。注销不走主队列，见 Hub.unregister
const (
	msgRegister = "register"
	msgEvent    = "event"
)

// HubMessage 定义了在 Hub 内部通道传递的消息
type HubMessage struct {
	Type   string  // register / event
	Topic  string  // 事件所属 topic
	Client *Client // 仅用于 register
	Data   []byte  // 仅用于 event (编码后的事件信封)
}

// Hub 维护 topic -> 订阅者集合，把中继收到的事件推送给对应订阅者。
// 不做缓冲与回放：没有订阅者的 topic 上的事件直接丢弃。
type Hub struct {
	// 注册与事件的主队列，满时 QueueMessage 直接丢弃
	messageChan chan HubMessage
	// 注销专用通道，发送方阻塞等待，保证断开的连接一定被移除
	unregister  chan *Client
	// Run 退出时关闭，用于释放阻塞在 Unregister 上的协程
	done        chan struct{}

	// map[topic]map[*Client]bool，只在 Run 协程中修改
	topics   map[string]map[*Client]bool
	topicsMu sync.RWMutex

	// 中继订阅句柄，由 subMu 保护
	subMu  sync.Mutex
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// NewHub 创建并返回一个新的 Hub 实例
func NewHub() *Hub {
	return &Hub{
		messageChan: make(chan HubMessage, hubQueueSize),
		unregister:  make(chan *Client),
		done:        make(chan struct{}),
		topics:      make(map[string]map[*Client]bool),
	}
}

// Run 启动 Hub 的主事件循环，应在单独的 goroutine 中运行。
// 注册、注销与广播都在此协程内串行执行，因此关闭 send 通道与发送不会竞争。
func (h *Hub) Run() {
	log := logrus.WithField("component", "hub")
	log.Info("Hub is running...")
	defer close(h.done)

	for {
		select {
		case client := <-h.unregister:
			// 注销独立于主队列，事件积压时也能及时移除断开的连接
			h.unregisterClient(client)
		case msg, ok := <-h.messageChan:
			if !ok {
				log.Info("Hub is shutting down...")
				return
			}
			switch msg.Type {
			case msgRegister:
				h.registerClient(msg.Client)
			case msgEvent:
				h.broadcast(msg.Topic, msg.Data)
			default:
				log.Warnf("Hub: Received unknown message type: %s", msg.Type)
			}
		}
	}
}

// Unregister 阻塞直到 Run 协程接收注销请求；Hub 已停止时立即返回
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) registerClient(client *Client) {
	if client == nil {
		logrus.Error("Hub: Attempted to register a nil client")
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"topic": client.Topic(), "user_id": client.UserID()})

	// 首个订阅者到来时创建 topic 的集合
	h.topicsMu.Lock()
	if _, ok := h.topics[client.topic]; !ok {
		h.topics[client.topic] = make(map[*Client]bool)
	}
	h.topics[client.topic][client] = true
	h.topicsMu.Unlock()
	metrics.HubClients.Inc()

	// 订阅确认同样非阻塞发送，队列刚创建不会满
	ack, _ := json.Marshal(map[string]string{"event": "subscribed", "topic": client.topic})
	select {
	case client.send <- ack:
	default:
		logCtx.Warn("Client send channel full when sending subscribe ack")
	}
	logCtx.Info("Client subscribed")
}

func (h *Hub) unregisterClient(client *Client) {
	if client == nil {
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"topic": client.Topic(), "user_id": client.UserID()})

	h.topicsMu.Lock()
	defer h.topicsMu.Unlock()
	// 重复注销 (例如读写两端先后退出) 直接忽略，避免重复 close
	clients, ok := h.topics[client.topic]
	if !ok || !clients[client] {
		logCtx.Debug("Client already unregistered")
		return
	}
	delete(clients, client)
	close(client.send) // WritePump 读到关闭后发送 Close 帧并退出
	metrics.HubClients.Dec()
	// 最后一个订阅者离开时回收 topic
	if len(clients) == 0 {
		delete(h.topics, client.topic)
	}
	logCtx.Info("Client unsubscribed")
}

// broadcast 非阻塞地把事件推给 topic 的所有订阅者，发送队列已满的订阅者跳过
func (h *Hub) broadcast(topic string, data []byte) {
	// 复制一份接收者列表，发送时不持有锁
	h.topicsMu.RLock()
	recipients := make([]*Client, 0, len(h.topics[topic]))
	for c := range h.topics[topic] {
		recipients = append(recipients, c)
	}
	h.topicsMu.RUnlock()

	if len(recipients) == 0 {
		return
	}
	logCtx := logrus.WithFields(logrus.Fields{"topic": topic, "recipient_count": len(recipients)})
	logCtx.Debug("Broadcasting event to subscribers")

	for _, c := range recipients {
		select {
		case c.send <- data:
		default:
			// 慢消费者只丢自己的这条事件，不影响其它订阅者
			metrics.HubDropped.Inc()
			logCtx.WithField("receiver_user_id", c.UserID()).Warn("Client send channel full, event dropped for this client")
		}
	}
}

// QueueMessage 将消息放入 Hub 的处理队列 (非阻塞)，队列已满时返回 false
func (h *Hub) QueueMessage(msg HubMessage) bool {
	select {
	case h.messageChan <- msg:
		return true
	default:
		logrus.WithFields(logrus.Fields{"message_type": msg.Type, "topic": msg.Topic}).
			Warn("Hub message channel full, dropping message")
		return false
	}
}

// Deliver 解码一条中继事件并排入广播队列
func (h *Hub) Deliver(raw []byte) bool {
	evt, err := relay.Decode(raw)
	if err != nil {
		logrus.WithError(err).Warn("Hub: discarding malformed relay event")
		return false
	}
	return h.QueueMessage(HubMessage{Type: msgEvent, Topic: evt.Topic, Data: raw})
}

// SubscriberCount 返回 topic 当前的订阅者数量
func (h *Hub) SubscriberCount(topic string) int {
	h.topicsMu.RLock()
	defer h.topicsMu.RUnlock()
	return len(h.topics[topic])
}

// StartRedisSubscription 以 PSUBSCRIBE 订阅全部频道 topic，把收到的事件交给 Deliver
func (h *Hub) StartRedisSubscription(client *redis.Client, keyPrefix string) error {
	ctx, cancel := context.WithCancel(context.Background())
	pattern := redisrelay.Pattern(keyPrefix)
	pubsub := client.PSubscribe(ctx, pattern)
	// 等待订阅确认，连接失败时让启动流程感知到
	if _, err := pubsub.Receive(ctx); err != nil {
		cancel()
		_ = pubsub.Close()
		return err
	}

	h.subMu.Lock()
	h.pubsub = pubsub
	h.cancel = cancel
	h.subMu.Unlock()

	log := logrus.WithFields(logrus.Fields{"component": "hub", "pattern": pattern})
	log.Info("Hub subscribed to relay")
	// pubsub.Close 后 Channel 关闭，协程随之退出
	go func() {
		for m := range pubsub.Channel() {
			h.Deliver([]byte(m.Payload))
		}
		log.Info("Hub relay subscription closed")
	}()
	return nil
}

// StopAllSubscriptions 关闭中继订阅
func (h *Hub) StopAllSubscriptions() {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
	if h.pubsub != nil {
		if err := h.pubsub.Close(); err != nil {
			logrus.WithError(err).Warn("Hub: error closing relay subscription")
		}
		h.pubsub = nil
	}
}
