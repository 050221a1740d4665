package hub

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Client 代表一个订阅了某个 topic 的 WebSocket 连接。
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	topic  string      // 订阅的 topic，例如 channel-<id>
	userID string      // 订阅者身份，仅用于日志
	send   chan []byte // 发往此连接的缓冲通道，由 Hub 关闭
}

// NewClient 创建一个新的 Client 实例
func NewClient(hub *Hub, conn *websocket.Conn, topic string, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		topic:  topic,
		userID: userID,
		send:   make(chan []byte, sendQueueSize),
	}
}

// Run 启动客户端的读写 goroutine
func (c *Client) Run() {
	go c.WritePump()
	go c.ReadPump()
}

func (c *Client) logCtx() *logrus.Entry {
	return logrus.WithFields(logrus.Fields{"user_id": c.userID, "topic": c.topic})
}

// ReadPump 只负责保活和感知断开；订阅者发来的数据帧被丢弃。
func (c *Client) ReadPump() {
	defer func() {
		// 阻塞注销，Hub 主队列积压时也不会遗漏
		c.hub.Unregister(c)
		c.conn.Close()
		c.logCtx().Info("readPump exited, unregistered client")
	}()

	// 设置读限制和超时，收到 Pong 时顺延读超时
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// 循环读取直到连接断开或超时
	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logCtx().WithError(err).Warn("WebSocket read error (unexpected close)")
			} else {
				c.logCtx().Debug("WebSocket connection closed normally or read error")
			}
			break
		}
		// 订阅连接只读事件，客户端发来的数据帧忽略
		c.logCtx().Debugf("Ignoring inbound subscriber message (size: %d)", len(message))
	}
}

// WritePump 将 send 通道中的事件写入 WebSocket 连接，并定期发送 Ping。
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.logCtx().Info("writePump exited")
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub 在注销时关闭了 send 通道
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// 每个事件单独一帧，客户端按 JSON 解析
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logCtx().WithError(err).Warn("Failed to write message to websocket")
				return
			}
			_ = c.conn.SetWriteDeadline(time.Time{})

		case <-ticker.C:
			// 定期 Ping，对端无响应时 ReadPump 超时退出
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logCtx().WithError(err).Warn("Failed to send ping message")
				return
			}
			_ = c.conn.SetWriteDeadline(time.Time{})
		}
	}
}

func (c *Client) Topic() string  { return c.topic }
func (c *Client) UserID() string { return c.userID }
func (c *Client) CloseConn()     { c.conn.Close() }

// Register 请求 Hub 注册此客户端
func (c *Client) Register() bool {
	return c.hub.QueueMessage(HubMessage{Type: msgRegister, Topic: c.topic, Client: c})
}
