// Package relay 负责把业务事件投递到实时通道。
package relay

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Event 是在 topic 上传输的事件信封
type Event struct {
	Topic  string          `json:"topic"`
	Event  string          `json:"event"`
	Data   json.RawMessage `json:"data"`
	SentAt time.Time       `json:"sentAt"`
}

// NewEvent 序列化载荷并构造事件
func NewEvent(topic, event string, payload interface{}) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("relay: marshal %s payload: %w", event, err)
	}
	return Event{Topic: topic, Event: event, Data: data, SentAt: time.Now().UTC()}, nil
}

// Encode 事件编码为 JSON
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Decode 解码事件信封，topic 为空视为无效
func Decode(raw []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return Event{}, fmt.Errorf("relay: decode event: %w", err)
	}
	if strings.TrimSpace(e.Topic) == "" || e.Event == "" {
		return Event{}, fmt.Errorf("relay: event missing topic or name")
	}
	return e, nil
}
