package relay_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgenius/internal/relay"
)

type fakePublisher struct {
	mu     sync.Mutex
	err    error
	events []relay.Event
	ctxErr error
}

func (p *fakePublisher) Publish(ctx context.Context, evt relay.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	p.ctxErr = ctx.Err()
	return p.err
}

func TestEvent_EncodeDecode(t *testing.T) {
	evt, err := relay.NewEvent("channel-1", "new-message", map[string]string{"content": "hello"})
	require.NoError(t, err)
	assert.False(t, evt.SentAt.IsZero())

	raw, err := evt.Encode()
	require.NoError(t, err)

	got, err := relay.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, "channel-1", got.Topic)
	assert.Equal(t, "new-message", got.Event)
	assert.JSONEq(t, `{"content":"hello"}`, string(got.Data))
}

func TestDecode_Invalid(t *testing.T) {
	cases := map[string]string{
		"not json":      `{"topic":`,
		"missing topic": `{"topic":"  ","event":"new-message","data":{}}`,
		"missing event": `{"topic":"channel-1","data":{}}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := relay.Decode([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestNewEvent_UnmarshalablePayload(t *testing.T) {
	_, err := relay.NewEvent("channel-1", "new-message", make(chan int))
	assert.Error(t, err)
}

func TestFanout_PublishesToAllAndJoinsErrors(t *testing.T) {
	ok := &fakePublisher{}
	failing := &fakePublisher{err: errors.New("broker down")}
	fanout := relay.Fanout{ok, nil, failing}

	evt, err := relay.NewEvent("channel-1", "new-reaction", nil)
	require.NoError(t, err)

	err = fanout.Publish(context.Background(), evt)
	assert.ErrorContains(t, err, "broker down")
	assert.Len(t, ok.events, 1)
	assert.Len(t, failing.events, 1)
}

func TestNotifier_Notify(t *testing.T) {
	pub := &fakePublisher{}
	n := relay.NewNotifier(pub)

	// 请求 context 已取消，事件仍然投递
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n.Notify(ctx, "channel-1", "message-read", map[string]string{"messageId": "m-1"})

	require.Len(t, pub.events, 1)
	assert.NoError(t, pub.ctxErr)
	assert.Equal(t, "channel-1", pub.events[0].Topic)

	var data map[string]string
	require.NoError(t, json.Unmarshal(pub.events[0].Data, &data))
	assert.Equal(t, "m-1", data["messageId"])
}

func TestNotifier_SwallowsErrors(t *testing.T) {
	pub := &fakePublisher{err: errors.New("publish failed")}
	n := relay.NewNotifier(pub)

	assert.NotPanics(t, func() {
		n.Notify(context.Background(), "channel-1", "new-message", nil)
		n.Notify(context.Background(), "channel-1", "new-message", make(chan int))
	})
	// 载荷无法序列化时不会调用后端
	assert.Len(t, pub.events, 1)
}
