package service

import "context"

// EventNotifier 把实时事件投递到 topic。
// 投递是 fire-and-forget 的：实现自行记录失败，不向业务操作返回错误。
type EventNotifier interface {
	Notify(ctx context.Context, topic, event string, payload interface{})
}
