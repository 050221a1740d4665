package relay

import (
	"context"
	"errors"
)

// Publisher 是实时事件后端 (Redis pub/sub、Kafka 等)
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// Fanout 把事件发布到所有后端，返回合并后的错误
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, evt Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
