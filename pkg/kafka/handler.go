package kafka

import "context"

// Handler processes one delivered message. A returned error means the record
// was not persisted; the consumer decides what happens to the offset.
type Handler interface {
	Handle(ctx context.Context, key string, value []byte) error
}

type HandlerFunc func(ctx context.Context, key string, value []byte) error

func (f HandlerFunc) Handle(ctx context.Context, key string, value []byte) error {
	return f(ctx, key, value)
}
