package bus

import (
	"context"
	"errors"
	"sync/atomic"
)

// ErrBusClosed is returned when publishing to a closed EventBus.
var ErrBusClosed = errors.New("event bus closed")

// EventBus decouples webhook dispatch from reply sending: the webhook side
// publishes classified events, a worker consumes them and queues sends. This
// keeps the acknowledge-then-process contract intact under load.
type EventBus struct {
	inbound  chan InboundEvent
	outbound chan OutboundSend
	done     chan struct{}
	closed   atomic.Bool
}

func NewEventBus() *EventBus {
	return &EventBus{
		inbound:  make(chan InboundEvent, 100),
		outbound: make(chan OutboundSend, 100),
		done:     make(chan struct{}),
	}
}

func (b *EventBus) PublishInbound(ctx context.Context, ev InboundEvent) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	select {
	case b.inbound <- ev:
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *EventBus) ConsumeInbound(ctx context.Context) (InboundEvent, bool) {
	select {
	case ev, ok := <-b.inbound:
		return ev, ok
	case <-b.done:
		return InboundEvent{}, false
	case <-ctx.Done():
		return InboundEvent{}, false
	}
}

func (b *EventBus) PublishOutbound(ctx context.Context, s OutboundSend) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	select {
	case b.outbound <- s:
		return nil
	case <-b.done:
		return ErrBusClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *EventBus) ConsumeOutbound(ctx context.Context) (OutboundSend, bool) {
	select {
	case s, ok := <-b.outbound:
		return s, ok
	case <-b.done:
		return OutboundSend{}, false
	case <-ctx.Done():
		return OutboundSend{}, false
	}
}

func (b *EventBus) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.done)
	}
}
