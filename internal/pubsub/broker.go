package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultBufferSize = 64

// subscription is one buffered channel plus the hook that detaches it when
// its context ends.
type subscription[T any] struct {
	ch   chan Event[T]
	stop func() bool
}

// Broker fans events out to every live subscriber. Publishing never blocks:
// a subscriber whose buffer is full misses the event and the miss is counted.
type Broker[T any] struct {
	mu       sync.RWMutex
	subs     map[uint64]subscription[T]
	nextID   uint64
	isClosed bool

	buffer  int
	dropped atomic.Uint64
	now     func() time.Time
}

// NewBroker creates a broker whose subscribers buffer 64 events.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscribers buffer size events.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[uint64]subscription[T]),
		buffer: size,
		now:    time.Now,
	}
}

// Subscribe registers a subscriber for the lifetime of ctx. The channel is
// closed when ctx ends or the broker closes; after Close it comes back
// already closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event[T], b.buffer)
	if b.isClosed {
		close(ch)
		return ch
	}

	b.nextID++
	id := b.nextID
	b.subs[id] = subscription[T]{
		ch:   ch,
		stop: context.AfterFunc(ctx, func() { b.unsubscribe(id) }),
	}
	return ch
}

func (b *Broker[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub, ok := b.subs[id]
	if !ok {
		return
	}
	delete(b.subs, id)
	close(sub.ch)
}

// Publish stamps payload and offers it to every subscriber.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	event := Event[T]{Type: eventType, Payload: payload, Timestamp: b.now()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			b.dropped.Add(1)
		}
	}
}

// Close detaches and closes every subscriber. Later calls do nothing.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.isClosed {
		return
	}
	b.isClosed = true
	for id, sub := range b.subs {
		sub.stop()
		close(sub.ch)
		delete(b.subs, id)
	}
}

// Subscribers returns the number of attached subscribers.
func (b *Broker[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped because a subscriber's
// buffer was full.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}
