package messaging

import (
	"context"
	"log/slog"
	"sync"
)

// Bus carries fire-and-forget messages between workers.
type Bus interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, handler func(data []byte)) (func(), error)
	Ready() <-chan struct{}
}

// LocalBus is an in-process Bus for single-player runs. Messages are
// delivered in publish order by one dispatch goroutine; when its queue is
// full new messages are dropped.
type LocalBus struct {
	queue chan localMsg
	ready chan struct{}

	mu       sync.RWMutex
	handlers map[string]map[int]func([]byte)
	nextId   int
}

type localMsg struct {
	subject string
	data    []byte
}

var _ Bus = (*LocalBus)(nil)

// NewLocalBus creates a bus with room for size queued messages.
func NewLocalBus(size int) *LocalBus {
	b := &LocalBus{
		queue:    make(chan localMsg, size),
		ready:    make(chan struct{}),
		handlers: map[string]map[int]func([]byte){},
	}
	close(b.ready)
	return b
}

// Start delivers queued messages until ctx is cancelled, then drains what is
// left.
func (b *LocalBus) Start(ctx context.Context) error {
	for {
		select {
		case msg := <-b.queue:
			b.deliver(msg)
		case <-ctx.Done():
			for {
				select {
				case msg := <-b.queue:
					b.deliver(msg)
				default:
					return nil
				}
			}
		}
	}
}

func (b *LocalBus) deliver(msg localMsg) {
	b.mu.RLock()
	var hs []func([]byte)
	for _, h := range b.handlers[msg.subject] {
		hs = append(hs, h)
	}
	b.mu.RUnlock()

	for _, h := range hs {
		h(msg.data)
	}
}

func (b *LocalBus) Ready() <-chan struct{} {
	return b.ready
}

func (b *LocalBus) Publish(subject string, data []byte) error {
	select {
	case b.queue <- localMsg{subject: subject, data: data}:
	default:
		slog.Warn("local bus full, dropping message", "subject", subject)
	}
	return nil
}

func (b *LocalBus) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextId
	b.nextId++
	if b.handlers[subject] == nil {
		b.handlers[subject] = map[int]func([]byte){}
	}
	b.handlers[subject][id] = handler

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[subject], id)
	}, nil
}

// HasSubscribers reports whether anything is subscribed to subject.
func (b *LocalBus) HasSubscribers(subject string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[subject]) > 0
}
