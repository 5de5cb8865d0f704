// Package notify fans job change events out to live subscribers.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"repairdesk/internal/domain/entities"
	"repairdesk/internal/usecase/interfaces"
)

const subscriberBuffer = 64

// Broker is an in-process fan-out. A slow subscriber loses events rather
// than blocking publishers.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan entities.JobEvent
}

var (
	_ interfaces.IJobNotifier        = (*Broker)(nil)
	_ interfaces.IJobEventSubscriber = (*Broker)(nil)
)

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan entities.JobEvent)}
}

func (b *Broker) Publish(ctx context.Context, ev entities.JobEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			slog.WarnContext(ctx, "[notify] subscriber lagging, event dropped", "subscriber", id, "job_id", ev.JobID)
		}
	}
	return nil
}

func (b *Broker) Subscribe(ctx context.Context) (<-chan entities.JobEvent, func(), error) {
	ch := make(chan entities.JobEvent, subscriberBuffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	done := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(ch)
			b.mu.Unlock()
			close(done)
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-done:
		}
	}()
	return ch, cancel, nil
}

// Subscribers reports the number of open subscriptions.
func (b *Broker) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
