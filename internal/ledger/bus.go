package ledger

import (
	"sync"

	"github.com/zigam/sejem/internal/model"
)

// Bus fans lifecycle events out to in-process subscribers. Publishing never
// blocks: a subscriber that falls behind its channel buffer misses events
// rather than stalling the ledger. The persisted events table remains the
// complete record.
type Bus struct {
	mu   sync.Mutex
	subs map[int]chan model.Event
	next int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan model.Event)}
}

// Subscribe registers a new subscriber and returns its channel along with a
// cancel function. The channel is closed on cancel.
func (b *Bus) Subscribe() (<-chan model.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan model.Event, 16)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// publish delivers an event to all current subscribers.
func (b *Bus) publish(e model.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
