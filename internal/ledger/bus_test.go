package ledger

import (
	"testing"

	"github.com/zigam/sejem/internal/model"
)

func TestBusSubscribeAndCancel(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe()
	bus.publish(model.Event{ItemID: 1, Kind: model.EventListed})

	e := <-ch
	if e.ItemID != 1 || e.Kind != model.EventListed {
		t.Errorf("got %+v, want item 1 listed", e)
	}

	cancel()
	if _, ok := <-ch; ok {
		t.Error("expected channel closed after cancel")
	}

	// Publishing after cancel must not panic or deliver.
	bus.publish(model.Event{ItemID: 2, Kind: model.EventSold})
}

func TestBusSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus()

	ch, cancel := bus.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; publish must never block.
	for i := 0; i < 100; i++ {
		bus.publish(model.Event{ItemID: int64(i), Kind: model.EventListed})
	}

	if len(ch) != cap(ch) {
		t.Errorf("expected full buffer of %d, got %d", cap(ch), len(ch))
	}
}

func TestBusMultipleSubscribers(t *testing.T) {
	bus := NewBus()

	ch1, cancel1 := bus.Subscribe()
	defer cancel1()
	ch2, cancel2 := bus.Subscribe()
	defer cancel2()

	bus.publish(model.Event{ItemID: 3, Kind: model.EventShipped})

	for _, ch := range []<-chan model.Event{ch1, ch2} {
		e := <-ch
		if e.ItemID != 3 || e.Kind != model.EventShipped {
			t.Errorf("got %+v, want item 3 shipped", e)
		}
	}
}
