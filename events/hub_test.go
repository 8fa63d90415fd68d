package events

import (
	"testing"
	"time"
)

func TestHubDeliversToSubscribers(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	hub.Publish(Event{Type: EventBinChanged, SKU: "PANEL-TESLA-400", Location: "W-A-01", Quantity: 70})

	select {
	case ev := <-ch:
		if ev.Type != EventBinChanged || ev.SKU != "PANEL-TESLA-400" {
			t.Errorf("got event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch, unsubscribe := hub.Subscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic on the closed channel.
	hub.Publish(Event{Type: EventLowStock})
	// Unsubscribing twice is a no-op.
	unsubscribe()
}

func TestHubSlowSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	_, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	// Nobody drains the channel; overflow events are dropped, the
	// publisher never stalls.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Publish(Event{Type: EventBinChanged, Quantity: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestHubMultipleSubscribers(t *testing.T) {
	hub := NewHub()
	first, stopFirst := hub.Subscribe()
	defer stopFirst()
	second, stopSecond := hub.Subscribe()
	defer stopSecond()

	hub.Publish(Event{Type: EventAdjustmentResolved, EntityID: 7})

	for name, ch := range map[string]<-chan Event{"first": first, "second": second} {
		select {
		case ev := <-ch:
			if ev.EntityID != 7 {
				t.Errorf("%s subscriber got %+v", name, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("%s subscriber got nothing", name)
		}
	}
}
