package events

import "testing"

func TestPublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	ch1 := bus.Subscribe(HistoryUpdated)
	ch2 := bus.Subscribe(HistoryUpdated)
	other := bus.Subscribe(AuthChanged)

	bus.Publish(Event{Type: HistoryUpdated, Payload: "entry"})

	for i, ch := range []<-chan Event{ch1, ch2} {
		select {
		case evt := <-ch:
			if evt.Type != HistoryUpdated || evt.Payload != "entry" {
				t.Fatalf("subscriber %d got unexpected event: %+v", i, evt)
			}
		default:
			t.Fatalf("subscriber %d received nothing", i)
		}
	}
	select {
	case evt := <-other:
		t.Fatalf("AuthChanged subscriber got %+v", evt)
	default:
	}
}

func TestPublishDropsWhenBufferFull(t *testing.T) {
	bus := NewBus()
	ch := bus.Subscribe(Unauthorized)

	// Fill the buffer, then publish one more. The overflow event must be
	// dropped without blocking.
	for i := 0; i < cap(ch)+1; i++ {
		bus.Publish(Event{Type: Unauthorized})
	}

	got := 0
	for {
		select {
		case <-ch:
			got++
			continue
		default:
		}
		break
	}
	if got != cap(ch) {
		t.Fatalf("expected %d buffered events, got %d", cap(ch), got)
	}
}

func TestPublishWithoutSubscribersIsNoOp(t *testing.T) {
	bus := NewBus()
	bus.Publish(Event{Type: HistoryUpdated})
}
