package broadcast

import (
	"testing"

	"github.com/trackhub-io/trackhub/internal/tracker/core/model"
)

func testEvent(n int) model.Event {
	return model.Event{Type: model.EventLocationUpdate, Data: n}
}

func TestBroadcastReachesAllSubscribers(t *testing.T) {
	h := NewHub()
	a := h.Connect()
	b := h.Connect()

	h.Broadcast(testEvent(1))

	for name, sub := range map[string]*Subscriber{"a": a, "b": b} {
		select {
		case ev := <-sub.C():
			if ev.Data != 1 {
				t.Errorf("%s received %v, want 1", name, ev.Data)
			}
		default:
			t.Errorf("%s received nothing", name)
		}
	}
}

func TestBroadcastWithoutSubscribers(t *testing.T) {
	h := NewHub()
	// Must not block or panic.
	h.Broadcast(testEvent(1))
}

func TestSlowSubscriberDoesNotBlockPeers(t *testing.T) {
	drops := 0
	h := NewHub(WithBufferSize(1), WithDropHook(func() { drops++ }))

	slow := h.Connect()
	fast := h.Connect()

	// The fast subscriber drains after every event; the slow one never
	// reads, so its buffer of 1 fills after the first broadcast.
	for i := 1; i <= 3; i++ {
		h.Broadcast(testEvent(i))
		select {
		case ev := <-fast.C():
			if ev.Data != i {
				t.Errorf("fast subscriber got %v, want %d", ev.Data, i)
			}
		default:
			t.Fatalf("fast subscriber missed event %d", i)
		}
	}

	select {
	case ev := <-slow.C():
		if ev.Data != 1 {
			t.Errorf("slow subscriber got %v, want the first event", ev.Data)
		}
	default:
		t.Error("slow subscriber lost its buffered event")
	}

	if drops != 2 {
		t.Errorf("drops = %d, want 2", drops)
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	h := NewHub()
	sub := h.Connect()

	h.Disconnect(sub)
	h.Disconnect(sub)
	h.Disconnect(nil)

	if h.Len() != 0 {
		t.Errorf("len = %d, want 0", h.Len())
	}

	select {
	case <-sub.Done():
	default:
		t.Error("Done must be signalled after disconnect")
	}
}

func TestBroadcastAfterDisconnect(t *testing.T) {
	h := NewHub()
	gone := h.Connect()
	alive := h.Connect()

	h.Disconnect(gone)
	h.Broadcast(testEvent(1))

	select {
	case ev := <-alive.C():
		if ev.Data != 1 {
			t.Errorf("got %v, want 1", ev.Data)
		}
	default:
		t.Error("remaining subscriber received nothing")
	}

	select {
	case <-gone.C():
		t.Error("disconnected subscriber must not receive events")
	default:
	}
}

func TestConcurrentBroadcastAndDisconnect(t *testing.T) {
	h := NewHub(WithBufferSize(1))

	for i := 0; i < 100; i++ {
		sub := h.Connect()
		go h.Disconnect(sub)
		h.Broadcast(testEvent(i))
	}
}
