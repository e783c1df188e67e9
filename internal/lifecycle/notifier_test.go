package lifecycle

import "testing"

func TestManualNotifierDeliversEvents(t *testing.T) {
	n := NewManualNotifier()

	var got []Event
	unsub := n.Subscribe(func(e Event) {
		got = append(got, e)
	})
	defer unsub()

	n.Emit(Background)
	n.Emit(Foreground)

	if len(got) != 2 || got[0] != Background || got[1] != Foreground {
		t.Fatalf("expected [background foreground], got %v", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	n := NewManualNotifier()

	calls := 0
	unsub := n.Subscribe(func(Event) { calls++ })

	n.Emit(Background)
	unsub()
	n.Emit(Foreground)

	if calls != 1 {
		t.Errorf("expected 1 call after unsubscribe, got %d", calls)
	}
	if n.SubscriberCount() != 0 {
		t.Errorf("expected 0 subscribers, got %d", n.SubscriberCount())
	}
}

func TestMultipleSubscribers(t *testing.T) {
	n := NewManualNotifier()

	a, b := 0, 0
	unsubA := n.Subscribe(func(Event) { a++ })
	defer unsubA()
	unsubB := n.Subscribe(func(Event) { b++ })

	n.Emit(Background)
	unsubB()
	n.Emit(Background)

	if a != 2 {
		t.Errorf("subscriber a: expected 2 events, got %d", a)
	}
	if b != 1 {
		t.Errorf("subscriber b: expected 1 event, got %d", b)
	}
}
