package lifecycle

import "sync"

// Event marks an app lifecycle transition.
type Event int

const (
	Foreground Event = iota
	Background
)

func (e Event) String() string {
	switch e {
	case Foreground:
		return "foreground"
	case Background:
		return "background"
	default:
		return "unknown"
	}
}

// Notifier delivers lifecycle events to subscribers. Subscribe returns
// an unsubscribe func; callers must invoke it on teardown so handlers
// never outlive their owner.
type Notifier interface {
	Subscribe(fn func(Event)) (unsubscribe func())
}

// ManualNotifier is a Notifier driven by explicit Emit calls. Hosts that
// track visibility themselves (and tests) use it directly.
type ManualNotifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Event)
}

func NewManualNotifier() *ManualNotifier {
	return &ManualNotifier{subs: make(map[int]func(Event))}
}

func (n *ManualNotifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Emit delivers the event to all current subscribers.
func (n *ManualNotifier) Emit(e Event) {
	n.mu.Lock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}

// SubscriberCount reports the number of live subscriptions.
func (n *ManualNotifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
