package tracker

import (
	"errors"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/avoronkov/stridewell/internal/keystore"
	"github.com/avoronkov/stridewell/internal/lifecycle"
)

// ActiveTime accumulates foreground time for the current day in hours.
// Elapsed time is measured from the last foreground mark; each
// transition to background folds the open interval into the day total
// and persists it under screenTime_<date>. Persistence failures keep
// the in-memory total, so accounting degrades to session-only.
type ActiveTime struct {
	store keystore.Store
	clock Clock

	mu           sync.Mutex
	date         string
	totalHours   float64
	foregroundAt time.Time // zero while backgrounded
}

// NewActiveTime loads any previously persisted total for today and
// starts measuring from now.
func NewActiveTime(store keystore.Store, clock Clock) *ActiveTime {
	now := clock.Now()
	a := &ActiveTime{
		store:        store,
		clock:        clock,
		date:         DateString(now),
		foregroundAt: now,
	}

	if v, err := store.Get(keyScreenTime + a.date); err == nil {
		if hours, perr := strconv.ParseFloat(v, 64); perr == nil {
			a.totalHours = hours
		} else {
			log.Printf("WARN tracker: bad stored screen time %q, starting from zero", v)
		}
	} else if !errors.Is(err, keystore.ErrNotFound) {
		log.Printf("WARN tracker: read screen time: %v", err)
	}

	return a
}

// OnLifecycle folds the open interval on background and re-arms the
// foreground mark on foreground. Repeated events of the same kind are
// harmless.
func (a *ActiveTime) OnLifecycle(e lifecycle.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()

	switch e {
	case lifecycle.Background:
		if a.foregroundAt.IsZero() {
			return
		}
		a.totalHours += now.Sub(a.foregroundAt).Hours()
		a.foregroundAt = time.Time{}
		a.persistLocked()
	case lifecycle.Foreground:
		if !a.foregroundAt.IsZero() {
			return
		}
		a.foregroundAt = now
	}
}

// CurrentTotal returns today's accumulated hours including the open
// foreground interval.
func (a *ActiveTime) CurrentTotal() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := a.totalHours
	if !a.foregroundAt.IsZero() {
		total += a.clock.Now().Sub(a.foregroundAt).Hours()
	}
	return total
}

// Flush folds the open interval into the total and persists it without
// marking the tracker backgrounded.
func (a *ActiveTime) Flush() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.clock.Now()
	if !a.foregroundAt.IsZero() {
		a.totalHours += now.Sub(a.foregroundAt).Hours()
		a.foregroundAt = now
	}
	a.persistLocked()
}

func (a *ActiveTime) persistLocked() {
	v := strconv.FormatFloat(a.totalHours, 'f', -1, 64)
	if err := a.store.Set(keyScreenTime+a.date, v); err != nil {
		log.Printf("WARN tracker: persist screen time: %v", err)
	}
}
