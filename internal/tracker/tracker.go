package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/avoronkov/stridewell/internal/keystore"
	"github.com/avoronkov/stridewell/internal/lifecycle"
)

// ErrNotSubmittable is returned by Submit when the form is not open.
var ErrNotSubmittable = errors.New("tracker: no open form to submit")

// Tracker is the daily wellness card: hydration streak prompt, wellness
// entry form and active-time accounting. One Tracker serves one mounted
// card; Mount runs the first-open-of-the-day logic.
type Tracker struct {
	store       keystore.Store
	clock       Clock
	client      Submitter
	displayName string

	mu            sync.Mutex
	state         State
	completedDays int
	form          Form
	active        *ActiveTime
	unsubscribe   func()
}

func New(store keystore.Store, clock Clock, client Submitter, displayName string) *Tracker {
	return &Tracker{
		store:       store,
		clock:       clock,
		client:      client,
		displayName: displayName,
		state:       Hidden,
		form:        Form{Mood: MoodNeutral},
	}
}

// Mount loads the persisted streak, decides whether to show the daily
// prompt and starts active-time accounting against the notifier.
// Callers must Unmount when the card goes away.
func (t *Tracker) Mount(notifier lifecycle.Notifier) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completedDays = t.loadStreak()
	t.active = NewActiveTime(t.store, t.clock)
	t.unsubscribe = notifier.Subscribe(t.active.OnLifecycle)

	today := DateString(t.clock.Now())
	last, err := t.store.Get(keyLastPromptDate)
	if err != nil {
		if !errors.Is(err, keystore.ErrNotFound) {
			log.Printf("WARN tracker: read last prompt date: %v", err)
		}
		last = ""
	}

	if last == today {
		// Already prompted today: stay hidden, touch nothing.
		return
	}

	t.state = Collapsed
	if last == "" {
		// First run: the date is written by the confirmation, so an
		// unanswered prompt comes back on remount.
		return
	}
	if err := t.store.Set(keyLastPromptDate, today); err != nil {
		log.Printf("WARN tracker: persist last prompt date: %v", err)
	}
}

// Unmount detaches the lifecycle subscription and flushes active time.
func (t *Tracker) Unmount() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.unsubscribe != nil {
		t.unsubscribe()
		t.unsubscribe = nil
	}
	if t.active != nil {
		t.active.Flush()
	}
}

func (t *Tracker) loadStreak() int {
	v, err := t.store.Get(keyCompletedDays)
	if err != nil {
		if !errors.Is(err, keystore.ErrNotFound) {
			log.Printf("WARN tracker: read completed days: %v", err)
		}
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("WARN tracker: bad stored streak %q, resetting to 0", v)
		return 0
	}
	if n > maxStreakDays {
		return maxStreakDays
	}
	return n
}

// ConfirmHydration answers the daily prompt with yes: the streak grows
// by one up to the seven-day cap, the form's water intake counts the
// confirmed glass, both keys persist immediately and the card hides.
func (t *Tracker) ConfirmHydration() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Collapsed {
		return
	}

	if t.completedDays < maxStreakDays {
		t.completedDays++
	}
	t.form.WaterIntake++
	t.state = Hidden

	if err := t.store.Set(keyCompletedDays, strconv.Itoa(t.completedDays)); err != nil {
		log.Printf("WARN tracker: persist completed days: %v", err)
	}
	if err := t.store.Set(keyLastPromptDate, DateString(t.clock.Now())); err != nil {
		log.Printf("WARN tracker: persist last prompt date: %v", err)
	}
}

// DeclineHydration answers the daily prompt with no: the streak stays
// and the card hides.
func (t *Tracker) DeclineHydration() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != Collapsed {
		return
	}
	t.state = Hidden
}

// Expand opens the full wellness entry form. This is the only way into
// the expanded state.
func (t *Tracker) Expand() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = ExpandedForm
}

// SetForm replaces the editable form fields. An unknown mood falls back
// to neutral.
func (t *Tracker) SetForm(f Form) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !ValidMood(f.Mood) {
		f.Mood = MoodNeutral
	}
	t.form = f
}

// Submit posts the current form to the collector. On success the form
// resets (display name stays) and the card hides; on failure every
// field is preserved for retry and the error is returned to the host.
func (t *Tracker) Submit(ctx context.Context) error {
	t.mu.Lock()
	if t.state != ExpandedForm {
		t.mu.Unlock()
		return ErrNotSubmittable
	}
	rec := t.buildRecordLocked()
	t.mu.Unlock()

	if err := t.client.Submit(ctx, rec); err != nil {
		return fmt.Errorf("wellness submission: %w", err)
	}

	t.mu.Lock()
	t.form = Form{Mood: MoodNeutral}
	t.state = Hidden
	t.mu.Unlock()
	return nil
}

func (t *Tracker) buildRecordLocked() WellnessRecord {
	screenTime := 0.0
	if t.active != nil {
		screenTime = t.active.CurrentTotal()
	}

	mood := t.form.Mood
	if !ValidMood(mood) {
		mood = MoodNeutral
	}

	return WellnessRecord{
		Name:        t.displayName,
		Date:        t.clock.Now().Format(time.RFC3339),
		SleepHours:  t.form.SleepHours,
		Mood:        mood,
		WaterIntake: t.form.WaterIntake,
		ScreenTime:  screenTime,
	}
}

// State returns the current card state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Streak returns the hydration streak in days (0..7).
func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completedDays
}

// Form returns a copy of the current form fields.
func (t *Tracker) Form() Form {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.form
}

// DisplayName returns the name submitted with every record.
func (t *Tracker) DisplayName() string { return t.displayName }

// ActiveHours returns today's accumulated active time in hours.
func (t *Tracker) ActiveHours() float64 {
	t.mu.Lock()
	a := t.active
	t.mu.Unlock()

	if a == nil {
		return 0
	}
	return a.CurrentTotal()
}
