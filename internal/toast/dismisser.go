package toast

import (
	"sync"
	"time"

	"github.com/nikolayk812/morpho-cart/internal/domain"
)

// Dismisser runs the auto-dismiss timers for the toasts of a Store, the
// part a renderer would otherwise own. Every terminal toast gets its own
// Countdown; loading toasts wait until they are updated to a terminal type.
type Dismisser struct {
	store *Store

	mu          sync.Mutex
	entries     map[string]*dismissEntry
	unsubscribe func()
	closed      bool
}

type dismissEntry struct {
	typ       domain.ToastType
	duration  time.Duration
	createdAt time.Time
	action    *domain.ToastAction
	hovered   bool
	countdown *Countdown
}

func NewDismisser(store *Store) *Dismisser {
	d := &Dismisser{
		store:   store,
		entries: make(map[string]*dismissEntry),
	}

	d.unsubscribe = store.Subscribe(func([]domain.Toast) {
		d.sync()
	})
	d.sync()

	return d
}

// A toast re-added under an active id counts as a new toast: its countdown
// and hover state start over.
//
// sync reconciles timers against the store's current list rather than the
// listener argument: listener calls from different goroutines may arrive
// out of order.
func (d *Dismisser) sync() {
	toasts := d.store.Toasts()

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	active := make(map[string]struct{}, len(toasts))
	for _, t := range toasts {
		active[t.ID] = struct{}{}

		e, ok := d.entries[t.ID]
		if !ok {
			e = &dismissEntry{}
			d.entries[t.ID] = e
		}
		e.action = t.Action

		readded := ok && !e.createdAt.Equal(t.CreatedAt)
		if readded {
			e.hovered = false
		}
		if ok && !readded && e.typ == t.Type && e.duration == t.Duration {
			continue
		}
		e.createdAt = t.CreatedAt
		e.typ = t.Type
		e.duration = t.Duration

		if e.countdown != nil {
			e.countdown.Stop()
			e.countdown = nil
		}
		if !t.Type.IsTerminal() {
			continue
		}

		e.countdown = StartCountdown(d.store.clock, t.Duration, d.expire(t.ID))
		if e.hovered {
			e.countdown.Pause()
		}
	}

	for id, e := range d.entries {
		if _, ok := active[id]; ok {
			continue
		}
		if e.countdown != nil {
			e.countdown.Stop()
		}
		delete(d.entries, id)
	}
}

func (d *Dismisser) expire(id string) func() {
	return func() {
		d.store.log.WithField("toast_id", id).Debug("toast expired")
		d.store.Remove(id)
	}
}

// Pause freezes the countdown of a toast, e.g. while the pointer is over it.
func (d *Dismisser) Pause(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[id]
	if !ok {
		return false
	}
	e.hovered = true
	if e.countdown != nil {
		e.countdown.Pause()
	}

	return true
}

// Resume continues a paused countdown from its remaining time.
func (d *Dismisser) Resume(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[id]
	if !ok {
		return false
	}
	e.hovered = false
	if e.countdown != nil {
		e.countdown.Resume()
	}

	return true
}

// Dismiss removes a toast right away, as a close button or swipe does.
func (d *Dismisser) Dismiss(id string) bool {
	return d.store.Remove(id)
}

// Act runs the toast's action and dismisses it. Reports false when the
// toast is gone or has no action.
func (d *Dismisser) Act(id string) bool {
	d.mu.Lock()
	e, ok := d.entries[id]
	var action *domain.ToastAction
	if ok {
		action = e.action
	}
	d.mu.Unlock()

	if action == nil {
		return false
	}

	if action.OnClick != nil {
		action.OnClick()
	}
	d.store.Remove(id)

	return true
}

// Remaining reports the time left before a toast is dismissed. Loading
// toasts report found == true with zero time.
func (d *Dismisser) Remaining(id string) (time.Duration, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[id]
	if !ok {
		return 0, false
	}
	if e.countdown == nil {
		return 0, true
	}

	return e.countdown.Remaining(), true
}

func (d *Dismisser) Progress(id string) (float64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	e, ok := d.entries[id]
	if !ok || e.countdown == nil {
		return 0, ok
	}

	return e.countdown.Progress(), true
}

// Close stops every timer and detaches from the store.
func (d *Dismisser) Close() {
	d.unsubscribe()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.closed = true
	for id, e := range d.entries {
		if e.countdown != nil {
			e.countdown.Stop()
		}
		delete(d.entries, id)
	}
}
