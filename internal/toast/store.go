// Package toast holds the process-wide notification queue. The host
// application constructs one Store at startup and hands it to every
// component that reports outcomes to the user.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/nikolayk812/morpho-cart/internal/domain"
)

const (
	DefaultMaxToasts = 5
	DefaultDuration  = 4 * time.Second
)

// Listener receives the full active list, newest first.
type Listener func(toasts []domain.Toast)

type subscription struct {
	id uint64
	fn Listener
}

type Store struct {
	mu        sync.Mutex
	toasts    []domain.Toast
	listeners []subscription
	nextSubID uint64

	maxToasts       int
	defaultDuration time.Duration
	clock           clockwork.Clock
	newID           func() string
	log             logrus.FieldLogger
}

type Option func(*Store)

func WithMaxToasts(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxToasts = n
		}
	}
}

func WithDefaultDuration(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.defaultDuration = d
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		maxToasts:       DefaultMaxToasts,
		defaultDuration: DefaultDuration,
		clock:           clockwork.NewRealClock(),
		newID:           uuid.NewString,
		log:             logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Subscribe registers l for every change of the active list. The returned
// function removes it and is safe to call more than once.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Toasts returns a copy of the active list, newest first.
func (s *Store) Toasts() []domain.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	return cloneToasts(s.toasts)
}

// DefaultDuration is the auto-dismiss delay given to terminal toasts that
// do not carry their own.
func (s *Store) DefaultDuration() time.Duration {
	return s.defaultDuration
}

// Add prepends t and evicts the oldest toasts beyond capacity. A missing id
// is generated; an id that is already active replaces that toast.
func (s *Store) Add(t domain.Toast) string {
	s.mu.Lock()

	if t.ID == "" {
		t.ID = s.newID()
	}
	if t.Type == "" {
		t.Type = domain.ToastInfo
	}
	if t.Type.IsTerminal() && t.Duration <= 0 {
		t.Duration = s.defaultDuration
	}
	t.CreatedAt = s.clock.Now()

	if i := s.indexOf(t.ID); i >= 0 {
		s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)
	}

	s.toasts = append([]domain.Toast{t}, s.toasts...)
	if len(s.toasts) > s.maxToasts {
		s.toasts = s.toasts[:s.maxToasts]
	}

	s.unlockAndNotify()

	return t.ID
}

// Update merges fields into the toast with the given id. Id and creation
// time are never changed. Reports false when the id is not active; in that
// case subscribers are not notified.
func (s *Store) Update(id string, fields ...Field) bool {
	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	t := s.toasts[i]
	for _, f := range fields {
		f(&t)
	}
	t.ID = s.toasts[i].ID
	t.CreatedAt = s.toasts[i].CreatedAt
	if t.Type.IsTerminal() && t.Duration <= 0 {
		t.Duration = s.defaultDuration
	}
	s.toasts[i] = t

	s.unlockAndNotify()

	return true
}

// Remove deletes the toast with the given id. Removing an absent id is a
// no-op and does not notify subscribers.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()

	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}

	s.toasts = append(s.toasts[:i:i], s.toasts[i+1:]...)

	s.unlockAndNotify()

	return true
}

func (s *Store) Success(message string, fields ...Field) string {
	return s.add(domain.ToastSuccess, message, fields)
}

func (s *Store) Error(message string, fields ...Field) string {
	return s.add(domain.ToastError, message, fields)
}

func (s *Store) Warning(message string, fields ...Field) string {
	return s.add(domain.ToastWarning, message, fields)
}

func (s *Store) Info(message string, fields ...Field) string {
	return s.add(domain.ToastInfo, message, fields)
}

func (s *Store) Cart(message string, fields ...Field) string {
	return s.add(domain.ToastCart, message, fields)
}

func (s *Store) Loading(message string, fields ...Field) string {
	return s.add(domain.ToastLoading, message, fields)
}

func (s *Store) add(typ domain.ToastType, message string, fields []Field) string {
	t := domain.Toast{Message: message}
	for _, f := range fields {
		f(&t)
	}
	t.Type = typ

	return s.Add(t)
}

func (s *Store) indexOf(id string) int {
	for i, t := range s.toasts {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// unlockAndNotify must be called with mu held. Listeners run after the
// lock is released so they may call back into the store.
func (s *Store) unlockAndNotify() {
	snapshot := cloneToasts(s.toasts)
	listeners := make([]Listener, 0, len(s.listeners))
	for _, sub := range s.listeners {
		listeners = append(listeners, sub.fn)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(cloneToasts(snapshot))
	}
}

func cloneToasts(toasts []domain.Toast) []domain.Toast {
	out := make([]domain.Toast, len(toasts))
	copy(out, toasts)
	return out
}
