// Package cart holds the customer's shopping cart: line items, derived
// totals and their persistence. Every mutation takes effect in memory
// first, is then written to storage, and finally reported as a toast.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/nikolayk812/morpho-cart/internal/domain"
	"github.com/nikolayk812/morpho-cart/internal/port"
	"github.com/nikolayk812/morpho-cart/internal/price"
)

const DefaultStorageKey = "morpho-cart"

var (
	irr      = currency.MustParseISO("IRR")
	maxTotal = decimal.NewFromInt(math.MaxInt64)
)

type Store struct {
	mu      sync.Mutex
	items   []domain.CartLineItem
	isOpen  bool
	version uint64

	persistMu sync.Mutex
	persisted uint64

	storage   port.Storage
	notifier  port.Notifier
	key       string
	currency  currency.Unit
	formatter *price.Formatter
	log       logrus.FieldLogger
}

type Option func(*Store)

func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

func WithCurrency(unit currency.Unit) Option {
	return func(s *Store) {
		s.currency = unit
	}
}

func WithFormatter(f *price.Formatter) Option {
	return func(s *Store) {
		s.formatter = f
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// New returns a cart hydrated from storage. A missing, unreadable or
// corrupt snapshot yields an empty cart.
func New(ctx context.Context, storage port.Storage, notifier port.Notifier, opts ...Option) *Store {
	s := &Store{
		storage:  storage,
		notifier: notifier,
		key:      DefaultStorageKey,
		currency: irr,
		log:      logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.formatter == nil {
		s.formatter = price.NewFormatter(language.Persian, true)
	}

	s.hydrate(ctx)

	return s
}

func (s *Store) hydrate(ctx context.Context) {
	log := s.log.WithField("key", s.key)

	raw, found, err := s.storage.Get(ctx, s.key)
	if err != nil {
		log.WithError(err).Warn("failed to load saved cart, starting empty")
		return
	}
	if !found || raw == "" {
		return
	}

	var items []domain.CartLineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.WithError(err).Warn("saved cart is corrupt, starting empty")
		return
	}

	s.items = sanitize(items)
}

// sanitize drops non-positive quantities and merges repeated ids into the
// first occurrence.
func sanitize(items []domain.CartLineItem) []domain.CartLineItem {
	out := make([]domain.CartLineItem, 0, len(items))
	index := make(map[int64]int, len(items))

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		if i, ok := index[item.ID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}

	return out
}

// AddItem appends a snapshot of p with quantity 1, or increments the
// quantity of the line item that already has p's id.
func (s *Store) AddItem(ctx context.Context, p domain.Product) {
	s.mu.Lock()
	var (
		existed  bool
		quantity = 1
	)
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
		quantity = s.items[i].Quantity
		existed = true
	} else {
		s.items = append(s.items, domain.NewCartLineItem(p))
	}
	version, items := s.commit()
	s.mu.Unlock()

	s.persist(ctx, version, items)

	if existed {
		s.notify(domain.Toast{
			Type:        domain.ToastInfo,
			Message:     fmt.Sprintf("%s quantity increased", p.Name),
			Description: fmt.Sprintf("Quantity: %d", quantity),
		})
		return
	}

	s.notify(domain.Toast{
		Type:        domain.ToastCart,
		Message:     fmt.Sprintf("%s added to cart", p.Name),
		Description: s.formatter.Format(p.Price),
	})
}

// RemoveItem deletes the line item with the given id. An unknown id is a
// no-op, the "removed" toast is shown either way.
func (s *Store) RemoveItem(ctx context.Context, id int64) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()

		s.notify(domain.Toast{
			Type:    domain.ToastError,
			Message: "Removed from cart",
		})
		return
	}

	name := s.items[i].Name
	s.items = append(s.items[:i:i], s.items[i+1:]...)
	version, items := s.commit()
	s.mu.Unlock()

	s.persist(ctx, version, items)

	s.notify(domain.Toast{
		Type:        domain.ToastError,
		Message:     "Removed from cart",
		Description: name,
	})
}

// UpdateQuantity adds delta to the quantity of the line item with the
// given id. A result of zero or less removes the item. An unknown id is a
// no-op. No toast is shown.
func (s *Store) UpdateQuantity(ctx context.Context, id int64, delta int) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}

	if quantity := max(0, s.items[i].Quantity+delta); quantity == 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
	} else {
		s.items[i].Quantity = quantity
	}
	version, items := s.commit()
	s.mu.Unlock()

	s.persist(ctx, version, items)
}

// ClearCart empties the cart and deletes its storage entry. Checkout calls
// it only after the order backend confirmed the order.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	version, _ := s.commit()
	s.mu.Unlock()

	s.persist(ctx, version, nil)
}

// Items returns a copy of the line items in the order they were added.
func (s *Store) Items() []domain.CartLineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot()
}

// CartTotal is the sum of price times quantity over all line items,
// saturating at math.MaxInt64.
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		line := decimal.NewFromInt(price.Parse(string(item.Price))).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}

	if total.GreaterThan(maxTotal) {
		return math.MaxInt64
	}
	return total.IntPart()
}

// ItemCount is the sum of quantities over all line items.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

func (s *Store) Total() domain.Money {
	return domain.NewMoney(s.CartTotal(), s.currency)
}

func (s *Store) FormattedTotal() string {
	return s.formatter.Format(s.CartTotal())
}

// IsOpen reports whether the cart panel is visible. It has no bearing on
// the cart's contents.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.isOpen
}

func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isOpen = open
}

// commit must be called with mu held.
func (s *Store) commit() (uint64, []domain.CartLineItem) {
	s.version++
	return s.version, s.snapshot()
}

// snapshot must be called with mu held.
func (s *Store) snapshot() []domain.CartLineItem {
	out := make([]domain.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) indexOf(id int64) int {
	for i, item := range s.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// persist writes the snapshot taken at version, unless a newer one has
// already been written. A nil snapshot deletes the entry. Failures are
// logged; the in-memory state stays authoritative.
func (s *Store) persist(ctx context.Context, version uint64, items []domain.CartLineItem) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	if version <= s.persisted {
		return
	}
	s.persisted = version

	log := s.log.WithField("key", s.key)

	if items == nil {
		if err := s.storage.Delete(ctx, s.key); err != nil {
			log.WithError(err).Error("failed to delete saved cart")
		}
		return
	}

	data, err := json.Marshal(items)
	if err != nil {
		log.WithError(err).Error("failed to encode cart")
		return
	}

	if err := s.storage.Set(ctx, s.key, string(data)); err != nil {
		log.WithError(err).Error("failed to save cart")
	}
}

func (s *Store) notify(t domain.Toast) {
	if s.notifier == nil {
		return
	}
	s.notifier.Add(t)
}
