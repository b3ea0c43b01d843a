// Package catalog keeps a time-bounded, read-only snapshot of products and
// customers so the till can filter on every keystroke without a store round trip.
//
// A read inside the TTL window returns the cached snapshot. The first read after
// expiry re-fetches synchronously. Concurrent readers never wait on each other:
// each expired reader fetches on its own and the last write wins.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/port"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"sort"
	"strings"
	"sync"
	"time"
)

type Table string

const (
	TableProducts  Table = "products"
	TableCustomers Table = "customers"
)

const (
	DefaultTTL        = 30 * time.Second
	DefaultMaxResults = 60
)

// Snapshot is a point-in-time copy of one table.
// Err is set, and Items empty, when the store could not be read.
type Snapshot[T any] struct {
	Items     []T       `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
	Err       error     `json:"-"`
}

type slot[T any] struct {
	mu   sync.Mutex
	snap *Snapshot[T]
}

func (s *slot[T]) fresh(now time.Time, ttl time.Duration) (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil || now.Sub(s.snap.FetchedAt) >= ttl {
		return Snapshot[T]{}, false
	}
	return *s.snap, true
}

func (s *slot[T]) store(snap Snapshot[T]) {
	s.mu.Lock()
	s.snap = &snap
	s.mu.Unlock()
}

func (s *slot[T]) reset() {
	s.mu.Lock()
	s.snap = nil
	s.mu.Unlock()
}

type Catalog struct {
	products  port.ProductRepository
	customers port.CustomerRepository
	shared    SnapshotStore

	ttl        time.Duration
	maxResults int
	now        func() time.Time
	logger     *zap.Logger

	productSlot  slot[domain.Product]
	customerSlot slot[domain.Customer]
}

type Option func(*Catalog)

func WithTTL(ttl time.Duration) Option {
	return func(c *Catalog) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

func WithMaxResults(n int) Option {
	return func(c *Catalog) {
		if n > 0 {
			c.maxResults = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(c *Catalog) {
		c.now = now
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSnapshotStore shares fetched snapshots between processes on the same till.
func WithSnapshotStore(store SnapshotStore) Option {
	return func(c *Catalog) {
		c.shared = store
	}
}

func New(products port.ProductRepository, customers port.CustomerRepository, opts ...Option) *Catalog {
	c := &Catalog{
		products:   products,
		customers:  customers,
		ttl:        DefaultTTL,
		maxResults: DefaultMaxResults,
		now:        time.Now,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Catalog) Products(ctx context.Context) Snapshot[domain.Product] {
	if snap, ok := c.productSlot.fresh(c.now(), c.ttl); ok {
		return snap
	}
	return c.RefreshProducts(ctx)
}

func (c *Catalog) Customers(ctx context.Context) Snapshot[domain.Customer] {
	if snap, ok := c.customerSlot.fresh(c.now(), c.ttl); ok {
		return snap
	}
	return c.RefreshCustomers(ctx)
}

// RefreshProducts fetches every product ordered by name, bypassing the TTL.
func (c *Catalog) RefreshProducts(ctx context.Context) Snapshot[domain.Product] {
	return refresh(ctx, c, TableProducts, &c.productSlot, c.products.ListProducts)
}

func (c *Catalog) RefreshCustomers(ctx context.Context) Snapshot[domain.Customer] {
	return refresh(ctx, c, TableCustomers, &c.customerSlot, c.customers.ListCustomers)
}

// Warm refreshes both tables concurrently.
func (c *Catalog) Warm(ctx context.Context) error {
	var g errgroup.Group

	g.Go(func() error {
		return c.RefreshProducts(ctx).Err
	})
	g.Go(func() error {
		return c.RefreshCustomers(ctx).Err
	})

	return g.Wait()
}

// Invalidate drops every cached snapshot, local and shared.
func (c *Catalog) Invalidate(ctx context.Context) {
	c.productSlot.reset()
	c.customerSlot.reset()

	if c.shared == nil {
		return
	}

	if err := c.shared.Delete(ctx, TableProducts, TableCustomers); err != nil {
		c.logger.Warn("shared snapshot delete failed", zap.Error(err))
	}
}

// SearchProducts matches text case-insensitively against the name or as a
// substring of the barcode. Empty text matches everything, empty category
// means every category. The result is truncated to the configured maximum.
func (c *Catalog) SearchProducts(ctx context.Context, text, category string) ([]domain.Product, error) {
	snap := c.Products(ctx)

	needle := strings.ToLower(strings.TrimSpace(text))

	var out []domain.Product
	for _, p := range snap.Items {
		if len(out) >= c.maxResults {
			break
		}
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) && !strings.Contains(p.Barcode, strings.TrimSpace(text)) {
			continue
		}
		out = append(out, p)
	}

	return out, snap.Err
}

func (c *Catalog) SearchCustomers(ctx context.Context, text string) ([]domain.Customer, error) {
	snap := c.Customers(ctx)

	needle := strings.ToLower(strings.TrimSpace(text))

	var out []domain.Customer
	for _, cu := range snap.Items {
		if len(out) >= c.maxResults {
			break
		}
		if needle != "" && !strings.Contains(strings.ToLower(cu.Name), needle) {
			continue
		}
		out = append(out, cu)
	}

	return out, snap.Err
}

// Categories lists distinct non-empty product categories, sorted.
func (c *Catalog) Categories(ctx context.Context) ([]string, error) {
	snap := c.Products(ctx)

	seen := make(map[string]struct{})
	for _, p := range snap.Items {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)

	return out, snap.Err
}

// Product looks id up in the current snapshot. A product created after the
// snapshot was taken is read from the store directly; the snapshot is left as is.
func (c *Catalog) Product(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	snap := c.Products(ctx)
	if snap.Err != nil {
		return domain.Product{}, snap.Err
	}

	for _, p := range snap.Items {
		if p.ID == id {
			return p, nil
		}
	}

	p, err := c.products.GetProduct(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	c.logger.Debug("product missing from snapshot, read from store",
		zap.String("product_id", id.String()),
		zap.Time("snapshot_fetched_at", snap.FetchedAt))

	return p, nil
}

func refresh[T any](ctx context.Context, c *Catalog, table Table, s *slot[T], fetch func(context.Context) ([]T, error)) Snapshot[T] {
	if snap, ok := loadShared[T](ctx, c, table); ok {
		s.store(snap)
		return snap
	}

	items, err := fetch(ctx)
	if err != nil {
		c.logger.Warn("catalog refresh failed, serving empty collection",
			zap.String("table", string(table)), zap.Error(err))

		if !errors.Is(err, domain.ErrRemoteUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrRemoteUnavailable, err)
		}
		return Snapshot[T]{Items: []T{}, FetchedAt: c.now(), Err: err}
	}

	snap := Snapshot[T]{Items: items, FetchedAt: c.now()}
	s.store(snap)
	saveShared(ctx, c, table, snap)

	return snap
}

func loadShared[T any](ctx context.Context, c *Catalog, table Table) (Snapshot[T], bool) {
	if c.shared == nil {
		return Snapshot[T]{}, false
	}

	data, err := c.shared.Load(ctx, table)
	if err != nil {
		if !errors.Is(err, ErrSnapshotMiss) {
			c.logger.Warn("shared snapshot load failed", zap.String("table", string(table)), zap.Error(err))
		}
		return Snapshot[T]{}, false
	}

	var snap Snapshot[T]
	if err := json.Unmarshal(data, &snap); err != nil {
		c.logger.Warn("shared snapshot is not valid", zap.String("table", string(table)), zap.Error(err))
		return Snapshot[T]{}, false
	}

	if c.now().Sub(snap.FetchedAt) >= c.ttl {
		return Snapshot[T]{}, false
	}

	return snap, true
}

func saveShared[T any](ctx context.Context, c *Catalog, table Table, snap Snapshot[T]) {
	if c.shared == nil {
		return
	}

	data, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("shared snapshot marshal failed", zap.String("table", string(table)), zap.Error(err))
		return
	}

	if err := c.shared.Save(ctx, table, data, c.ttl); err != nil {
		c.logger.Warn("shared snapshot save failed", zap.String("table", string(table)), zap.Error(err))
	}
}
