package session

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/vertex-pos/internal/checkout"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/goleak"
	"sync"
	"testing"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// memStore is an in-memory products and customers table.
type memStore struct {
	mu        sync.Mutex
	products  []domain.Product
	customers []domain.Customer
}

func (m *memStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *memStore) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, domain.ErrProductNotFound
}

func (m *memStore) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Stock = stock
			return nil
		}
	}
	return domain.ErrProductNotFound
}

func (m *memStore) CreateProducts(_ context.Context, products []domain.Product) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = append(m.products, products...)
	return products, nil
}

func (m *memStore) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Customer, len(m.customers))
	copy(out, m.customers)
	return out, nil
}

func (m *memStore) CreateCustomers(_ context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.customers = append(m.customers, customers...)
	return customers, nil
}

type memSales struct {
	mu       sync.Mutex
	err      error
	payloads []map[string]any
}

func (m *memSales) InsertSale(_ context.Context, payload map[string]any) (domain.SaleRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return domain.SaleRecord{}, m.err
	}

	m.payloads = append(m.payloads, payload)
	folio, _ := payload["folio"].(string)
	return domain.SaleRecord{ID: int64(len(m.payloads)), Folio: folio}, nil
}

func (m *memSales) ListRecent(_ context.Context, _ int) ([]domain.SaleRecord, error) {
	return nil, nil
}

func (m *memSales) setErr(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// blockingCommitter holds Commit until release is closed.
type blockingCommitter struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingCommitter) Commit(_ context.Context, cart *domain.Cart, _ checkout.Request) (checkout.Result, error) {
	close(b.entered)
	<-b.release
	cart.Clear()
	return checkout.Result{Folio: "WEB-1"}, nil
}

func (b *blockingCommitter) State() checkout.State {
	return checkout.StateSubmitting
}

type nopCatalog struct{}

func (nopCatalog) Product(_ context.Context, id uuid.UUID) (domain.Product, error) {
	return domain.Product{ID: id, Name: "Soda", Price: decimal.NewFromInt(10), Stock: 5}, nil
}

func (nopCatalog) SearchProducts(_ context.Context, _, _ string) ([]domain.Product, error) {
	return nil, nil
}

func (nopCatalog) SearchCustomers(_ context.Context, _ string) ([]domain.Customer, error) {
	return nil, nil
}

func (nopCatalog) Invalidate(_ context.Context) {}

// gatedCatalog holds Product until release is closed.
type gatedCatalog struct {
	nopCatalog
	entered chan struct{}
	release chan struct{}
}

func (g *gatedCatalog) Product(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	close(g.entered)
	<-g.release
	return g.nopCatalog.Product(ctx, id)
}
