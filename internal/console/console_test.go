package console

import (
	"bytes"
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/vertex-pos/internal/catalog"
	"github.com/nikolayk812/vertex-pos/internal/checkout"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/report"
	"github.com/nikolayk812/vertex-pos/internal/session"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"strings"
	"sync"
	"testing"
	"time"
)

type memStore struct {
	mu       sync.Mutex
	products []domain.Product
}

func (m *memStore) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]domain.Product(nil), m.products...), nil
}

func (m *memStore) GetProduct(_ context.Context, _ uuid.UUID) (domain.Product, error) {
	return domain.Product{}, domain.ErrProductNotFound
}

func (m *memStore) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID == id {
			m.products[i].Stock = stock
		}
	}
	return nil
}

func (m *memStore) CreateProducts(_ context.Context, products []domain.Product) ([]domain.Product, error) {
	return products, nil
}

func (m *memStore) ListCustomers(_ context.Context) ([]domain.Customer, error) {
	return []domain.Customer{{ID: uuid.New(), Name: "Ana López"}}, nil
}

func (m *memStore) CreateCustomers(_ context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	return customers, nil
}

type memSales struct {
	payloads []map[string]any
}

func (m *memSales) InsertSale(_ context.Context, payload map[string]any) (domain.SaleRecord, error) {
	m.payloads = append(m.payloads, payload)
	folio, _ := payload["folio"].(string)
	return domain.SaleRecord{Folio: folio}, nil
}

func (m *memSales) ListRecent(_ context.Context, _ int) ([]domain.SaleRecord, error) {
	return nil, nil
}

type stubReporter struct{}

func (stubReporter) Today(_ context.Context) (report.Summary, error) {
	return report.Summary{
		Day:           time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
		Total:         decimal.RequireFromString("1234.5"),
		Transactions:  4,
		AverageTicket: decimal.RequireFromString("308.63"),
		WebSales:      3,
		ByPaymentMethod: map[domain.PaymentMethod]decimal.Decimal{
			domain.PaymentCard: decimal.RequireFromString("1000"),
			domain.PaymentCash: decimal.RequireFromString("234.5"),
		},
	}, nil
}

func newTestConsole(t *testing.T, opts ...Option) (*Console, *memStore, *memSales) {
	t.Helper()

	store := &memStore{products: []domain.Product{
		{ID: uuid.New(), Name: "Soda", Price: decimal.RequireFromString("10"), Stock: 2, Barcode: "7501", Category: "Bebidas"},
		{ID: uuid.New(), Name: "Bolillo", Price: decimal.RequireFromString("2.5"), Stock: 50, Barcode: "2000", Category: "Panadería"},
	}}
	sales := &memSales{}

	cat := catalog.New(store, store)
	svc := checkout.NewService(sales, store)
	sess := session.New(cat, svc, nil)

	return New(sess, cat, stubReporter{}, nil, opts...), store, sales
}

func run(t *testing.T, c *Console, script string) string {
	t.Helper()

	var out bytes.Buffer
	require.NoError(t, c.Run(t.Context(), strings.NewReader(script), &out))
	return out.String()
}

func TestConsoleSale(t *testing.T) {
	c, store, sales := newTestConsole(t)

	out := run(t, c, strings.Join([]string{
		"search soda",
		"customer Ana López",
		"pay Tarjeta",
		"add 1",
		"inc 1",
		"add 1",
		"commit",
		"cart",
		"quit",
	}, "\n"))

	assert.Contains(t, out, "warning: Soda exceeds stock (2)")
	assert.Contains(t, out, "$30.00")
	assert.Contains(t, out, "customer: Ana López, payment: Tarjeta")
	assert.Contains(t, out, "sale WEB-")
	assert.Contains(t, out, "3 items, $30.00")
	assert.Contains(t, out, "cart is empty")

	require.Len(t, sales.payloads, 1)
	assert.Equal(t, "Ana López", sales.payloads[0]["customer_name"])
	assert.Equal(t, -1, store.products[0].Stock)
}

func TestConsoleErrors(t *testing.T) {
	c, _, sales := newTestConsole(t)

	out := run(t, c, strings.Join([]string{
		"commit",
		"add 1",
		"pay Cheque",
		"schedule mañana",
		"bogus",
		"category",
	}, "\n"))

	assert.Contains(t, out, "error: add products before confirming the sale")
	assert.Contains(t, out, "error: position[1] is not valid, have 0")
	assert.Contains(t, out, "error: payment method[Cheque] is not valid")
	assert.Contains(t, out, "error: delivery date[mañana] is not valid")
	assert.Contains(t, out, `error: unknown command "bogus"`)
	assert.Contains(t, out, "error: category is empty")
	assert.Empty(t, sales.payloads)
}

func TestConsoleScheduledOrder(t *testing.T) {
	c, _, sales := newTestConsole(t)

	run(t, c, strings.Join([]string{
		"category Panadería",
		"add 1",
		"dec 1",
		"add 1",
		"schedule 2026-10-24 recoger en tienda",
		"commit",
	}, "\n"))

	require.Len(t, sales.payloads, 1)
	assert.Equal(t, "Pendiente/Anticipo", sales.payloads[0]["payment_method"])
	assert.Equal(t, "2026-10-24", sales.payloads[0]["delivery_date"])
	assert.Equal(t, "recoger en tienda", sales.payloads[0]["notes"])
	assert.Equal(t, 2.5, sales.payloads[0]["total"])
}

func TestConsoleListings(t *testing.T) {
	c, _, _ := newTestConsole(t)

	out := run(t, c, "categories\ncustomers ana\nreport\nhelp\n")

	assert.Contains(t, out, "Bebidas")
	assert.Contains(t, out, "Panadería")
	assert.Contains(t, out, "Ana López")
	assert.Contains(t, out, "2026-10-18: 4 sales, $1,234.50 total, $308.63 average, 3 web")
	assert.Contains(t, out, "commands:")

	cash := strings.Index(out, "  Efectivo: $234.50")
	card := strings.Index(out, "  Tarjeta: $1,000.00")
	require.NotEqual(t, -1, cash)
	require.NotEqual(t, -1, card)
	assert.Less(t, cash, card)
	assert.NotContains(t, out, "Transferencia:")
}

func TestConsoleCurrency(t *testing.T) {
	c, _, _ := newTestConsole(t, WithCurrency(currency.EUR))

	out := run(t, c, "search soda\nadd 1\nreport\n")

	assert.Contains(t, out, "EUR 10.00")
	assert.Contains(t, out, "1 items")
	assert.Contains(t, out, "EUR 1,234.50 total")
	assert.NotContains(t, out, "$")
}

func TestConsoleLargeQuantity(t *testing.T) {
	c, _, _ := newTestConsole(t)

	done := make(chan string)
	go func() {
		var out bytes.Buffer
		_ = c.Run(context.Background(), strings.NewReader("search bolillo\nadd 1\ninc 1 999999999999\ndec 1 1000000000000\ncart\n"), &out)
		done <- out.String()
	}()

	select {
	case out := <-done:
		assert.Contains(t, out, "x1000000000000")
		assert.Contains(t, out, "cart is empty")
	case <-time.After(2 * time.Second):
		t.Fatal("large quantity change did not finish")
	}
}
