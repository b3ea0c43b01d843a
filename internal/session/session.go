// Package session holds one operator's purchase in progress and turns their
// intents into cart mutations and sale commits.
package session

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/vertex-pos/internal/checkout"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Catalog interface {
	Product(ctx context.Context, id uuid.UUID) (domain.Product, error)
	SearchProducts(ctx context.Context, text, category string) ([]domain.Product, error)
	SearchCustomers(ctx context.Context, text string) ([]domain.Customer, error)
	Invalidate(ctx context.Context)
}

type Committer interface {
	Commit(ctx context.Context, cart *domain.Cart, req checkout.Request) (checkout.Result, error)
	State() checkout.State
}

// View is what the till renders after every intent.
type View struct {
	ID         uuid.UUID
	Lines      []domain.CartLine
	GrandTotal decimal.Decimal
	ItemCount  int
	Oversold   []domain.CartLine

	Customer      string
	PaymentMethod domain.PaymentMethod
	Scheduled     bool
	DeliveryDate  *time.Time
	Notes         string

	CommitState checkout.State
	LastResult  *checkout.Result
	LastErr     error
}

// Session is created per operator at sign-in and dropped at sign-out.
// Its methods may be called from several goroutines.
type Session struct {
	id        uuid.UUID
	catalog   Catalog
	committer Committer
	logger    *zap.Logger

	mu sync.Mutex
	// committing is only set and cleared with mu held.
	committing atomic.Bool

	cart     *domain.Cart
	customer string
	payment  domain.PaymentMethod

	scheduled    bool
	deliveryDate *time.Time
	notes        string

	lastResult *checkout.Result
	lastErr    error
}

func New(catalog Catalog, committer Committer, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}

	id := uuid.New()

	return &Session{
		id:        id,
		catalog:   catalog,
		committer: committer,
		logger:    logger.With(zap.String("session_id", id.String())),
		cart:      domain.NewCart(),
	}
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

// SelectProduct adds one unit of the product as currently cached.
func (s *Session) SelectProduct(ctx context.Context, id uuid.UUID) (domain.CartLine, error) {
	if err := s.guard(); err != nil {
		return domain.CartLine{}, err
	}

	p, err := s.catalog.Product(ctx, id)
	if err != nil {
		return domain.CartLine{}, fmt.Errorf("catalog.Product: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return domain.CartLine{}, err
	}

	line := s.cart.AddOrIncrement(p)
	if line.Quantity > line.SnapshotStock {
		s.logger.Info("line exceeds stock seen at add time",
			zap.String("product_id", id.String()),
			zap.Int("quantity", line.Quantity),
			zap.Int("snapshot_stock", line.SnapshotStock))
	}

	return line, nil
}

// AdjustLineQuantity changes a line by delta units; a line reaching zero is removed.
func (s *Session) AdjustLineQuantity(id uuid.UUID, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return err
	}

	if err := s.cart.AdjustQuantity(id, delta); err != nil {
		return fmt.Errorf("product[%s]: %w", id, err)
	}

	return nil
}

func (s *Session) RemoveLine(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return err
	}

	if err := s.cart.RemoveLine(id); err != nil {
		return fmt.Errorf("product[%s]: %w", id, err)
	}

	return nil
}

// SelectCustomer records the customer name; blank means walk-in.
func (s *Session) SelectCustomer(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return err
	}

	s.customer = strings.TrimSpace(name)
	return nil
}

func (s *Session) SelectPayment(method string) error {
	m, err := domain.ParsePaymentMethod(method)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return err
	}

	s.payment = m
	return nil
}

// ScheduleOrder turns the sale into an order for later delivery, paid as pending.
func (s *Session) ScheduleOrder(deliveryDate time.Time, notes string) error {
	if deliveryDate.IsZero() {
		return errors.New("delivery date is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return err
	}

	s.scheduled = true
	s.deliveryDate = &deliveryDate
	s.notes = strings.TrimSpace(notes)
	return nil
}

// RequestCommit posts the cart as a sale. On success the cart and the sale
// options are reset and the catalog is invalidated so the next read shows the
// new stock. On failure everything is kept for a retry.
//
// The lock is not held while the sale is submitted, so State stays readable;
// every mutation is rejected until the commit resolves.
func (s *Session) RequestCommit(ctx context.Context) (checkout.Result, error) {
	s.mu.Lock()
	if !s.committing.CompareAndSwap(false, true) {
		s.mu.Unlock()
		return checkout.Result{}, checkout.ErrCommitInProgress
	}

	cart := s.cart.Clone()
	req := checkout.Request{
		CustomerName:  s.customer,
		PaymentMethod: s.payment,
		Scheduled:     s.scheduled,
		DeliveryDate:  s.deliveryDate,
		Notes:         s.notes,
	}
	s.mu.Unlock()

	result, err := s.committer.Commit(ctx, cart, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.committing.Store(false)

	if err != nil {
		s.lastErr = err
		s.lastResult = nil
		return checkout.Result{}, err
	}

	s.lastResult = &result
	s.lastErr = nil
	if result.StockErr != nil {
		s.lastErr = result.StockErr
	}

	s.cart.Clear()
	s.resetOptions()
	s.catalog.Invalidate(ctx)

	return result, nil
}

// Cancel abandons the purchase in progress.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.guard(); err != nil {
		return err
	}

	s.cart.Clear()
	s.resetOptions()
	s.lastErr = nil

	return nil
}

// State never waits on a commit in flight: the lines shown are the ones being submitted.
func (s *Session) State() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.cart.Lines()

	return View{
		ID:            s.id,
		Lines:         lines,
		GrandTotal:    domain.GrandTotal(lines),
		ItemCount:     domain.ItemCount(lines),
		Oversold:      s.cart.Oversold(),
		Customer:      s.customerName(),
		PaymentMethod: s.paymentMethod(),
		Scheduled:     s.scheduled,
		DeliveryDate:  s.deliveryDate,
		Notes:         s.notes,
		CommitState:   s.committer.State(),
		LastResult:    s.lastResult,
		LastErr:       s.lastErr,
	}
}

func (s *Session) Search(ctx context.Context, text, category string) ([]domain.Product, error) {
	return s.catalog.SearchProducts(ctx, text, category)
}

func (s *Session) SearchCustomers(ctx context.Context, text string) ([]domain.Customer, error) {
	return s.catalog.SearchCustomers(ctx, text)
}

// guard rejects mutations while a commit is in flight. Callers other than
// SelectProduct's early check must hold mu.
func (s *Session) guard() error {
	if s.committing.Load() {
		return checkout.ErrCommitInProgress
	}
	return nil
}

func (s *Session) resetOptions() {
	s.customer = ""
	s.payment = ""
	s.scheduled = false
	s.deliveryDate = nil
	s.notes = ""
}

func (s *Session) customerName() string {
	if s.customer == "" {
		return domain.WalkInCustomer
	}
	return s.customer
}

func (s *Session) paymentMethod() domain.PaymentMethod {
	switch {
	case s.scheduled:
		return domain.PaymentPending
	case s.payment == "":
		return domain.PaymentCash
	default:
		return s.payment
	}
}
