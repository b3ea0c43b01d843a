// Package checkout turns a cart into a committed sale.
//
// A commit moves Idle -> Validating -> Submitting -> Committed | Failed.
// Validation never touches the store. Submission is a single insert of the
// sale; stock is written back afterwards line by line, best-effort.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"strings"
	"sync/atomic"
	"time"
)

var ErrCommitInProgress = errors.New("a sale commit is already in progress")

type State int32

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateCommitted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateCommitted:
		return "committed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

type Request struct {
	// CustomerName defaults to domain.WalkInCustomer.
	CustomerName string
	// PaymentMethod defaults to domain.PaymentCash.
	PaymentMethod domain.PaymentMethod

	// Scheduled marks an order for later delivery, paid as domain.PaymentPending.
	Scheduled    bool
	DeliveryDate *time.Time
	Notes        string
}

type Result struct {
	Folio      string
	Sale       domain.SaleRecord
	Total      decimal.Decimal
	ItemsCount int

	// StockErr is set when some stock write-backs failed. The sale is committed regardless.
	StockErr *domain.PartialStockUpdateError
}

type Service struct {
	sales    port.SaleRepository
	products port.ProductRepository
	folios   *FolioGenerator
	logger   *zap.Logger

	writeBackStock bool
	maxRetries     uint64
	retryInterval  time.Duration

	inFlight atomic.Bool
	state    atomic.Int32
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithFolioGenerator(g *FolioGenerator) Option {
	return func(s *Service) {
		if g != nil {
			s.folios = g
		}
	}
}

// WithRetry bounds retries of an insert that provably never reached the store.
func WithRetry(maxRetries uint64, interval time.Duration) Option {
	return func(s *Service) {
		s.maxRetries = maxRetries
		if interval > 0 {
			s.retryInterval = interval
		}
	}
}

func WithoutStockWriteBack() Option {
	return func(s *Service) {
		s.writeBackStock = false
	}
}

func NewService(sales port.SaleRepository, products port.ProductRepository, opts ...Option) *Service {
	s := &Service{
		sales:          sales,
		products:       products,
		folios:         NewFolioGenerator(DefaultFolioPrefix, nil),
		logger:         zap.NewNop(),
		writeBackStock: true,
		maxRetries:     2,
		retryInterval:  200 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) State() State {
	return State(s.state.Load())
}

// InFlight reports whether a commit is being submitted; triggers should stay disabled meanwhile.
func (s *Service) InFlight() bool {
	return s.inFlight.Load()
}

// Commit validates the cart, inserts the sale and clears the cart on success.
// On failure the cart is left as it was so the operator can retry.
// A commit that reached the store is never abandoned: ctx cancellation does not
// interrupt the insert or the stock write-back.
func (s *Service) Commit(ctx context.Context, cart *domain.Cart, req Request) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrCommitInProgress
	}
	defer s.inFlight.Store(false)

	s.setState(StateValidating)

	lines := cart.Lines()
	total := domain.GrandTotal(lines)
	if len(lines) == 0 || !total.IsPositive() {
		s.setState(StateFailed)
		return Result{}, domain.ErrEmptyCart
	}

	req, err := withDefaults(req)
	if err != nil {
		s.setState(StateFailed)
		return Result{}, err
	}

	folio := s.folios.Next()
	itemsCount := domain.ItemCount(lines)

	payload, serrs := NormalizeMap(buildRecord(folio, total, itemsCount, lines, req))
	for _, serr := range serrs {
		s.logger.Warn("sale payload value passed through unnormalized",
			zap.String("folio", folio), zap.Error(serr))
	}

	s.setState(StateSubmitting)

	submitCtx := context.WithoutCancel(ctx)

	sale, err := s.submit(submitCtx, payload)
	if err != nil {
		s.setState(StateFailed)
		s.logger.Error("sale submit failed", zap.String("folio", folio), zap.Error(err))
		return Result{}, fmt.Errorf("submit sale %s: %w", folio, err)
	}

	result := Result{
		Folio:      folio,
		Sale:       sale,
		Total:      total,
		ItemsCount: itemsCount,
	}

	if s.writeBackStock {
		result.StockErr = s.reconcileStock(submitCtx, folio, lines)
	}

	cart.Clear()
	s.setState(StateCommitted)

	s.logger.Info("sale committed",
		zap.String("folio", folio),
		zap.String("total", total.String()),
		zap.Int("items_count", itemsCount),
		zap.String("customer", req.CustomerName))

	return result, nil
}

func (s *Service) submit(ctx context.Context, payload map[string]any) (domain.SaleRecord, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.retryInterval
	b.MaxElapsedTime = 0

	attempt := 0
	op := func() (domain.SaleRecord, error) {
		attempt++

		sale, err := s.sales.InsertSale(ctx, payload)
		if err == nil {
			return sale, nil
		}

		// Only retry when the request provably never left this process.
		// Anything else may already have been stored under this folio. A duplicate
		// folio is never ours: earlier attempts were not sent.
		if !pgconn.SafeToRetry(err) {
			return domain.SaleRecord{}, backoff.Permanent(err)
		}

		s.logger.Warn("sale insert not sent, retrying",
			zap.Any("folio", payload["folio"]), zap.Int("attempt", attempt), zap.Error(err))
		return domain.SaleRecord{}, err
	}

	return backoff.RetryWithData(op, backoff.WithContext(backoff.WithMaxRetries(b, s.maxRetries), ctx))
}

// reconcileStock writes snapshot stock minus sold quantity back to every product.
// Each update is independent: one failure neither stops the others nor rolls the sale back.
// A concurrent writer (the desktop till) can race these updates; the last write wins.
func (s *Service) reconcileStock(ctx context.Context, folio string, lines []domain.CartLine) *domain.PartialStockUpdateError {
	var failures []*domain.StockUpdateError

	for _, line := range lines {
		newStock := line.SnapshotStock - line.Quantity

		if err := s.products.UpdateStock(ctx, line.ProductID, newStock); err != nil {
			s.logger.Warn("stock write-back failed",
				zap.String("folio", folio),
				zap.String("product_id", line.ProductID.String()),
				zap.Int("new_stock", newStock),
				zap.Error(err))

			failures = append(failures, &domain.StockUpdateError{
				ProductID: line.ProductID,
				NewStock:  newStock,
				Err:       err,
			})
		}
	}

	if len(failures) == 0 {
		return nil
	}

	return &domain.PartialStockUpdateError{Folio: folio, Failures: failures}
}

func (s *Service) setState(state State) {
	s.state.Store(int32(state))
}

func withDefaults(req Request) (Request, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		req.CustomerName = domain.WalkInCustomer
	}

	if req.Scheduled {
		req.PaymentMethod = domain.PaymentPending
	}

	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentCash
	}

	if _, err := domain.ParsePaymentMethod(string(req.PaymentMethod)); err != nil {
		return Request{}, err
	}

	return req, nil
}

// buildRecord lays the sale out under the column names the desktop system reads.
func buildRecord(folio string, total decimal.Decimal, itemsCount int, lines []domain.CartLine, req Request) map[string]any {
	record := map[string]any{
		"folio":          folio,
		"total":          total,
		"items_count":    itemsCount,
		"items_data":     domain.SaleItemsFromLines(lines),
		"payment_method": req.PaymentMethod,
		"status":         domain.SaleStatusCompleted,
		"source":         domain.SaleSourceWeb,
		"customer_name":  req.CustomerName,
		"local_id":       nil,
	}

	if req.Scheduled {
		if req.DeliveryDate != nil {
			record["delivery_date"] = req.DeliveryDate.Format(time.DateOnly)
		}
		if req.Notes != "" {
			record["notes"] = req.Notes
		}
	}

	return record
}
