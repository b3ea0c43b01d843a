// Package console is the line-oriented till used by the operator.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/report"
	"github.com/nikolayk812/vertex-pos/internal/session"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/currency"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

const help = `commands:
  search [text]            find products by name or barcode
  category <name> [text]   find products in a category
  categories               list product categories
  add <n>                  add result n of the last search
  inc <n> [qty] | dec <n> [qty] | rm <n>
                           change cart line n
  cart                     show the cart
  customers [text]         find customers
  customer [name]          set the customer, blank for walk-in
  pay <method>             Efectivo, Tarjeta, Transferencia
  schedule <YYYY-MM-DD> [notes]
                           deliver later, paid as Pendiente/Anticipo
  commit                   post the sale
  cancel                   empty the cart
  report                   today's sales
  quit`

type Categories interface {
	Categories(ctx context.Context) ([]string, error)
}

type Reporter interface {
	Today(ctx context.Context) (report.Summary, error)
}

type Console struct {
	sess       *session.Session
	categories Categories
	reporter   Reporter
	logger     *zap.Logger
	currency   currency.Unit

	out     io.Writer
	results []domain.Product
}

type Option func(*Console)

// WithCurrency sets the unit every amount is shown in.
func WithCurrency(unit currency.Unit) Option {
	return func(c *Console) {
		c.currency = unit
	}
}

func New(sess *session.Session, categories Categories, reporter Reporter, logger *zap.Logger, opts ...Option) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Console{
		sess:       sess,
		categories: categories,
		reporter:   reporter,
		logger:     logger,
		currency:   domain.DefaultCurrency,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run reads commands from in until quit, EOF or ctx is done.
func (c *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	c.out = out

	scanner := bufio.NewScanner(in)

	c.printf("vertex-pos till, type help for commands\n")
	c.prompt()

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			c.prompt()
			continue
		}

		cmd, args, _ := strings.Cut(line, " ")
		args = strings.TrimSpace(args)

		if cmd == "quit" || cmd == "exit" {
			return nil
		}

		if err := c.dispatch(ctx, cmd, args); err != nil {
			c.printf("error: %v\n", err)
		}
		c.prompt()
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner.Scan: %w", err)
	}

	return nil
}

func (c *Console) dispatch(ctx context.Context, cmd, args string) error {
	switch cmd {
	case "help":
		c.printf("%s\n", help)
	case "search":
		return c.search(ctx, args, "")
	case "category":
		category, text, _ := strings.Cut(args, " ")
		if category == "" {
			return errors.New("category is empty")
		}
		return c.search(ctx, text, category)
	case "categories":
		cats, err := c.categories.Categories(ctx)
		for _, cat := range cats {
			c.printf("  %s\n", cat)
		}
		return err
	case "add":
		n, err := c.index(args, len(c.results))
		if err != nil {
			return err
		}
		line, err := c.sess.SelectProduct(ctx, c.results[n].ID)
		if err != nil {
			return err
		}
		if line.Quantity > line.SnapshotStock {
			c.printf("warning: %s exceeds stock (%d)\n", line.Name, line.SnapshotStock)
		}
		c.showCart()
	case "inc", "dec":
		return c.adjust(cmd, args)
	case "rm":
		line, err := c.cartLine(args)
		if err != nil {
			return err
		}
		if err := c.sess.RemoveLine(line.ProductID); err != nil {
			return err
		}
		c.showCart()
	case "cart":
		c.showCart()
	case "customers":
		found, err := c.sess.SearchCustomers(ctx, args)
		for _, cu := range found {
			c.printf("  %s\n", cu.Name)
		}
		return err
	case "customer":
		return c.sess.SelectCustomer(args)
	case "pay":
		return c.sess.SelectPayment(args)
	case "schedule":
		return c.schedule(args)
	case "commit":
		return c.commit(ctx)
	case "cancel":
		if err := c.sess.Cancel(); err != nil {
			return err
		}
		c.printf("cart emptied\n")
	case "report":
		return c.report(ctx)
	default:
		return fmt.Errorf("unknown command %q, type help", cmd)
	}

	return nil
}

func (c *Console) search(ctx context.Context, text, category string) error {
	found, err := c.sess.Search(ctx, text, category)
	c.results = found

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for i, p := range found {
		fmt.Fprintf(w, "  %d\t%s\t%s\t%s\tstock %d\n", i+1, p.Name, p.Barcode, c.money(p.Price), p.Stock)
	}
	_ = w.Flush()

	if err != nil {
		return fmt.Errorf("catalog unavailable, showing no products: %w", err)
	}
	if len(found) == 0 {
		c.printf("no products found\n")
	}

	return nil
}

func (c *Console) adjust(cmd, args string) error {
	pos, qtyArg, _ := strings.Cut(args, " ")

	line, err := c.cartLine(pos)
	if err != nil {
		return err
	}

	qty := 1
	if qtyArg = strings.TrimSpace(qtyArg); qtyArg != "" {
		qty, err = strconv.Atoi(qtyArg)
		if err != nil || qty <= 0 {
			return fmt.Errorf("quantity[%s] is not valid", qtyArg)
		}
	}
	if cmd == "dec" {
		qty = -qty
	}

	if err := c.sess.AdjustLineQuantity(line.ProductID, qty); err != nil {
		return err
	}

	c.showCart()
	return nil
}

func (c *Console) schedule(args string) error {
	dateArg, notes, _ := strings.Cut(args, " ")

	date, err := time.Parse(time.DateOnly, dateArg)
	if err != nil {
		return fmt.Errorf("delivery date[%s] is not valid, want YYYY-MM-DD", dateArg)
	}

	return c.sess.ScheduleOrder(date, notes)
}

func (c *Console) commit(ctx context.Context) error {
	result, err := c.sess.RequestCommit(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			return errors.New("add products before confirming the sale")
		}
		if errors.Is(err, domain.ErrRemoteUnavailable) {
			c.logger.Warn("commit failed, cart kept", zap.Error(err))
			return fmt.Errorf("store unavailable, cart kept for retry: %w", err)
		}
		return err
	}

	c.printf("sale %s: %d items, %s\n", result.Folio, result.ItemsCount, c.money(result.Total))

	if result.StockErr != nil {
		c.printf("warning: %d stock update(s) failed, check inventory\n", len(result.StockErr.Failures))
	}

	return nil
}

func (c *Console) report(ctx context.Context) error {
	s, err := c.reporter.Today(ctx)
	if err != nil {
		return err
	}

	c.printf("%s: %d sales, %s total, %s average, %d web\n",
		s.Day.Format(time.DateOnly), s.Transactions,
		c.money(s.Total), c.money(s.AverageTicket), s.WebSales)

	for _, m := range domain.PaymentMethods() {
		if total, ok := s.ByPaymentMethod[m]; ok {
			c.printf("  %s: %s\n", m, c.money(total))
		}
	}

	return nil
}

func (c *Console) showCart() {
	view := c.sess.State()

	if len(view.Lines) == 0 {
		c.printf("cart is empty\n")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for i, l := range view.Lines {
		fmt.Fprintf(w, "  %d\t%s\tx%d\t%s\t%s\n", i+1, l.Name, l.Quantity,
			c.money(l.UnitPrice), c.money(domain.LineTotal(l)))
	}
	fmt.Fprintf(w, "\t%d items\t\t\t%s\n", view.ItemCount, c.money(view.GrandTotal))
	_ = w.Flush()

	c.printf("customer: %s, payment: %s\n", view.Customer, view.PaymentMethod)
}

func (c *Console) cartLine(arg string) (domain.CartLine, error) {
	lines := c.sess.State().Lines

	n, err := c.index(arg, len(lines))
	if err != nil {
		return domain.CartLine{}, err
	}

	return lines[n], nil
}

// index parses a 1-based position.
func (c *Console) index(arg string, size int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > size {
		return 0, fmt.Errorf("position[%s] is not valid, have %d", arg, size)
	}
	return n - 1, nil
}

func (c *Console) money(amount decimal.Decimal) string {
	return domain.NewMoney(amount, c.currency).String()
}

func (c *Console) prompt() {
	c.printf("> ")
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}
