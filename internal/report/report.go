// Package report computes the daily sales summary shown next to the till.
package report

import (
	"context"
	"fmt"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/port"
	"github.com/shopspring/decimal"
	"time"
	_ "time/tzdata"
)

const (
	DefaultTimezone = "America/Mexico_City"
	DefaultWindow   = 500
)

type Summary struct {
	Day             time.Time
	Total           decimal.Decimal
	Transactions    int
	AverageTicket   decimal.Decimal
	WebSales        int
	ByPaymentMethod map[domain.PaymentMethod]decimal.Decimal
}

// Summarize aggregates the sales created on the calendar day of day, as seen in loc.
// Sales that are not completed are ignored.
func Summarize(sales []domain.SaleRecord, day time.Time, loc *time.Location) Summary {
	if loc == nil {
		loc = time.UTC
	}

	y, m, d := day.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)

	s := Summary{
		Day:             start,
		Total:           decimal.Zero,
		AverageTicket:   decimal.Zero,
		ByPaymentMethod: make(map[domain.PaymentMethod]decimal.Decimal),
	}

	for _, sale := range sales {
		if sale.Status != domain.SaleStatusCompleted {
			continue
		}
		if sale.CreatedAt.Before(start) || !sale.CreatedAt.Before(end) {
			continue
		}

		s.Total = s.Total.Add(sale.Total)
		s.Transactions++
		if sale.Source == domain.SaleSourceWeb {
			s.WebSales++
		}

		acc, ok := s.ByPaymentMethod[sale.PaymentMethod]
		if !ok {
			acc = decimal.Zero
		}
		s.ByPaymentMethod[sale.PaymentMethod] = acc.Add(sale.Total)
	}

	if s.Transactions > 0 {
		s.AverageTicket = s.Total.Div(decimal.NewFromInt(int64(s.Transactions))).Round(2)
	}

	return s
}

type Reporter struct {
	sales  port.SaleRepository
	loc    *time.Location
	window int
	now    func() time.Time
}

func NewReporter(sales port.SaleRepository, loc *time.Location, window int) *Reporter {
	if loc == nil {
		loc = time.UTC
	}
	if window <= 0 {
		window = DefaultWindow
	}

	return &Reporter{
		sales:  sales,
		loc:    loc,
		window: window,
		now:    time.Now,
	}
}

// Today summarizes the latest sales for the current day.
// Days with more sales than the window are under-counted.
func (r *Reporter) Today(ctx context.Context) (Summary, error) {
	sales, err := r.sales.ListRecent(ctx, r.window)
	if err != nil {
		return Summary{}, fmt.Errorf("sales.ListRecent: %w", err)
	}

	return Summarize(sales, r.now(), r.loc), nil
}
