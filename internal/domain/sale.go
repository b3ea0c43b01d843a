package domain

import (
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

// WalkInCustomer is recorded when the operator does not pick a customer.
const WalkInCustomer = "Mostrador"

// SaleSourceWeb marks sales posted by this front end. The desktop system keys on it.
const SaleSourceWeb = "web"

const SaleStatusCompleted = "completed"

type PaymentMethod string

// Values are shared with the desktop system and must not be renamed.
const (
	PaymentCash     PaymentMethod = "Efectivo"
	PaymentCard     PaymentMethod = "Tarjeta"
	PaymentTransfer PaymentMethod = "Transferencia"
	PaymentPending  PaymentMethod = "Pendiente/Anticipo"
)

var paymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer, PaymentPending}

func PaymentMethods() []PaymentMethod {
	out := make([]PaymentMethod, len(paymentMethods))
	copy(out, paymentMethods)
	return out
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for _, m := range paymentMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("payment method[%s] is not valid", s)
}

type SaleItem struct {
	ProductID uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"total"`
}

// SaleRecord is append-only once inserted.
type SaleRecord struct {
	ID            int64
	Folio         string
	Total         decimal.Decimal
	ItemsCount    int
	Items         []SaleItem
	PaymentMethod PaymentMethod
	Status        string
	Source        string
	CustomerName  string
	DeliveryDate  *time.Time
	Notes         string
	LocalID       *int64
	CreatedAt     time.Time
}

// SaleItemsFromLines snapshots cart lines into sale items with their line totals.
func SaleItemsFromLines(lines []CartLine) []SaleItem {
	items := make([]SaleItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SaleItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: LineTotal(l),
		})
	}
	return items
}
