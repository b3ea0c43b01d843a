package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"time"
)

type Product struct {
	ID       uuid.UUID
	Name     string
	Price    decimal.Decimal
	Stock    int
	Barcode  string
	Category string
}

type Customer struct {
	ID       uuid.UUID
	Name     string
	Email    *string
	Phone    *string
	Company  *string
	Address  *string
	Birthday *time.Time
	RFC      *string
}
