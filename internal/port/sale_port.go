package port

import (
	"context"
	"github.com/nikolayk812/vertex-pos/internal/domain"
)

type SaleRepository interface {
	// InsertSale stores a normalized payload keyed by the sales column names.
	InsertSale(ctx context.Context, payload map[string]any) (domain.SaleRecord, error)
	ListRecent(ctx context.Context, limit int) ([]domain.SaleRecord, error)
}
