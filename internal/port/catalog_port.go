package port

import (
	"context"
	"github.com/google/uuid"
	"github.com/nikolayk812/vertex-pos/internal/domain"
)

type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	CreateProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error)
}

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	CreateCustomers(ctx context.Context, customers []domain.Customer) ([]domain.Customer, error)
}
