package repository

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vertex-pos/internal/db"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/port"
)

type productRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *productRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, storeErr("q.ListProducts", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, mapProductToDomain(db.GetProductRow(row)))
	}

	return products, nil
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%s]: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, storeErr("q.GetProduct", err)
	}

	return mapProductToDomain(row), nil
}

func (r *productRepository) UpdateStock(ctx context.Context, id uuid.UUID, stock int) error {
	rowsAffected, err := r.q.UpdateProductStock(ctx, db.UpdateProductStockParams{
		ID:    id,
		Stock: int32(stock),
	})
	if err != nil {
		return storeErr("q.UpdateProductStock", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("product[%s]: %w", id, domain.ErrProductNotFound)
	}

	return nil
}

func (r *productRepository) CreateProducts(ctx context.Context, products []domain.Product) ([]domain.Product, error) {
	for _, p := range products {
		if p.Name == "" {
			return nil, fmt.Errorf("product name is empty")
		}
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) ([]domain.Product, error) {
		created := make([]domain.Product, 0, len(products))

		for _, p := range products {
			row, err := q.CreateProduct(ctx, db.CreateProductParams{
				Name:     p.Name,
				Price:    p.Price,
				Stock:    int32(p.Stock),
				Barcode:  p.Barcode,
				Category: optionalString(p.Category),
			})
			if err != nil {
				return nil, storeErr("q.CreateProduct", err)
			}

			created = append(created, mapProductToDomain(db.GetProductRow(row)))
		}

		return created, nil
	})
}

func mapProductToDomain(row db.GetProductRow) domain.Product {
	var category string
	if row.Category != nil {
		category = *row.Category
	}

	return domain.Product{
		ID:       row.ID,
		Name:     row.Name,
		Price:    row.Price,
		Stock:    int(row.Stock),
		Barcode:  row.Barcode,
		Category: category,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
