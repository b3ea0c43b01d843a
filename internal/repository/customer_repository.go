package repository

import (
	"context"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vertex-pos/internal/db"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/port"
)

type customerRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *customerRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.q.ListCustomers(ctx)
	if err != nil {
		return nil, storeErr("q.ListCustomers", err)
	}

	customers := make([]domain.Customer, 0, len(rows))
	for _, row := range rows {
		customers = append(customers, mapCustomerToDomain(db.CreateCustomerRow(row)))
	}

	return customers, nil
}

func (r *customerRepository) CreateCustomers(ctx context.Context, customers []domain.Customer) ([]domain.Customer, error) {
	for _, c := range customers {
		if c.Name == "" {
			return nil, fmt.Errorf("customer name is empty")
		}
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) ([]domain.Customer, error) {
		created := make([]domain.Customer, 0, len(customers))

		for _, c := range customers {
			row, err := q.CreateCustomer(ctx, db.CreateCustomerParams{
				Name:     c.Name,
				Email:    c.Email,
				Phone:    c.Phone,
				Company:  c.Company,
				Address:  c.Address,
				Birthday: c.Birthday,
				Rfc:      c.RFC,
			})
			if err != nil {
				return nil, storeErr("q.CreateCustomer", err)
			}

			created = append(created, mapCustomerToDomain(row))
		}

		return created, nil
	})
}

func mapCustomerToDomain(row db.CreateCustomerRow) domain.Customer {
	return domain.Customer{
		ID:       row.ID,
		Name:     row.Name,
		Email:    row.Email,
		Phone:    row.Phone,
		Company:  row.Company,
		Address:  row.Address,
		Birthday: row.Birthday,
		RFC:      row.Rfc,
	}
}
