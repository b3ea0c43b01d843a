package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/vertex-pos/internal/db"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/nikolayk812/vertex-pos/internal/port"
)

const uniqueViolation = "23505"

type saleRepository struct {
	q *db.Queries
}

func NewSale(pool *pgxpool.Pool) port.SaleRepository {
	return &saleRepository{
		q: db.New(pool),
	}
}

func NewSaleWithTx(tx pgx.Tx) port.SaleRepository {
	return &saleRepository{
		q: db.New(tx),
	}
}

func (r *saleRepository) InsertSale(ctx context.Context, payload map[string]any) (domain.SaleRecord, error) {
	folio, _ := payload["folio"].(string)
	if folio == "" {
		return domain.SaleRecord{}, fmt.Errorf("folio is empty")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("json.Marshal: %w", err)
	}

	row, err := r.q.InsertSale(ctx, raw)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.SaleRecord{}, fmt.Errorf("folio[%s]: %w", folio, domain.ErrDuplicateFolio)
		}
		return domain.SaleRecord{}, storeErr("q.InsertSale", err)
	}

	sale, err := mapSaleToDomain(row)
	if err != nil {
		return domain.SaleRecord{}, fmt.Errorf("mapSaleToDomain: %w", err)
	}

	return sale, nil
}

func (r *saleRepository) ListRecent(ctx context.Context, limit int) ([]domain.SaleRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	rows, err := r.q.ListRecentSales(ctx, int32(limit))
	if err != nil {
		return nil, storeErr("q.ListRecentSales", err)
	}

	sales, err := mapSalesToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapSalesToDomain: %w", err)
	}

	return sales, nil
}

func mapSaleToDomain(row db.Sale) (domain.SaleRecord, error) {
	var items []domain.SaleItem
	if err := json.Unmarshal(row.ItemsData, &items); err != nil {
		return domain.SaleRecord{}, fmt.Errorf("items_data of sale[%s] is not valid: %w", row.Folio, err)
	}

	var notes string
	if row.Notes != nil {
		notes = *row.Notes
	}

	return domain.SaleRecord{
		ID:            row.ID,
		Folio:         row.Folio,
		Total:         row.Total,
		ItemsCount:    int(row.ItemsCount),
		Items:         items,
		PaymentMethod: domain.PaymentMethod(row.PaymentMethod),
		Status:        row.Status,
		Source:        row.Source,
		CustomerName:  row.CustomerName,
		DeliveryDate:  row.DeliveryDate,
		Notes:         notes,
		LocalID:       row.LocalID,
		CreatedAt:     row.CreatedAt,
	}, nil
}

func mapSalesToDomain(rows []db.Sale) ([]domain.SaleRecord, error) {
	var sales []domain.SaleRecord

	for _, row := range rows {
		sale, err := mapSaleToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapSaleToDomain: %w", err)
		}

		sales = append(sales, sale)
	}

	return sales, nil
}
