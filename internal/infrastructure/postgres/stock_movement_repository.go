package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación de StockMovementRepository (kardex).
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento de auditoría.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, transaction_id, warehouse_id, item_id, kind, quantity, reference, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.TransactionID, m.WarehouseID, m.ItemID, m.Kind, m.Quantity,
		nullIfEmpty(m.Reference), m.Date, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByWarehouse lista el kardex de una bodega, más reciente primero.
func (r *StockMovementRepo) ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, warehouse_id, item_id, kind, quantity, COALESCE(reference, ''), date, created_at
		FROM stock_movements
		WHERE warehouse_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, warehouseID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by warehouse: %w", err)
	}
	defer rows.Close()
	return scanStockMovements(rows)
}

// ListByItem lista el kardex de un artículo, más reciente primero.
func (r *StockMovementRepo) ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, transaction_id, warehouse_id, item_id, kind, quantity, COALESCE(reference, ''), date, created_at
		FROM stock_movements
		WHERE item_id = $1
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, itemID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by item: %w", err)
	}
	defer rows.Close()
	return scanStockMovements(rows)
}

func scanStockMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var movements []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.TransactionID, &m.WarehouseID, &m.ItemID, &m.Kind, &m.Quantity, &m.Reference, &m.Date, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}
