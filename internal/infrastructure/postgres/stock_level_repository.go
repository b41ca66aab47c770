package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL
// (usable con pool o tx).
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// Get obtiene el nivel de stock; par inexistente devuelve una fila en cero.
func (r *StockLevelRepo) Get(warehouseID, itemID string) (*entity.StockLevel, error) {
	query := `
		SELECT warehouse_id, item_id, quantity, updated_at
		FROM stock_levels WHERE warehouse_id = $1 AND item_id = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, warehouseID, itemID).Scan(
		&s.WarehouseID, &s.ItemID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{WarehouseID: warehouseID, ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el nivel y bloquea la fila (SELECT FOR UPDATE). Par
// inexistente devuelve una fila en cero; en ese caso no hay fila que
// bloquear y el Upsert posterior la materializa.
func (r *StockLevelRepo) GetForUpdate(warehouseID, itemID string) (*entity.StockLevel, error) {
	query := `
		SELECT warehouse_id, item_id, quantity, updated_at
		FROM stock_levels WHERE warehouse_id = $1 AND item_id = $2
		FOR UPDATE`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, warehouseID, itemID).Scan(
		&s.WarehouseID, &s.ItemID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{WarehouseID: warehouseID, ItemID: itemID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock level for update: %w", err)
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad; el ON CONFLICT mantiene una sola
// fila por par (warehouse_id, item_id).
func (r *StockLevelRepo) Upsert(level *entity.StockLevel) error {
	query := `
		INSERT INTO stock_levels (warehouse_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (warehouse_id, item_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, level.WarehouseID, level.ItemID, level.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

// ListByWarehouse lista los niveles de una bodega.
func (r *StockLevelRepo) ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	query := `
		SELECT warehouse_id, item_id, quantity, updated_at
		FROM stock_levels WHERE warehouse_id = $1
		ORDER BY item_id
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, warehouseID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	return scanStockLevels(rows)
}

// ListByItem lista el nivel de un artículo en todas las bodegas.
func (r *StockLevelRepo) ListByItem(itemID string) ([]*entity.StockLevel, error) {
	query := `
		SELECT warehouse_id, item_id, quantity, updated_at
		FROM stock_levels WHERE item_id = $1
		ORDER BY warehouse_id`
	rows, err := r.q.Query(context.Background(), query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by item: %w", err)
	}
	defer rows.Close()
	return scanStockLevels(rows)
}

func scanStockLevels(rows pgx.Rows) ([]*entity.StockLevel, error) {
	var levels []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.WarehouseID, &s.ItemID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		levels = append(levels, &s)
	}
	return levels, rows.Err()
}
