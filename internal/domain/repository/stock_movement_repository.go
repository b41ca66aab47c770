package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockMovementRepository define el puerto de persistencia del kardex.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByWarehouse(warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByItem(itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
