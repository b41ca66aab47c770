package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la cantidad disponible de un artículo en una bodega.
// Clave compuesta (warehouse_id, item_id); la fila se crea perezosamente en 0
// con el primer movimiento que la toca y nunca se borra en operación normal.
// La cantidad puede ser negativa cuando la política del movimiento lo permite.
type StockLevel struct {
	WarehouseID string
	ItemID      string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}
