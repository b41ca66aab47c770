package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// Movement describe la operación que origina una mutación del ledger, para
// el registro de auditoría (kardex).
type Movement struct {
	TransactionID string // agrupa las líneas de una misma operación
	Kind          string // entity.MovementKind*
	Reference     string // ID del documento origen
	Date          time.Time
}

// Increase suma qty al stock de (warehouseID, itemID). La fila se crea en 0
// si no existe; nunca falla por fila ausente y no tiene tope superior.
// Bloquea la fila (SELECT FOR UPDATE) y escribe el movimiento de auditoría
// en la misma transacción.
func Increase(
	stock repository.StockLevelRepository,
	movements repository.StockMovementRepository,
	warehouseID, itemID string,
	qty decimal.Decimal,
	mov Movement,
) (*entity.StockLevel, error) {
	level, err := stock.GetForUpdate(warehouseID, itemID)
	if err != nil {
		return nil, err
	}
	level.Quantity = level.Quantity.Add(qty)
	level.UpdatedAt = mov.Date
	if err := stock.Upsert(level); err != nil {
		return nil, err
	}
	if err := recordMovement(movements, warehouseID, itemID, qty, mov); err != nil {
		return nil, err
	}
	return level, nil
}

// Decrease resta qty del stock de (warehouseID, itemID). Con
// allowNegative=false la operación falla con InsufficientStockError si la
// cantidad disponible es menor a qty, sin mutar nada; con allowNegative=true
// resta incondicionalmente y la fila puede quedar negativa.
func Decrease(
	stock repository.StockLevelRepository,
	movements repository.StockMovementRepository,
	warehouseID, itemID string,
	qty decimal.Decimal,
	allowNegative bool,
	mov Movement,
) (*entity.StockLevel, error) {
	level, err := stock.GetForUpdate(warehouseID, itemID)
	if err != nil {
		return nil, err
	}
	if !allowNegative && level.Quantity.LessThan(qty) {
		return nil, &ledger.InsufficientStockError{
			WarehouseID: warehouseID,
			Shortfalls: []ledger.Shortfall{{
				ItemID:    itemID,
				Requested: qty,
				Available: level.Quantity,
			}},
		}
	}
	level.Quantity = level.Quantity.Sub(qty)
	level.UpdatedAt = mov.Date
	if err := stock.Upsert(level); err != nil {
		return nil, err
	}
	if err := recordMovement(movements, warehouseID, itemID, qty.Neg(), mov); err != nil {
		return nil, err
	}
	return level, nil
}

func recordMovement(
	movements repository.StockMovementRepository,
	warehouseID, itemID string,
	qty decimal.Decimal,
	mov Movement,
) error {
	return movements.Create(&entity.StockMovement{
		ID:            uuid.New().String(),
		TransactionID: mov.TransactionID,
		WarehouseID:   warehouseID,
		ItemID:        itemID,
		Kind:          mov.Kind,
		Quantity:      qty,
		Reference:     mov.Reference,
		Date:          mov.Date,
		CreatedAt:     mov.Date,
	})
}
