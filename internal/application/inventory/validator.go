package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ValidateSufficiency verifica que cada demanda de salida pueda cubrirse con
// el stock disponible en warehouseID (fila ausente cuenta como 0). No falla
// en el primer faltante: acumula todos y los devuelve en un solo
// InsufficientStockError para que el usuario los corrija de una vez.
//
// Solo el traslado usa esta verificación previa; facturas y ajustes admiten
// stock negativo a propósito.
func ValidateSufficiency(
	stock repository.StockLevelRepository,
	warehouseID string,
	requirements []ledger.Requirement,
) error {
	available := make(map[string]decimal.Decimal, len(requirements))
	for _, req := range requirements {
		if _, seen := available[req.ItemID]; seen {
			continue
		}
		level, err := stock.Get(warehouseID, req.ItemID)
		if err != nil {
			return err
		}
		available[req.ItemID] = level.Quantity
	}

	if shortfalls := ledger.CheckSufficiency(requirements, available); len(shortfalls) > 0 {
		return &ledger.InsufficientStockError{WarehouseID: warehouseID, Shortfalls: shortfalls}
	}
	return nil
}
