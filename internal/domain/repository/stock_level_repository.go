package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// StockLevelRepository define el puerto para la tabla de stock por
// bodega+artículo. Get y GetForUpdate devuelven una fila en cero (no error)
// cuando el par aún no existe: la fila se materializa en el primer Upsert.
type StockLevelRepository interface {
	Get(warehouseID, itemID string) (*entity.StockLevel, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Es el único
	// control de concurrencia del ledger: dos movimientos sobre el mismo par
	// se serializan aquí.
	GetForUpdate(warehouseID, itemID string) (*entity.StockLevel, error)
	Upsert(level *entity.StockLevel) error
	ListByWarehouse(warehouseID string, limit, offset int) ([]*entity.StockLevel, error)
	ListByItem(itemID string) ([]*entity.StockLevel, error)
}
