package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockQueryUseCase consultas de solo lectura sobre niveles de stock y
// kardex. Usa repositorios atados al pool (sin transacción).
type StockQueryUseCase struct {
	stockRepo    repository.StockLevelRepository
	movementRepo repository.StockMovementRepository
}

// NewStockQueryUseCase construye el caso de uso.
func NewStockQueryUseCase(
	stockRepo repository.StockLevelRepository,
	movementRepo repository.StockMovementRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{stockRepo: stockRepo, movementRepo: movementRepo}
}

// GetLevel devuelve el nivel de un par (bodega, artículo); par inexistente
// devuelve cantidad 0, no error.
func (uc *StockQueryUseCase) GetLevel(ctx context.Context, warehouseID, itemID string) (*entity.StockLevel, error) {
	if warehouseID == "" || itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.Get(warehouseID, itemID)
}

// ListByWarehouse devuelve los niveles de una bodega.
func (uc *StockQueryUseCase) ListByWarehouse(ctx context.Context, warehouseID string, limit, offset int) ([]*entity.StockLevel, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByWarehouse(warehouseID, limit, offset)
}

// ListByItem devuelve el nivel de un artículo en todas las bodegas.
func (uc *StockQueryUseCase) ListByItem(ctx context.Context, itemID string) ([]*entity.StockLevel, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListByItem(itemID)
}

// MovementsByItem devuelve el kardex de un artículo con filtros de fecha.
func (uc *StockQueryUseCase) MovementsByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByItem(itemID, from, to, limit, offset)
}

// MovementsByWarehouse devuelve el kardex de una bodega con filtros de fecha.
func (uc *StockQueryUseCase) MovementsByWarehouse(ctx context.Context, warehouseID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.movementRepo.ListByWarehouse(warehouseID, from, to, limit, offset)
}
