package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// AdjustmentUseCase orquesta los ajustes manuales de stock. Aplicar (0→1)
// suma o resta cada línea según su signo, con negativo permitido; el estado
// Applied es terminal: no existe transición inversa.
type AdjustmentUseCase struct {
	txRunner       TxRunner
	adjustmentRepo repository.AdjustmentRepository
	itemRepo       repository.ItemRepository
	warehouseRepo  repository.WarehouseRepository
}

// NewAdjustmentUseCase construye el caso de uso.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	adjustmentRepo repository.AdjustmentRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner:       txRunner,
		adjustmentRepo: adjustmentRepo,
		itemRepo:       itemRepo,
		warehouseRepo:  warehouseRepo,
	}
}

// Create crea un ajuste pendiente.
func (uc *AdjustmentUseCase) Create(ctx context.Context, in dto.CreateAdjustmentRequest) (*entity.Adjustment, error) {
	if in.WarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != entity.AdjustmentTypePositive && in.Type != entity.AdjustmentTypeNegative {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.warehouseRepo.GetByID(in.WarehouseID); err != nil {
		return nil, err
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	adjustment := &entity.Adjustment{
		ID:          uuid.New().String(),
		Code:        newDocumentCode("AJU"),
		Description: in.Description,
		WarehouseID: in.WarehouseID,
		Type:        in.Type,
		Status:      entity.AdjustmentStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range lines {
		lines[i].AdjustmentID = adjustment.ID
	}
	adjustment.Lines = lines

	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		return tx.Adjustments.Create(adjustment)
	})
	if err != nil {
		return nil, err
	}
	return adjustment, nil
}

// Apply ejecuta pendiente → aplicado. Primero valida TODAS las líneas y
// acumula los errores (sin tocar el ledger); luego, en una transacción,
// hace el compare-and-swap de estado y aplica cada línea según su signo.
// Un ajuste ya aplicado devuelve ErrAlreadyProcessed: no-op informativo,
// nunca un doble descuento.
func (uc *AdjustmentUseCase) Apply(ctx context.Context, id string) error {
	adjustment, err := uc.adjustmentRepo.GetByID(id)
	if err != nil {
		return err
	}

	var problems []string
	for i, line := range adjustment.Lines {
		if line.Amount.IsZero() {
			problems = append(problems, fmt.Sprintf("línea %d: cantidad cero", i+1))
		}
		if _, err := uc.itemRepo.GetByID(line.ItemID); err != nil {
			problems = append(problems, fmt.Sprintf("línea %d: artículo %s no encontrado", i+1, line.ItemID))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}

	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		ok, err := tx.Adjustments.UpdateStatusIf(id, entity.AdjustmentStatusPending, entity.AdjustmentStatusApplied)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrAlreadyProcessed
		}

		mov := Movement{
			TransactionID: uuid.New().String(),
			Kind:          entity.MovementKindAdjustment,
			Reference:     adjustment.ID,
			Date:          time.Now(),
		}
		for _, line := range adjustment.Lines {
			if line.Amount.IsNegative() {
				if _, err := Decrease(tx.Stock, tx.Movements, adjustment.WarehouseID, line.ItemID, line.Amount.Abs(), true, mov); err != nil {
					return err
				}
				continue
			}
			if _, err := Increase(tx.Stock, tx.Movements, adjustment.WarehouseID, line.ItemID, line.Amount, mov); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID devuelve el ajuste con sus líneas.
func (uc *AdjustmentUseCase) GetByID(ctx context.Context, id string) (*entity.Adjustment, error) {
	return uc.adjustmentRepo.GetByID(id)
}

// List devuelve ajustes paginados (sin líneas).
func (uc *AdjustmentUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Adjustment, error) {
	return uc.adjustmentRepo.List(limit, offset)
}

// buildLines valida existencia de artículos y cantidades con signo (≠ 0).
func (uc *AdjustmentUseCase) buildLines(in []dto.AdjustmentLineRequest) ([]entity.AdjustmentLine, error) {
	lines := make([]entity.AdjustmentLine, 0, len(in))
	for _, l := range in {
		if l.ItemID == "" || l.Amount.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.itemRepo.GetByID(l.ItemID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.AdjustmentLine{
			ID:     uuid.New().String(),
			ItemID: l.ItemID,
			Amount: l.Amount,
		})
	}
	return lines, nil
}
