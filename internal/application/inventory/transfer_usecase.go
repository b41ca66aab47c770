package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/ledger"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// TransferUseCase orquesta los traslados entre bodegas. Aprobar (0→1) mueve
// el stock de origen a destino con verificación previa de suficiencia;
// revertir (1→0) lo devuelve sin verificación (el destino puede quedar
// negativo). Todo dentro de una transacción: un faltante en la línea 3 de 5
// deshace también las líneas 1 y 2.
type TransferUseCase struct {
	txRunner      TxRunner
	transferRepo  repository.TransferRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTransferUseCase construye el caso de uso.
func NewTransferUseCase(
	txRunner TxRunner,
	transferRepo repository.TransferRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
) *TransferUseCase {
	return &TransferUseCase{
		txRunner:      txRunner,
		transferRepo:  transferRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create crea un traslado. Por defecto nace pendiente; con status=1 se crea
// ya completado y el movimiento de stock se aplica en la misma transacción.
func (uc *TransferUseCase) Create(ctx context.Context, in dto.CreateTransferRequest) (*entity.Transfer, error) {
	if in.SourceWarehouseID == "" || in.DestinationWarehouseID == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.SourceWarehouseID == in.DestinationWarehouseID {
		return nil, domain.ErrInvalidInput
	}
	status := entity.TransferStatusPending
	if in.Status != nil {
		if *in.Status != entity.TransferStatusPending && *in.Status != entity.TransferStatusCompleted {
			return nil, domain.ErrInvalidInput
		}
		status = *in.Status
	}
	if err := uc.validateWarehouses(in.SourceWarehouseID, in.DestinationWarehouseID); err != nil {
		return nil, err
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	transfer := &entity.Transfer{
		ID:                     uuid.New().String(),
		Code:                   newDocumentCode("TRF"),
		Description:            in.Description,
		SourceWarehouseID:      in.SourceWarehouseID,
		DestinationWarehouseID: in.DestinationWarehouseID,
		Status:                 status,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	for i := range lines {
		lines[i].TransferID = transfer.ID
	}
	transfer.Lines = lines

	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if err := tx.Transfers.Create(transfer); err != nil {
			return err
		}
		if status == entity.TransferStatusCompleted {
			return uc.applyForward(tx, transfer, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transfer, nil
}

// Approve ejecuta la transición pendiente → completado. El cambio de estado
// es un compare-and-swap dentro de la misma transacción que mueve el stock:
// dos peticiones concurrentes no pueden aplicar el traslado dos veces.
func (uc *TransferUseCase) Approve(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		ok, err := tx.Transfers.UpdateStatusIf(id, entity.TransferStatusPending, entity.TransferStatusCompleted)
		if err != nil {
			return err
		}
		if !ok {
			// Sin fila afectada: no existe, o no estaba pendiente.
			if _, err := tx.Transfers.GetByID(id); err != nil {
				return err
			}
			return domain.ErrAlreadyProcessed
		}
		transfer, err := tx.Transfers.GetByID(id)
		if err != nil {
			return err
		}
		return uc.applyForward(tx, transfer, time.Now())
	})
}

// Revert ejecuta la transición completado → pendiente devolviendo cada línea
// del destino al origen. No se re-verifica suficiencia: el destino puede
// quedar negativo si su stock ya se movió por otra vía.
func (uc *TransferUseCase) Revert(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(tx TxRepos) error {
		ok, err := tx.Transfers.UpdateStatusIf(id, entity.TransferStatusCompleted, entity.TransferStatusPending)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := tx.Transfers.GetByID(id); err != nil {
				return err
			}
			return domain.ErrAlreadyProcessed
		}
		transfer, err := tx.Transfers.GetByID(id)
		if err != nil {
			return err
		}
		return uc.applyReverse(tx, transfer, time.Now())
	})
}

// Update edita encabezado y líneas (solo mientras esté pendiente) y, si el
// body trae un estado nuevo, dispara aprobar o revertir exactamente una vez
// según la función de transición.
func (uc *TransferUseCase) Update(ctx context.Context, id string, in dto.UpdateTransferRequest) (*entity.Transfer, error) {
	existing, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	effect := ledger.EffectNone
	if in.Status != nil {
		if *in.Status != entity.TransferStatusPending && *in.Status != entity.TransferStatusCompleted {
			return nil, domain.ErrInvalidInput
		}
		effect = ledger.Transition(existing.Status, *in.Status)
	}
	if in.Lines != nil && !existing.IsPending() {
		return nil, domain.ErrEditNotPending
	}

	var lines []entity.TransferLine
	if in.Lines != nil {
		if len(in.Lines) == 0 {
			return nil, domain.ErrInvalidInput
		}
		lines, err = uc.buildLines(in.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].TransferID = id
		}
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if in.Description != nil {
			existing.Description = *in.Description
			existing.UpdatedAt = now
			if err := tx.Transfers.UpdateHeader(existing); err != nil {
				return err
			}
		}
		if lines != nil {
			if err := tx.Transfers.ReplaceLines(id, lines); err != nil {
				return err
			}
			existing.Lines = lines
		}

		switch effect {
		case ledger.EffectForward:
			ok, err := tx.Transfers.UpdateStatusIf(id, entity.TransferStatusPending, entity.TransferStatusCompleted)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAlreadyProcessed
			}
			existing.Status = entity.TransferStatusCompleted
			return uc.applyForward(tx, existing, now)
		case ledger.EffectReverse:
			ok, err := tx.Transfers.UpdateStatusIf(id, entity.TransferStatusCompleted, entity.TransferStatusPending)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrAlreadyProcessed
			}
			existing.Status = entity.TransferStatusPending
			return uc.applyReverse(tx, existing, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return existing, nil
}

// GetByID devuelve el traslado con sus líneas.
func (uc *TransferUseCase) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	return uc.transferRepo.GetByID(id)
}

// List devuelve traslados paginados (sin líneas).
func (uc *TransferUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Transfer, error) {
	return uc.transferRepo.List(limit, offset)
}

// applyForward mueve cada línea de origen a destino: verificación de
// suficiencia sobre el origen para TODAS las líneas antes de mutar nada,
// luego resta en origen (sin permitir negativo) y suma en destino.
func (uc *TransferUseCase) applyForward(tx TxRepos, t *entity.Transfer, now time.Time) error {
	reqs := uc.requirements(tx, t.Lines)
	if err := ValidateSufficiency(tx.Stock, t.SourceWarehouseID, reqs); err != nil {
		return err
	}

	mov := Movement{
		TransactionID: uuid.New().String(),
		Kind:          entity.MovementKindTransfer,
		Reference:     t.ID,
		Date:          now,
	}
	for _, line := range t.Lines {
		if _, err := Decrease(tx.Stock, tx.Movements, t.SourceWarehouseID, line.ItemID, line.Amount, false, mov); err != nil {
			return err
		}
		if _, err := Increase(tx.Stock, tx.Movements, t.DestinationWarehouseID, line.ItemID, line.Amount, mov); err != nil {
			return err
		}
	}
	return nil
}

// applyReverse devuelve cada línea del destino al origen con negativo
// permitido.
func (uc *TransferUseCase) applyReverse(tx TxRepos, t *entity.Transfer, now time.Time) error {
	mov := Movement{
		TransactionID: uuid.New().String(),
		Kind:          entity.MovementKindTransfer,
		Reference:     t.ID,
		Date:          now,
	}
	for _, line := range t.Lines {
		if _, err := Decrease(tx.Stock, tx.Movements, t.DestinationWarehouseID, line.ItemID, line.Amount, true, mov); err != nil {
			return err
		}
		if _, err := Increase(tx.Stock, tx.Movements, t.SourceWarehouseID, line.ItemID, line.Amount, mov); err != nil {
			return err
		}
	}
	return nil
}

// requirements arma las demandas de salida con el código de artículo para
// mensajes de faltante legibles.
func (uc *TransferUseCase) requirements(tx TxRepos, lines []entity.TransferLine) []ledger.Requirement {
	reqs := make([]ledger.Requirement, 0, len(lines))
	for _, line := range lines {
		code := ""
		if item, err := tx.Items.GetByID(line.ItemID); err == nil {
			code = item.Code
		}
		reqs = append(reqs, ledger.Requirement{ItemID: line.ItemID, ItemCode: code, Amount: line.Amount})
	}
	return reqs
}

func (uc *TransferUseCase) validateWarehouses(ids ...string) error {
	for _, id := range ids {
		if _, err := uc.warehouseRepo.GetByID(id); err != nil {
			return err
		}
	}
	return nil
}

// buildLines valida cantidades y existencia de artículos y construye las
// líneas con ID propio.
func (uc *TransferUseCase) buildLines(in []dto.TransferLineRequest) ([]entity.TransferLine, error) {
	lines := make([]entity.TransferLine, 0, len(in))
	for _, l := range in {
		if l.ItemID == "" || !l.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.itemRepo.GetByID(l.ItemID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.TransferLine{
			ID:     uuid.New().String(),
			ItemID: l.ItemID,
			Amount: l.Amount,
		})
	}
	return lines, nil
}
