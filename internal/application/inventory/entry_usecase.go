package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// EntryUseCase orquesta recepciones de mercancía: cada línea suma stock en
// su bodega al crearse, sin máquina de estados. En una edición las líneas se
// reemplazan en bloque y el stock recibido previamente se revierte antes de
// aplicar las líneas nuevas, para que una entrada editada no se reciba dos
// veces.
type EntryUseCase struct {
	txRunner      TxRunner
	entryRepo     repository.EntryRepository
	itemRepo      repository.ItemRepository
	warehouseRepo repository.WarehouseRepository
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(
	txRunner TxRunner,
	entryRepo repository.EntryRepository,
	itemRepo repository.ItemRepository,
	warehouseRepo repository.WarehouseRepository,
) *EntryUseCase {
	return &EntryUseCase{
		txRunner:      txRunner,
		entryRepo:     entryRepo,
		itemRepo:      itemRepo,
		warehouseRepo: warehouseRepo,
	}
}

// Create crea la entrada y suma el stock de cada línea, todo en una
// transacción.
func (uc *EntryUseCase) Create(ctx context.Context, in dto.CreateEntryRequest) (*entity.Entry, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	lines, err := uc.buildLines(in.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entry := &entity.Entry{
		ID:          uuid.New().String(),
		Code:        newDocumentCode("ENT"),
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range lines {
		lines[i].EntryID = entry.ID
	}
	entry.Lines = lines

	err = uc.txRunner.Run(ctx, func(tx TxRepos) error {
		if err := tx.Entries.Create(entry); err != nil {
			return err
		}
		return uc.applyLines(tx, entry.ID, entry.Lines, now)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Update reemplaza las líneas en bloque: revierte las cantidades recibidas
// con las líneas anteriores (negativo permitido) y aplica las nuevas, en una
// sola transacción.
func (uc *EntryUseCase) Update(ctx context.Context, id string, in dto.UpdateEntryRequest) (*entity.Entry, error) {
	var lines []entity.EntryLine
	if in.Lines != nil {
		if len(in.Lines) == 0 {
			return nil, domain.ErrInvalidInput
		}
		var err error
		lines, err = uc.buildLines(in.Lines)
		if err != nil {
			return nil, err
		}
		for i := range lines {
			lines[i].EntryID = id
		}
	}

	now := time.Now()
	var updated *entity.Entry
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		existing, err := tx.Entries.GetByID(id)
		if err != nil {
			return err
		}
		if in.Description != nil {
			existing.Description = *in.Description
		}
		existing.UpdatedAt = now
		if err := tx.Entries.UpdateHeader(existing); err != nil {
			return err
		}

		if lines != nil {
			if err := uc.reverseLines(tx, existing.ID, existing.Lines, now); err != nil {
				return err
			}
			if err := tx.Entries.ReplaceLines(id, lines); err != nil {
				return err
			}
			existing.Lines = lines
			if err := uc.applyLines(tx, existing.ID, lines, now); err != nil {
				return err
			}
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetByID devuelve la entrada con sus líneas.
func (uc *EntryUseCase) GetByID(ctx context.Context, id string) (*entity.Entry, error) {
	return uc.entryRepo.GetByID(id)
}

// List devuelve entradas paginadas (sin líneas).
func (uc *EntryUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Entry, error) {
	return uc.entryRepo.List(limit, offset)
}

func (uc *EntryUseCase) applyLines(tx TxRepos, entryID string, lines []entity.EntryLine, now time.Time) error {
	mov := Movement{
		TransactionID: uuid.New().String(),
		Kind:          entity.MovementKindEntry,
		Reference:     entryID,
		Date:          now,
	}
	for _, line := range lines {
		if _, err := Increase(tx.Stock, tx.Movements, line.WarehouseID, line.ItemID, line.Amount, mov); err != nil {
			return err
		}
	}
	return nil
}

func (uc *EntryUseCase) reverseLines(tx TxRepos, entryID string, lines []entity.EntryLine, now time.Time) error {
	mov := Movement{
		TransactionID: uuid.New().String(),
		Kind:          entity.MovementKindEntry,
		Reference:     entryID,
		Date:          now,
	}
	for _, line := range lines {
		if _, err := Decrease(tx.Stock, tx.Movements, line.WarehouseID, line.ItemID, line.Amount, true, mov); err != nil {
			return err
		}
	}
	return nil
}

// buildLines valida cantidades positivas y existencia de artículo y bodega.
func (uc *EntryUseCase) buildLines(in []dto.EntryLineRequest) ([]entity.EntryLine, error) {
	lines := make([]entity.EntryLine, 0, len(in))
	for _, l := range in {
		if l.ItemID == "" || l.WarehouseID == "" || !l.Amount.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if _, err := uc.itemRepo.GetByID(l.ItemID); err != nil {
			return nil, err
		}
		if _, err := uc.warehouseRepo.GetByID(l.WarehouseID); err != nil {
			return nil, err
		}
		lines = append(lines, entity.EntryLine{
			ID:          uuid.New().String(),
			ItemID:      l.ItemID,
			WarehouseID: l.WarehouseID,
			Amount:      l.Amount,
		})
	}
	return lines, nil
}
