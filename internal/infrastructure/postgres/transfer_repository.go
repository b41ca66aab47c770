package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste encabezado y líneas.
func (r *TransferRepo) Create(t *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, code, description, source_warehouse_id, destination_warehouse_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Code, nullIfEmpty(t.Description), t.SourceWarehouseID,
		t.DestinationWarehouseID, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert transfer: %w", err)
	}
	return r.insertLines(t.ID, t.Lines)
}

// GetByID obtiene el traslado con sus líneas (una consulta por colección;
// las líneas pertenecen en exclusiva a su traslado).
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), source_warehouse_id, destination_warehouse_id, status, created_at, updated_at
		FROM transfers WHERE id = $1`
	var t entity.Transfer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Code, &t.Description, &t.SourceWarehouseID,
		&t.DestinationWarehouseID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}

	lines, err := r.getLines(id)
	if err != nil {
		return nil, err
	}
	t.Lines = lines
	return &t, nil
}

// UpdateHeader actualiza descripción y updated_at.
func (r *TransferRepo) UpdateHeader(t *entity.Transfer) error {
	query := `
		UPDATE transfers SET description = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, t.ID, nullIfEmpty(t.Description), t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines reemplaza la colección completa (delete + recreate).
func (r *TransferRepo) ReplaceLines(transferID string, lines []entity.TransferLine) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM transfer_lines WHERE transfer_id = $1`, transferID); err != nil {
		return fmt.Errorf("delete transfer lines: %w", err)
	}
	return r.insertLines(transferID, lines)
}

// UpdateStatusIf cambia el estado solo si el actual coincide (CAS). El
// conteo de filas afectadas decide si la transición ganó la carrera.
func (r *TransferRepo) UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error) {
	query := `
		UPDATE transfers SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, oldStatus, newStatus)
	if err != nil {
		return false, fmt.Errorf("update transfer status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List lista traslados paginados, más reciente primero, sin líneas.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), source_warehouse_id, destination_warehouse_id, status, created_at, updated_at
		FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*entity.Transfer
	for rows.Next() {
		var t entity.Transfer
		if err := rows.Scan(&t.ID, &t.Code, &t.Description, &t.SourceWarehouseID, &t.DestinationWarehouseID, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, &t)
	}
	return transfers, rows.Err()
}

func (r *TransferRepo) insertLines(transferID string, lines []entity.TransferLine) error {
	query := `
		INSERT INTO transfer_lines (id, transfer_id, item_id, amount)
		VALUES ($1, $2, $3, $4)`
	for _, line := range lines {
		if _, err := r.q.Exec(context.Background(), query, line.ID, transferID, line.ItemID, line.Amount); err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

func (r *TransferRepo) getLines(transferID string) ([]entity.TransferLine, error) {
	query := `
		SELECT id, transfer_id, item_id, amount
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("get transfer lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.TransferLine
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.ID, &l.TransferID, &l.ItemID, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
