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

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository (usable con pool o tx).
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador.
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

// Create persiste encabezado y líneas.
func (r *AdjustmentRepo) Create(a *entity.Adjustment) error {
	query := `
		INSERT INTO adjustments (id, code, description, warehouse_id, type, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Code, nullIfEmpty(a.Description), a.WarehouseID,
		a.Type, a.Status, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return r.insertLines(a.ID, a.Lines)
}

// GetByID obtiene el ajuste con sus líneas.
func (r *AdjustmentRepo) GetByID(id string) (*entity.Adjustment, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), warehouse_id, type, status, created_at, updated_at
		FROM adjustments WHERE id = $1`
	var a entity.Adjustment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.Code, &a.Description, &a.WarehouseID,
		&a.Type, &a.Status, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}

	lines, err := r.getLines(id)
	if err != nil {
		return nil, err
	}
	a.Lines = lines
	return &a, nil
}

// UpdateHeader actualiza descripción, tipo y updated_at.
func (r *AdjustmentRepo) UpdateHeader(a *entity.Adjustment) error {
	query := `
		UPDATE adjustments SET description = $2, type = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, a.ID, nullIfEmpty(a.Description), a.Type, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update adjustment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines reemplaza la colección completa (delete + recreate).
func (r *AdjustmentRepo) ReplaceLines(adjustmentID string, lines []entity.AdjustmentLine) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM adjustment_lines WHERE adjustment_id = $1`, adjustmentID); err != nil {
		return fmt.Errorf("delete adjustment lines: %w", err)
	}
	return r.insertLines(adjustmentID, lines)
}

// UpdateStatusIf cambia el estado solo si el actual coincide (CAS).
// Aplicar dos veces el mismo ajuste pierde aquí la carrera y nunca
// duplica el efecto sobre el inventario.
func (r *AdjustmentRepo) UpdateStatusIf(id string, oldStatus, newStatus int) (bool, error) {
	query := `
		UPDATE adjustments SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, oldStatus, newStatus)
	if err != nil {
		return false, fmt.Errorf("update adjustment status: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// List lista ajustes paginados, más reciente primero, sin líneas.
func (r *AdjustmentRepo) List(limit, offset int) ([]*entity.Adjustment, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), warehouse_id, type, status, created_at, updated_at
		FROM adjustments ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []*entity.Adjustment
	for rows.Next() {
		var a entity.Adjustment
		if err := rows.Scan(&a.ID, &a.Code, &a.Description, &a.WarehouseID, &a.Type, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		adjustments = append(adjustments, &a)
	}
	return adjustments, rows.Err()
}

func (r *AdjustmentRepo) insertLines(adjustmentID string, lines []entity.AdjustmentLine) error {
	query := `
		INSERT INTO adjustment_lines (id, adjustment_id, item_id, amount)
		VALUES ($1, $2, $3, $4)`
	for _, line := range lines {
		if _, err := r.q.Exec(context.Background(), query, line.ID, adjustmentID, line.ItemID, line.Amount); err != nil {
			return fmt.Errorf("insert adjustment line: %w", err)
		}
	}
	return nil
}

func (r *AdjustmentRepo) getLines(adjustmentID string) ([]entity.AdjustmentLine, error) {
	query := `
		SELECT id, adjustment_id, item_id, amount
		FROM adjustment_lines WHERE adjustment_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, adjustmentID)
	if err != nil {
		return nil, fmt.Errorf("get adjustment lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.AdjustmentLine
	for rows.Next() {
		var l entity.AdjustmentLine
		if err := rows.Scan(&l.ID, &l.AdjustmentID, &l.ItemID, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan adjustment line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
