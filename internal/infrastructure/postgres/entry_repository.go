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

var _ repository.EntryRepository = (*EntryRepo)(nil)

// EntryRepo implementación de EntryRepository (usable con pool o tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador.
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create persiste encabezado y líneas.
func (r *EntryRepo) Create(e *entity.Entry) error {
	query := `
		INSERT INTO entries (id, code, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Code, nullIfEmpty(e.Description), e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert entry: %w", err)
	}
	return r.insertLines(e.ID, e.Lines)
}

// GetByID obtiene la entrada con sus líneas.
func (r *EntryRepo) GetByID(id string) (*entity.Entry, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), created_at, updated_at
		FROM entries WHERE id = $1`
	var e entity.Entry
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Code, &e.Description, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	lines, err := r.getLines(id)
	if err != nil {
		return nil, err
	}
	e.Lines = lines
	return &e, nil
}

// UpdateHeader actualiza descripción y updated_at.
func (r *EntryRepo) UpdateHeader(e *entity.Entry) error {
	query := `
		UPDATE entries SET description = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, e.ID, nullIfEmpty(e.Description), e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines reemplaza la colección completa (delete + recreate).
func (r *EntryRepo) ReplaceLines(entryID string, lines []entity.EntryLine) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM entry_lines WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("delete entry lines: %w", err)
	}
	return r.insertLines(entryID, lines)
}

// List lista entradas paginadas, más reciente primero, sin líneas.
func (r *EntryRepo) List(limit, offset int) ([]*entity.Entry, error) {
	query := `
		SELECT id, code, COALESCE(description, ''), created_at, updated_at
		FROM entries ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.Entry
	for rows.Next() {
		var e entity.Entry
		if err := rows.Scan(&e.ID, &e.Code, &e.Description, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *EntryRepo) insertLines(entryID string, lines []entity.EntryLine) error {
	query := `
		INSERT INTO entry_lines (id, entry_id, item_id, warehouse_id, amount)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range lines {
		if _, err := r.q.Exec(context.Background(), query, line.ID, entryID, line.ItemID, line.WarehouseID, line.Amount); err != nil {
			return fmt.Errorf("insert entry line: %w", err)
		}
	}
	return nil
}

func (r *EntryRepo) getLines(entryID string) ([]entity.EntryLine, error) {
	query := `
		SELECT id, entry_id, item_id, warehouse_id, amount
		FROM entry_lines WHERE entry_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, entryID)
	if err != nil {
		return nil, fmt.Errorf("get entry lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.EntryLine
	for rows.Next() {
		var l entity.EntryLine
		if err := rows.Scan(&l.ID, &l.EntryID, &l.ItemID, &l.WarehouseID, &l.Amount); err != nil {
			return nil, fmt.Errorf("scan entry line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
