package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// EntryRepository define el puerto de persistencia para Entry y sus líneas.
// Las líneas se reemplazan en bloque (delete + recreate), nunca una a una.
type EntryRepository interface {
	Create(entry *entity.Entry) error
	GetByID(id string) (*entity.Entry, error)
	UpdateHeader(entry *entity.Entry) error
	ReplaceLines(entryID string, lines []entity.EntryLine) error
	List(limit, offset int) ([]*entity.Entry, error)
}
