package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry representa una recepción de mercancía. No tiene máquina de estados:
// cada línea suma stock en su bodega al momento de crearse (o recrearse en
// una edición).
type Entry struct {
	ID          string
	Code        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Lines []EntryLine
}

// EntryLine es una línea de recepción: cantidad positiva de un artículo
// entrando a una bodega. A diferencia de los demás documentos, cada línea
// lleva su propia bodega.
type EntryLine struct {
	ID          string
	EntryID     string
	ItemID      string
	WarehouseID string
	Amount      decimal.Decimal // siempre > 0
}
