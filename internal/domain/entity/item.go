package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del catálogo (producto almacenable).
type Item struct {
	ID          string
	Code        string // único; generado a partir del nombre si no se envía
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta unitario
	Cost        decimal.Decimal // costo unitario de referencia
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
