package entity

import "time"

// Warehouse representa una bodega donde se almacena inventario (multi-bodega).
type Warehouse struct {
	ID        string
	Code      string // único
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
