package dto

import "github.com/shopspring/decimal"

// CreateItemRequest body para POST /api/items.
// Si Code va vacío se genera a partir del nombre (normalizado, sin acentos).
type CreateItemRequest struct {
	Code        string          `json:"code,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
}

// UpdateItemRequest body para PUT /api/items/:id. Campos nil no se tocan.
type UpdateItemRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
}

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Code    string `json:"code,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// UpdateWarehouseRequest body para PUT /api/warehouses/:id.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}
