package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// StockHandler expone consultas de niveles de stock y kardex (protegido).
// Solo lectura: el stock se muta únicamente vía documentos.
type StockHandler struct {
	uc *inventory.StockQueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockQueryUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// GetLevel godoc
// @Summary      Nivel de stock de un artículo en una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path  string  true  "ID de la bodega"
// @Param        item_id       path  string  true  "ID del artículo"
// @Success      200  {object}  dto.StockLevelResponse
// @Router       /api/stock/{warehouse_id}/{item_id} [get]
func (h *StockHandler) GetLevel(c *fiber.Ctx) error {
	level, err := h.uc.GetLevel(c.Context(), c.Params("warehouse_id"), c.Params("item_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockLevel(level))
}

// ListByWarehouse godoc
// @Summary      Niveles de stock de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "ID de la bodega"
// @Param        limit         query  int     false  "Límite"   default(50)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.StockLevelResponse
// @Router       /api/stock/warehouse/{warehouse_id} [get]
func (h *StockHandler) ListByWarehouse(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	levels, err := h.uc.ListByWarehouse(c.Context(), c.Params("warehouse_id"), p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockLevels(levels))
}

// ListByItem godoc
// @Summary      Stock de un artículo en todas las bodegas
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "ID del artículo"
// @Success      200  {array}  dto.StockLevelResponse
// @Router       /api/stock/item/{item_id} [get]
func (h *StockHandler) ListByItem(c *fiber.Ctx) error {
	levels, err := h.uc.ListByItem(c.Context(), c.Params("item_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockLevels(levels))
}

// MovementsByItem godoc
// @Summary      Kardex de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true   "ID del artículo"
// @Param        from     query  string  false  "Desde (RFC3339)"
// @Param        to       query  string  false  "Hasta (RFC3339)"
// @Param        limit    query  int     false  "Límite"   default(50)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements/item/{item_id} [get]
func (h *StockHandler) MovementsByItem(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, usar RFC3339"})
	}
	movs, err := h.uc.MovementsByItem(c.Context(), c.Params("item_id"), from, to, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockMovements(movs))
}

// MovementsByWarehouse godoc
// @Summary      Kardex de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  path   string  true   "ID de la bodega"
// @Param        from          query  string  false  "Desde (RFC3339)"
// @Param        to            query  string  false  "Hasta (RFC3339)"
// @Param        limit         query  int     false  "Límite"   default(50)
// @Param        offset        query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.StockMovementResponse
// @Router       /api/stock/movements/warehouse/{warehouse_id} [get]
func (h *StockHandler) MovementsByWarehouse(c *fiber.Ctx) error {
	var p dto.Pagination
	if err := c.QueryParser(&p); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	p.Normalize()
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas, usar RFC3339"})
	}
	movs, err := h.uc.MovementsByWarehouse(c.Context(), c.Params("warehouse_id"), from, to, p.Limit, p.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.FromStockMovements(movs))
}

// parseDateRange lee from/to del query string en RFC3339. Ausente es nil.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}
