package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC       *catalog.ItemUseCase
	WarehouseUC  *catalog.WarehouseUseCase
	EntryUC      *inventory.EntryUseCase
	InvoiceUC    *inventory.InvoiceUseCase
	AdjustmentUC *inventory.AdjustmentUseCase
	TransferUC   *inventory.TransferUseCase
	StockUC      *inventory.StockQueryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", itemHandler.Update)

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Entradas de mercancía (protegido)
	entries := protected.Group("/entries")
	entryHandler := NewEntryHandler(deps.EntryUC)
	entries.Post("/", entryHandler.Create)
	entries.Get("/", entryHandler.List)
	entries.Get("/:id", entryHandler.GetByID)
	entries.Put("/:id", entryHandler.Update)

	// Facturas (protegido)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Put("/:id/status", invoiceHandler.SetStatus)

	// Ajustes (protegido)
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/apply", adjustmentHandler.Apply)

	// Traslados (protegido)
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Put("/:id", transferHandler.Update)
	transfers.Post("/:id/approve", transferHandler.Approve)
	transfers.Post("/:id/revert", transferHandler.Revert)

	// Stock (protegido, solo lectura)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stock.Get("/warehouse/:warehouse_id", stockHandler.ListByWarehouse)
	stock.Get("/item/:item_id", stockHandler.ListByItem)
	stock.Get("/movements/item/:item_id", stockHandler.MovementsByItem)
	stock.Get("/movements/warehouse/:warehouse_id", stockHandler.MovementsByWarehouse)
	stock.Get("/:warehouse_id/:item_id", stockHandler.GetLevel)
}
