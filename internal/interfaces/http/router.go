package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sku-lookup-api/internal/application/lookup"
	"github.com/jhoicas/sku-lookup-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SearchUC   *lookup.SearchUseCase
	ExportUC   *lookup.ExportUseCase
	QuantityUC *lookup.QuantityUseCase
	SKUUC      *lookup.SKUUseCase
	Sessions   SessionIssuer
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")

	api := app.Group("/api")

	// Sesiones (público)
	sessionHandler := NewSessionHandler(deps.Sessions)
	api.Post("/sessions", sessionHandler.Create)

	// Búsqueda y exportación: el resultado se guarda por sesión
	withSession := SessionMiddleware(deps.Sessions)
	searchHandler := NewSearchHandler(deps.SearchUC, deps.ExportUC, log)
	api.Get("/search", withSession, searchHandler.Search)
	api.Get("/export", withSession, searchHandler.Export)

	// SKUs (sin estado de sesión)
	skuHandler := NewSKUHandler(deps.QuantityUC, deps.SKUUC, log)
	api.Get("/quantity-details", skuHandler.QuantityDetails)
	skus := api.Group("/skus")
	skus.Get("/:sku_id", skuHandler.Details)
	skus.Get("/:sku_id/barcode", skuHandler.Barcode)
}
