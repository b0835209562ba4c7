package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/azri-hamza/rosa-sub000/internal/application/catalog"
	"github.com/azri-hamza/rosa-sub000/internal/application/sales"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	ClientUC   *catalog.ClientUseCase
	ProductUC  *catalog.ProductUseCase
	VatRateUC  *catalog.VatRateUseCase
	QuoteUC    *sales.QuoteUseCase
	DeliveryUC *sales.DeliveryUseCase
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	vatRates := api.Group("/vat-rates")
	vatRateHandler := NewVatRateHandler(deps.VatRateUC)
	vatRates.Post("/", vatRateHandler.Create)
	vatRates.Get("/", vatRateHandler.List)
	// Fixed paths before the :id wildcard.
	vatRates.Get("/default", vatRateHandler.GetDefault)
	vatRates.Get("/resolve", vatRateHandler.Resolve)
	vatRates.Get("/:id", vatRateHandler.GetByID)
	vatRates.Put("/:id", vatRateHandler.Update)
	vatRates.Post("/:id/set-default", vatRateHandler.SetDefault)
	vatRates.Delete("/:id", vatRateHandler.Delete)

	quotes := api.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id", quoteHandler.Update)
	quotes.Delete("/:id", quoteHandler.Delete)

	deliveries := api.Group("/delivery-notes")
	deliveryHandler := NewDeliveryNoteHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/:id", deliveryHandler.GetByID)
	deliveries.Put("/:id", deliveryHandler.Update)
	deliveries.Patch("/:id/status", deliveryHandler.UpdateStatus)
	deliveries.Patch("/:id/delivered-quantities", deliveryHandler.SetDeliveredQuantities)
	deliveries.Delete("/:id", deliveryHandler.Delete)
}
