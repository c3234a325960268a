package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/application/usecase"
	"github.com/jhoicas/inventario-stock/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC      *usecase.ProductUseCase
	CategoryUC     *usecase.CategoryUseCase
	RecordMovement *inventory.RecordMovementUseCase
	Log            *logger.Logger
	JWTSecret      string // vacío = rutas de escritura públicas
}

// Router registra las rutas de la API. Las lecturas son públicas; las
// escrituras pasan por AuthMiddleware (passthrough si no hay JWT_SECRET).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	auth := AuthMiddleware(deps.JWTSecret)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	inventoryHandler := NewInventoryHandler(deps.RecordMovement, deps.Log)
	products.Get("/", productHandler.List)
	products.Post("/", auth, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/:id/stock", auth, inventoryHandler.RecordMovement)
	products.Get("/:id/movements", inventoryHandler.ListMovements)

	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Log)
	categories.Get("/", categoryHandler.List)
}
