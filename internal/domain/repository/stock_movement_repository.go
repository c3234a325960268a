package repository

import "github.com/jhoicas/inventario-stock/internal/domain/entity"

// StockMovementRepository define el puerto de persistencia del libro de
// movimientos (DIP). Solo inserta y consulta: las entradas jamás se
// actualizan ni se borran.
type StockMovementRepository interface {
	// Create inserta el movimiento y completa ID y CreatedAt desde la BD.
	Create(movement *entity.StockMovement) error
	// ListByProduct devuelve el historial de un producto, más recientes primero.
	ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error)
}
