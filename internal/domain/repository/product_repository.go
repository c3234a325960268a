package repository

import (
	"time"

	"github.com/jhoicas/inventario-stock/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	// GetByID devuelve el producto con el nombre de su categoría (LEFT JOIN),
	// o nil si no existe.
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT ... FOR UPDATE) dentro
	// de la transacción en curso. Serializa movimientos concurrentes sobre el
	// mismo producto. Sin JOIN: FOR UPDATE no admite el lado nullable.
	GetForUpdate(id string) (*entity.Product, error)
	// ApplyStockDelta suma delta al stock (stock = stock + delta, nunca
	// sobreescritura con valor absoluto) y refresca updated_at en el mismo
	// UPDATE. Devuelve el producto resultante, o nil si el id no existe.
	ApplyStockDelta(id string, delta int64, now time.Time) (*entity.Product, error)
	// List devuelve todos los productos con nombre de categoría, más recientes primero.
	List() ([]*entity.Product, error)
}
