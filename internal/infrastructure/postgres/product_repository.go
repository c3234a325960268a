package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con su stock inicial.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, sku, category_id, price, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	sku := (*string)(nil)
	if product.SKU != "" {
		sku = &product.SKU
	}
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, sku, product.CategoryID,
		product.Price, product.Stock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID con el nombre de su categoría (LEFT JOIN).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.sku, p.category_id, COALESCE(c.name, ''), p.price, p.stock, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product")
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.sku, p.category_id, COALESCE(c.name, ''), p.price, p.stock, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		WHERE p.sku = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, sku), "get product by sku")
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// Sin JOIN: FOR UPDATE no puede bloquear el lado nullable de un outer join.
func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, sku, category_id, ''::text, price, stock, created_at, updated_at
		FROM products WHERE id = $1
		FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get product for update")
}

// ApplyStockDelta suma delta al contador (stock = stock + $2) y refresca
// updated_at en el mismo UPDATE. Nunca escribe un valor absoluto, así deltas
// concurrentes conmutan una vez serializados por la transacción dueña.
// Devuelve nil si el producto no existe.
func (r *ProductRepo) ApplyStockDelta(id string, delta int64, now time.Time) (*entity.Product, error) {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = $3
		WHERE id = $1
		RETURNING id, name, description, sku, category_id, ''::text, price, stock, created_at, updated_at`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id, delta, now), "apply stock delta")
}

// List lista todos los productos con nombre de categoría, más recientes primero.
func (r *ProductRepo) List() ([]*entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.sku, p.category_id, COALESCE(c.name, ''), p.price, p.stock, p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON p.category_id = c.id
		ORDER BY p.created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) scanOne(row pgx.Row, op string) (*entity.Product, error) {
	p, err := scanProduct(row)
	if err != nil {
		// Un id que no es un UUID válido (22P02) no puede referir a ninguna fila.
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var sku *string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &sku, &p.CategoryID,
		&p.CategoryName, &p.Price, &p.Stock, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if sku != nil {
		p.SKU = *sku
	}
	return &p, nil
}
