package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// name, category_id y price son obligatorios; stock es el stock inicial (0 por defecto).
// Price es puntero para distinguir "sin price" (rechazado) de un 0 explícito.
type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  string           `json:"category_id"`
	Price       *decimal.Decimal `json:"price"`
	Stock       int64            `json:"stock"`
	SKU         string           `json:"sku"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	SKU          string          `json:"sku,omitempty"`
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista de productos, más recientes primero.
type ProductListResponse struct {
	Success bool              `json:"success"`
	Count   int               `json:"count"`
	Data    []ProductResponse `json:"data"`
}

// ProductDataResponse envuelve un producto en el sobre {success, data}.
type ProductDataResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    ProductResponse `json:"data"`
}
