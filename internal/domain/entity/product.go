package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. Stock es el contador
// materializado: siempre igual a la suma con signo de sus movimientos
// confirmados (más el stock inicial del alta). Solo el protocolo de
// movimientos escribe Stock y UpdatedAt.
type Product struct {
	ID           string
	Name         string
	Description  string
	SKU          string // opcional, único si está presente
	CategoryID   string
	CategoryName string // solo lectura, viene del JOIN con categories
	Price        decimal.Decimal
	Stock        int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
