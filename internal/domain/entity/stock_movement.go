package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// StockMovement es una entrada del libro de movimientos: inmutable, nunca se
// actualiza ni se borra. El ID es BIGSERIAL, por lo que el orden de IDs es el
// orden de inserción.
type StockMovement struct {
	ID        int64
	ProductID string
	Type      string // IN u OUT
	Quantity  int64  // siempre positivo; el signo lo da Type
	Notes     string
	CreatedAt time.Time
}

// SignedQuantity devuelve la cantidad con signo según el tipo (+IN, -OUT).
func (m *StockMovement) SignedQuantity() int64 {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}

// ValidMovementType indica si s es un tipo de movimiento conocido.
func ValidMovementType(s string) bool {
	return s == MovementTypeIN || s == MovementTypeOUT
}
