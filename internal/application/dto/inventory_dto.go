package dto

import "time"

// RecordMovementRequest body para POST /api/products/:id/stock.
type RecordMovementRequest struct {
	MovementType string `json:"movement_type"` // IN | OUT
	Quantity     int64  `json:"quantity"`
	Notes        string `json:"notes"`
}

// MovementResponse salida de un movimiento del historial.
type MovementResponse struct {
	ID        int64     `json:"id"`
	ProductID string    `json:"product_id"`
	Type      string    `json:"movement_type"`
	Quantity  int64     `json:"quantity"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// MovementListResponse historial de movimientos de un producto.
type MovementListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []MovementResponse `json:"data"`
}
