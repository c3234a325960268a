package dto

import "time"

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CategoryListResponse lista de categorías.
type CategoryListResponse struct {
	Success bool               `json:"success"`
	Count   int                `json:"count"`
	Data    []CategoryResponse `json:"data"`
}
