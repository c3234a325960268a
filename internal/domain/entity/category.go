package entity

import "time"

// Category representa una categoría de productos. Referencia débil desde
// Product: se usa para lookup y el nombre en listados, sin ownership.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
