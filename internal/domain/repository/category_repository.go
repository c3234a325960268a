package repository

import "github.com/jhoicas/inventario-stock/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	GetByID(id string) (*entity.Category, error)
	List() ([]*entity.Category, error)
}
