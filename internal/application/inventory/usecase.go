package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-stock/internal/application/dto"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// RecordMovementUseCase registra movimientos de stock (IN/OUT) de forma
// transaccional: inserta la entrada en el libro y aplica el delta al contador
// materializado del producto en una sola unidad de trabajo, con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback.
type RecordMovementUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
}

// NewRecordMovementUseCase construye el caso de uso. productRepo y movRepo se
// usan para lecturas fuera de transacción; las escrituras van por txRunner.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
) *RecordMovementUseCase {
	return &RecordMovementUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID string
	Type      string // IN u OUT
	Quantity  int64  // estrictamente positiva; el signo lo da Type
	Notes     string
}

// RecordMovement valida la entrada, verifica que el producto exista y ejecuta
// la unidad de trabajo: bloquear la fila del producto, rechazar salidas que
// dejarían stock negativo, insertar el movimiento y sumar el delta al stock.
// Commit si todo sale bien; Rollback completo si cualquier paso falla (ni
// movimiento sin contador ni contador sin movimiento). Devuelve el producto
// actualizado.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*dto.ProductResponse, error) {
	// Validación previa: ningún error aquí llega a abrir transacción.
	if input.ProductID == "" || !entity.ValidMovementType(input.Type) || input.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}

	// Existencia del producto, también sin transacción.
	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	var updated *entity.Product

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: movimientos concurrentes sobre el
		// mismo producto se serializan aquí; otros productos no esperan.
		locked, err := productRepo.GetForUpdate(input.ProductID)
		if err != nil {
			return err
		}
		if locked == nil {
			// Borrado entre la pre-verificación y el lock.
			return domain.ErrNotFound
		}

		mov := &entity.StockMovement{
			ProductID: input.ProductID,
			Type:      input.Type,
			Quantity:  input.Quantity,
			Notes:     input.Notes,
		}
		delta := mov.SignedQuantity()
		if locked.Stock+delta < 0 {
			return domain.ErrInsufficientStock
		}

		// Entrada del libro y delta del contador, misma transacción.
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		updated, err = productRepo.ApplyStockDelta(input.ProductID, delta, now)
		if err != nil {
			return err
		}
		if updated == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// ListMovements devuelve el historial de movimientos de un producto, más
// recientes primero.
func (uc *RecordMovementUseCase) ListMovements(productID string, limit, offset int) (*dto.MovementListResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			Notes:     m.Notes,
			CreatedAt: m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{Success: true, Count: len(items), Data: items}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		SKU:          p.SKU,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		Price:        p.Price,
		Stock:        p.Stock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
