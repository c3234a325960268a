package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-stock/internal/application/inventory"
	"github.com/jhoicas/inventario-stock/internal/domain"
	"github.com/jhoicas/inventario-stock/internal/domain/entity"
	"github.com/jhoicas/inventario-stock/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeStore estado compartido de los fakes. mu protege los datos en cada
// operación; txMu serializa transacciones completas (el análogo del bloqueo
// de fila del adaptador real).
type fakeStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	nextMovID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{products: map[string]*entity.Product{}}
}

func (s *fakeStore) addProduct(id string, stock int64) {
	now := time.Now()
	s.products[id] = &entity.Product{
		ID:        id,
		Name:      "producto " + id,
		Price:     decimal.NewFromInt(10),
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type storeSnapshot struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	nextMovID int64
}

func (s *fakeStore) snapshot() storeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	products := make(map[string]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	movements := make([]*entity.StockMovement, len(s.movements))
	copy(movements, s.movements)
	return storeSnapshot{products: products, movements: movements, nextMovID: s.nextMovID}
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = snap.products
	s.movements = snap.movements
	s.nextMovID = snap.nextMovID
}

// fakeProductRepo implementa repository.ProductRepository sobre fakeStore.
// applyDeltaErr permite inyectar una falla justo después del insert del
// movimiento, para los tests de atomicidad.
type fakeProductRepo struct {
	store         *fakeStore
	applyDeltaErr error
}

var _ repository.ProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(product *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *product
	r.store.products[product.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, p := range r.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}

func (r *fakeProductRepo) ApplyStockDelta(id string, delta int64, now time.Time) (*entity.Product, error) {
	if r.applyDeltaErr != nil {
		return nil, r.applyDeltaErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	p.Stock += delta
	p.UpdatedAt = now
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List() ([]*entity.Product, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	list := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		cp := *p
		list = append(list, &cp)
	}
	return list, nil
}

// fakeMovementRepo implementa repository.StockMovementRepository sobre fakeStore.
type fakeMovementRepo struct {
	store     *fakeStore
	createErr error
}

var _ repository.StockMovementRepository = (*fakeMovementRepo)(nil)

func (r *fakeMovementRepo) Create(movement *entity.StockMovement) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[movement.ProductID]; !ok {
		return domain.ErrNotFound
	}
	r.store.nextMovID++
	movement.ID = r.store.nextMovID
	movement.CreatedAt = time.Now()
	cp := *movement
	r.store.movements = append(r.store.movements, &cp)
	return nil
}

func (r *fakeMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var all []*entity.StockMovement
	for i := len(r.store.movements) - 1; i >= 0; i-- { // más recientes primero
		if r.store.movements[i].ProductID == productID {
			cp := *r.store.movements[i]
			all = append(all, &cp)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// fakeTxRunner serializa transacciones y restaura el estado completo si fn
// falla, imitando el Commit/Rollback del TxRunner real.
type fakeTxRunner struct {
	store       *fakeStore
	productRepo *fakeProductRepo
	movRepo     *fakeMovementRepo
	runs        int
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()
	r.runs++
	snap := r.store.snapshot()
	if err := fn(r.movRepo, r.productRepo); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

func buildUseCase(store *fakeStore) (*inventory.RecordMovementUseCase, *fakeTxRunner, *fakeProductRepo, *fakeMovementRepo) {
	productRepo := &fakeProductRepo{store: store}
	movRepo := &fakeMovementRepo{store: store}
	runner := &fakeTxRunner{store: store, productRepo: productRepo, movRepo: movRepo}
	return inventory.NewRecordMovementUseCase(runner, productRepo, movRepo), runner, productRepo, movRepo
}

// ledgerSum suma con signo de todos los movimientos de un producto.
func ledgerSum(store *fakeStore, productID string) int64 {
	store.mu.Lock()
	defer store.mu.Unlock()
	var sum int64
	for _, m := range store.movements {
		if m.ProductID == productID {
			sum += m.SignedQuantity()
		}
	}
	return sum
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación: ningún error de entrada debe abrir transacción
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_CantidadCeroRechazada(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 5)
	uc, runner, _, _ := buildUseCase(store)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 0,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, runner.runs, "la validación no debe abrir transacción")
	assert.Len(t, store.movements, 0)
	assert.Equal(t, int64(5), store.products["p1"].Stock)
}

func TestRecordMovement_CantidadNegativaRechazada(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 5)
	uc, runner, _, _ := buildUseCase(store)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeOUT, Quantity: -3,
	})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, runner.runs)
}

func TestRecordMovement_TipoInvalidoRechazado(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 5)
	uc, runner, _, _ := buildUseCase(store)

	for _, tipo := range []string{"", "in", "ADJUST", "TRANSFER"} {
		_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
			ProductID: "p1", Type: tipo, Quantity: 1,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %q", tipo)
	}
	assert.Equal(t, 0, runner.runs)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc, _, _, _ := buildUseCase(store)

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "fantasma", Type: entity.MovementTypeIN, Quantity: 1,
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, store.movements, 0, "no debe quedar entrada en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario completo: IN, salida excesiva rechazada, OUT hasta cero
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_Escenario(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 5)
	uc, _, _, _ := buildUseCase(store)
	ctx := context.Background()

	// IN 3: 5 -> 8, una entrada nueva en el libro
	out, err := uc.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 3, Notes: "reposición",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8), out.Stock)
	assert.Len(t, store.movements, 1)

	// OUT 10: rechazado, stock y libro intactos
	_, err = uc.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeOUT, Quantity: 10,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(8), store.products["p1"].Stock)
	assert.Len(t, store.movements, 1, "el rechazo no debe dejar entrada en el libro")

	// OUT 8: 8 -> 0, aceptado
	out, err = uc.RecordMovement(ctx, inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeOUT, Quantity: 8,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Stock)
	assert.Len(t, store.movements, 2)

	// Invariante: stock == stock inicial + suma con signo del libro
	assert.Equal(t, store.products["p1"].Stock, int64(5)+ledgerSum(store, "p1"))
}

func TestRecordMovement_ActualizaUpdatedAt(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 1)
	before := store.products["p1"].UpdatedAt
	uc, _, _, _ := buildUseCase(store)

	time.Sleep(5 * time.Millisecond)
	out, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 1,
	})
	require.NoError(t, err)
	assert.True(t, out.UpdatedAt.After(before), "updated_at debe refrescarse con el movimiento")
}

// ──────────────────────────────────────────────────────────────────────────────
// Atomicidad: si cualquier paso falla, ni el libro ni el contador cambian
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_RollbackSiFallaElLibro(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 5)
	uc, _, _, movRepo := buildUseCase(store)
	movRepo.createErr = errors.New("write failed")

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 3,
	})

	require.Error(t, err)
	assert.Equal(t, int64(5), store.products["p1"].Stock, "el contador no debe cambiar")
	assert.Len(t, store.movements, 0)
}

func TestRecordMovement_RollbackSiFallaElContador(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 5)
	uc, _, productRepo, _ := buildUseCase(store)
	productRepo.applyDeltaErr = errors.New("update failed")

	_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
		ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 3,
	})

	require.Error(t, err)
	assert.Len(t, store.movements, 0, "la entrada del libro debe revertirse con el rollback")
	assert.Equal(t, int64(5), store.products["p1"].Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: N entradas de 1 sobre el mismo producto, sin updates perdidos
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_ConcurrenciaSinUpdatesPerdidos(t *testing.T) {
	const n = 50
	store := newFakeStore()
	store.addProduct("p1", 0)
	uc, _, _, _ := buildUseCase(store)

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(context.Background(), inventory.MovementInput{
				ProductID: "p1", Type: entity.MovementTypeIN, Quantity: 1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(n), store.products["p1"].Stock)
	assert.Len(t, store.movements, n, "debe haber exactamente una entrada por movimiento")
	assert.Equal(t, int64(n), ledgerSum(store, "p1"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Historial de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_MasRecientesPrimero(t *testing.T) {
	store := newFakeStore()
	store.addProduct("p1", 0)
	uc, _, _, _ := buildUseCase(store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := uc.RecordMovement(ctx, inventory.MovementInput{
			ProductID: "p1", Type: entity.MovementTypeIN, Quantity: int64(i + 1),
		})
		require.NoError(t, err)
	}

	out, err := uc.ListMovements("p1", 50, 0)
	require.NoError(t, err)
	require.Equal(t, 3, out.Count)
	assert.True(t, out.Data[0].ID > out.Data[1].ID && out.Data[1].ID > out.Data[2].ID,
		"el historial va del movimiento más reciente al más antiguo")
}

func TestListMovements_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc, _, _, _ := buildUseCase(store)

	_, err := uc.ListMovements("fantasma", 50, 0)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
