package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/railparts-api/internal/application/inventory"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// memStore almacén en memoria compartido por los repos fake. txMu emula la
// serialización del SELECT FOR UPDATE: el runner lo retiene durante toda la
// transacción, de modo que dos movimientos concurrentes sobre el mismo
// artículo se ejecutan uno detrás del otro, igual que contra PostgreSQL.
type memStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	items     map[string]*entity.Item
	movs      map[string]*entity.Movement
	movsByKey map[string]*entity.Movement
	audit     []*entity.AuditEntry
	closeTime *time.Time
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[string]*entity.Item),
		movs:      make(map[string]*entity.Movement),
		movsByKey: make(map[string]*entity.Movement),
	}
}

type memTxRunner struct{ s *memStore }

func (r *memTxRunner) Run(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
	auditRepo repository.AuditRepository,
) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	return fn(&memItemRepo{s: r.s}, &memMovementRepo{s: r.s}, &memAuditRepo{s: r.s})
}

type memItemRepo struct{ s *memStore }

func (r *memItemRepo) Create(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *item
	return &cp, nil
}

func (r *memItemRepo) GetByCode(code string) (*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, item := range r.s.items {
		if item.Code == code {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) GetForUpdate(id string) (*entity.Item, error) { return r.GetByID(id) }

func (r *memItemRepo) UpdateCounters(item *entity.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) Update(item *entity.Item) error { return r.UpdateCounters(item) }

func (r *memItemRepo) List(string, int, int) ([]*entity.Item, error) { return r.ListActive() }

func (r *memItemRepo) ListActive() ([]*entity.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		if item.Status == entity.ItemStatusDiscontinued {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memItemRepo) ListActiveForUpdate() ([]*entity.Item, error) { return r.ListActive() }

type memMovementRepo struct{ s *memStore }

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.movsByKey[m.IdempotencyKey]; exists {
		return domain.ErrDuplicate
	}
	cp := *m
	r.s.movs[m.ID] = &cp
	r.s.movsByKey[m.IdempotencyKey] = &cp
	return nil
}

func (r *memMovementRepo) GetByID(id string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movs[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) GetByIdempotencyKey(key string) (*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movsByKey[key]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memMovementRepo) List(string, *time.Time, *time.Time, int, int) ([]*entity.Movement, error) {
	return nil, nil
}

func (r *memMovementRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movs[id]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.s.movs, id)
	delete(r.s.movsByKey, m.IdempotencyKey)
	return nil
}

func (r *memMovementRepo) SumSince(itemID string, since time.Time) (repository.MovementSums, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var sums repository.MovementSums
	for _, m := range r.s.movs {
		if m.ItemID != itemID || !m.CreatedAt.After(since) {
			continue
		}
		switch m.Type {
		case ledger.MovementTypeIN:
			sums.StockIn += m.Quantity
		case ledger.MovementTypeOUT, ledger.MovementTypeDISPOSAL:
			sums.StockOut += m.Quantity
		case ledger.MovementTypeADJUSTMENT:
			if m.Quantity > 0 {
				sums.StockIn += m.Quantity
			} else {
				sums.StockOut += -m.Quantity
			}
		}
	}
	return sums, nil
}

type memAuditRepo struct{ s *memStore }

func (r *memAuditRepo) Create(e *entity.AuditEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *e
	r.s.audit = append(r.s.audit, &cp)
	return nil
}

func (r *memAuditRepo) List(int, int) ([]*entity.AuditEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]*entity.AuditEntry(nil), r.s.audit...), nil
}

type memClosingRepo struct{ s *memStore }

func (r *memClosingRepo) CreateSnapshot(*entity.ClosingSnapshot) error { return nil }
func (r *memClosingRepo) ExistsForDate(time.Time) (bool, error)        { return false, nil }
func (r *memClosingRepo) LatestDate() (*time.Time, error)              { return nil, nil }

func (r *memClosingRepo) LatestCommitTime() (*time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.closeTime, nil
}

func (r *memClosingRepo) ListByDate(time.Time) ([]*entity.ClosingSnapshot, error) { return nil, nil }
func (r *memClosingRepo) ListDates(int, int) ([]time.Time, error)                 { return nil, nil }

var _ repository.ItemRepository = (*memItemRepo)(nil)
var _ repository.MovementRepository = (*memMovementRepo)(nil)
var _ repository.AuditRepository = (*memAuditRepo)(nil)
var _ repository.ClosingRepository = (*memClosingRepo)(nil)

func seedItem(s *memStore, id string, closing int64) *entity.Item {
	item := &entity.Item{
		ID:        id,
		Code:      "REL-001",
		Name:      "Relé de señalización 24V",
		Unit:      "EA",
		UnitPrice: decimal.RequireFromString("18.50"),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	item.SetCounters(ledger.Counters{Closing: closing})
	s.items[id] = item
	return item
}

func TestApply_EntradaYSalida(t *testing.T) {
	s := newMemStore()
	seedItem(s, "item-1", 100)
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})

	resp, err := uc.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "key-in-1",
		ItemID:         "item-1",
		Type:           ledger.MovementTypeIN,
		Quantity:       50,
		Actor:          "user-1",
		Reason:         "recepción de proveedor",
	})
	require.NoError(t, err)
	assert.False(t, resp.Duplicate)
	assert.Equal(t, int64(150), resp.NewQuantity)

	resp, err = uc.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "key-out-1",
		ItemID:         "item-1",
		Type:           ledger.MovementTypeOUT,
		Quantity:       30,
		Actor:          "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(120), resp.NewQuantity)

	item := s.items["item-1"]
	assert.Equal(t, int64(100), item.ClosingQuantity)
	assert.Equal(t, int64(50), item.StockIn)
	assert.Equal(t, int64(30), item.StockOut)
	assert.Equal(t, int64(120), item.CurrentQuantity)
	assert.Len(t, s.movs, 2)

	// El historial guarda el antes y el después de cada aplicación
	mov := s.movsByKey["key-out-1"]
	require.NotNil(t, mov)
	assert.Equal(t, int64(150), mov.PreviousQuantity)
	assert.Equal(t, int64(120), mov.NewQuantity)
}

// Reintento del cliente con la misma clave: la segunda llamada devuelve el
// movimiento original sin aplicar nada por segunda vez.
func TestApply_Idempotencia(t *testing.T) {
	s := newMemStore()
	seedItem(s, "item-1", 100)
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})

	input := inventory.MovementInput{
		IdempotencyKey: "key-1",
		ItemID:         "item-1",
		Type:           ledger.MovementTypeIN,
		Quantity:       10,
		Actor:          "user-1",
	}
	first, err := uc.Apply(context.Background(), input)
	require.NoError(t, err)
	require.False(t, first.Duplicate)

	second, err := uc.Apply(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.MovementID, second.MovementID)
	assert.Equal(t, first.NewQuantity, second.NewQuantity)

	assert.Equal(t, int64(110), s.items["item-1"].CurrentQuantity, "el reintento no debe aplicar de nuevo")
	assert.Len(t, s.movs, 1)
}

// Dos salidas de 80 sobre un saldo de 100: el bloqueo de fila serializa las
// transacciones y exactamente una debe fallar por stock insuficiente.
func TestApply_SalidasConcurrentes(t *testing.T) {
	s := newMemStore()
	seedItem(s, "item-1", 100)
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, key := range []string{"key-a", "key-b"} {
		wg.Add(1)
		go func(key string) {
			defer wg.Done()
			_, err := uc.Apply(context.Background(), inventory.MovementInput{
				IdempotencyKey: key,
				ItemID:         "item-1",
				Type:           ledger.MovementTypeOUT,
				Quantity:       80,
				Actor:          "user-1",
			})
			errs <- err
		}(key)
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}
	assert.Equal(t, 1, ok, "exactamente una salida debe aplicarse")
	assert.Equal(t, 1, insufficient)
	assert.Equal(t, int64(20), s.items["item-1"].CurrentQuantity)
	assert.Len(t, s.movs, 1)
}

func TestApply_Rechazos(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, "item-1", 100)
	uc := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})

	// Tipo desconocido
	_, err := uc.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "k1", ItemID: "item-1", Type: "TRANSFER", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Clave vacía
	_, err = uc.Apply(context.Background(), inventory.MovementInput{
		ItemID: "item-1", Type: ledger.MovementTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// Artículo inexistente
	_, err = uc.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "k2", ItemID: "nope", Type: ledger.MovementTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Artículo discontinuado
	item.Status = entity.ItemStatusDiscontinued
	_, err = uc.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "k3", ItemID: "item-1", Type: ledger.MovementTypeIN, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	assert.Empty(t, s.movs, "ningún rechazo debe dejar historial")
}

func TestReverse_DeshaceElMovimiento(t *testing.T) {
	s := newMemStore()
	seedItem(s, "item-1", 100)
	applyUC := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})
	reverseUC := inventory.NewReverseMovementUseCase(&memTxRunner{s: s}, &memClosingRepo{s: s})

	resp, err := applyUC.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "key-1",
		ItemID:         "item-1",
		Type:           ledger.MovementTypeOUT,
		Quantity:       40,
		Actor:          "user-1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(60), resp.NewQuantity)

	rev, err := reverseUC.Reverse(context.Background(), resp.MovementID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, int64(100), rev.NewQuantity)

	item := s.items["item-1"]
	assert.Equal(t, ledger.Counters{Closing: 100}, item.Counters(), "el reverso debe dejar los contadores como antes")
	assert.Empty(t, s.movs, "la fila del historial se elimina")
	require.Len(t, s.audit, 1)
	assert.Equal(t, entity.AuditMovementReverse, s.audit[0].Action)
}

// Un movimiento anterior al último cierre ya está plegado en closing_quantity:
// el reverso se rechaza y se corrige con un movimiento compensatorio.
func TestReverse_MovimientoAnteriorAlCierre(t *testing.T) {
	s := newMemStore()
	seedItem(s, "item-1", 100)
	applyUC := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})
	reverseUC := inventory.NewReverseMovementUseCase(&memTxRunner{s: s}, &memClosingRepo{s: s})

	resp, err := applyUC.Apply(context.Background(), inventory.MovementInput{
		IdempotencyKey: "key-1",
		ItemID:         "item-1",
		Type:           ledger.MovementTypeIN,
		Quantity:       10,
		Actor:          "user-1",
	})
	require.NoError(t, err)

	closeTime := time.Now().Add(time.Minute)
	s.closeTime = &closeTime

	_, err = reverseUC.Reverse(context.Background(), resp.MovementID, "admin-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Len(t, s.movs, 1, "el movimiento no debe eliminarse")
}

func TestReverse_NoEncontrado(t *testing.T) {
	s := newMemStore()
	reverseUC := inventory.NewReverseMovementUseCase(&memTxRunner{s: s}, &memClosingRepo{s: s})

	_, err := reverseUC.Reverse(context.Background(), "nope", "admin-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecheck_DetectaYCorrigeDeriva(t *testing.T) {
	s := newMemStore()
	item := seedItem(s, "item-1", 100)
	uc := inventory.NewReconcileUseCase(&memTxRunner{s: s}, &memClosingRepo{s: s})

	// Consistente: no cambia nada
	resp, err := uc.RecheckItem(context.Background(), "item-1")
	require.NoError(t, err)
	assert.False(t, resp.Changed)
	assert.Equal(t, int64(100), resp.CurrentQuantity)

	// Deriva simulada: la cantidad materializada no coincide con la fórmula
	item.CurrentQuantity = 999
	resp, err = uc.RecheckItem(context.Background(), "item-1")
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, int64(100), resp.CurrentQuantity)
	assert.Equal(t, int64(100), s.items["item-1"].CurrentQuantity)
}

func TestRebuild_ReconstruyeDesdeHistorial(t *testing.T) {
	s := newMemStore()
	seedItem(s, "item-1", 100)
	applyUC := inventory.NewApplyMovementUseCase(&memTxRunner{s: s}, &memMovementRepo{s: s})
	uc := inventory.NewReconcileUseCase(&memTxRunner{s: s}, &memClosingRepo{s: s})

	for _, in := range []struct {
		key, typ string
		qty      int64
	}{
		{"k1", ledger.MovementTypeIN, 50},
		{"k2", ledger.MovementTypeOUT, 30},
		{"k3", ledger.MovementTypeADJUSTMENT, -5},
	} {
		_, err := applyUC.Apply(context.Background(), inventory.MovementInput{
			IdempotencyKey: in.key, ItemID: "item-1", Type: in.typ, Quantity: in.qty, Actor: "user-1",
		})
		require.NoError(t, err)
	}

	// Escritura parcial simulada: los acumulados persistidos se corrompen
	broken := s.items["item-1"]
	broken.StockIn = 0
	broken.StockOut = 0
	broken.CurrentQuantity = 100

	resp, err := uc.RebuildFromHistory(context.Background(), "item-1", "admin-1")
	require.NoError(t, err)
	assert.True(t, resp.Changed)
	assert.Equal(t, int64(50), resp.StockIn)
	assert.Equal(t, int64(35), resp.StockOut)
	assert.Equal(t, int64(115), resp.CurrentQuantity)
	require.Len(t, s.audit, 1)
	assert.Equal(t, entity.AuditItemRebuild, s.audit[0].Action)
}
