package closing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// closingStore almacén en memoria para el lote de cierre. El runner fake copia
// el estado antes de ejecutar la función y lo restaura si devuelve error, para
// reproducir la semántica todo-o-nada de la transacción real.
type closingStore struct {
	items     []*entity.Item
	snapshots []*entity.ClosingSnapshot
	audit     []*entity.AuditEntry

	// failOnCode fuerza un error al crear el snapshot de ese artículo.
	failOnCode string
}

type closingTxRunner struct{ s *closingStore }

func (r *closingTxRunner) RunClosing(_ context.Context, fn func(
	itemRepo repository.ItemRepository,
	closingRepo repository.ClosingRepository,
	auditRepo repository.AuditRepository,
) error) error {
	backupItems := make([]*entity.Item, len(r.s.items))
	for i, item := range r.s.items {
		cp := *item
		backupItems[i] = &cp
	}
	backupSnapshots := append([]*entity.ClosingSnapshot(nil), r.s.snapshots...)
	backupAudit := append([]*entity.AuditEntry(nil), r.s.audit...)

	err := fn(&closingItemRepo{s: r.s}, &closingRepoFake{s: r.s}, &closingAuditRepo{s: r.s})
	if err != nil {
		r.s.items = backupItems
		r.s.snapshots = backupSnapshots
		r.s.audit = backupAudit
	}
	return err
}

type closingItemRepo struct{ s *closingStore }

func (r *closingItemRepo) Create(*entity.Item) error                  { return nil }
func (r *closingItemRepo) GetByID(string) (*entity.Item, error)       { return nil, nil }
func (r *closingItemRepo) GetByCode(string) (*entity.Item, error)     { return nil, nil }
func (r *closingItemRepo) GetForUpdate(string) (*entity.Item, error)  { return nil, nil }
func (r *closingItemRepo) Update(*entity.Item) error                  { return nil }
func (r *closingItemRepo) List(string, int, int) ([]*entity.Item, error) {
	return r.ListActive()
}

func (r *closingItemRepo) UpdateCounters(item *entity.Item) error {
	for i, existing := range r.s.items {
		if existing.ID == item.ID {
			cp := *item
			r.s.items[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *closingItemRepo) ListActive() ([]*entity.Item, error) {
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

func (r *closingItemRepo) ListActiveForUpdate() ([]*entity.Item, error) { return r.ListActive() }

type closingRepoFake struct{ s *closingStore }

func (r *closingRepoFake) CreateSnapshot(snapshot *entity.ClosingSnapshot) error {
	if r.s.failOnCode != "" && snapshot.ItemCode == r.s.failOnCode {
		return domain.ErrConflict
	}
	for _, existing := range r.s.snapshots {
		if existing.ClosingDate.Equal(snapshot.ClosingDate) && existing.ItemID == snapshot.ItemID {
			return domain.ErrDuplicate
		}
	}
	cp := *snapshot
	r.s.snapshots = append(r.s.snapshots, &cp)
	return nil
}

func (r *closingRepoFake) ExistsForDate(date time.Time) (bool, error) {
	for _, s := range r.s.snapshots {
		if s.ClosingDate.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (r *closingRepoFake) LatestDate() (*time.Time, error)       { return nil, nil }
func (r *closingRepoFake) LatestCommitTime() (*time.Time, error) { return nil, nil }

func (r *closingRepoFake) ListByDate(date time.Time) ([]*entity.ClosingSnapshot, error) {
	var out []*entity.ClosingSnapshot
	for _, s := range r.s.snapshots {
		if s.ClosingDate.Equal(date) {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *closingRepoFake) ListDates(limit, offset int) ([]time.Time, error) {
	seen := make(map[time.Time]bool)
	var out []time.Time
	for _, s := range r.s.snapshots {
		if !seen[s.ClosingDate] {
			seen[s.ClosingDate] = true
			out = append(out, s.ClosingDate)
		}
	}
	return out, nil
}

type closingAuditRepo struct{ s *closingStore }

func (r *closingAuditRepo) Create(e *entity.AuditEntry) error {
	cp := *e
	r.s.audit = append(r.s.audit, &cp)
	return nil
}

func (r *closingAuditRepo) List(int, int) ([]*entity.AuditEntry, error) { return r.s.audit, nil }

var _ repository.ItemRepository = (*closingItemRepo)(nil)
var _ repository.ClosingRepository = (*closingRepoFake)(nil)
var _ repository.AuditRepository = (*closingAuditRepo)(nil)

func newClosingUseCase(s *closingStore) *closing.UseCase {
	return closing.NewUseCase(&closingItemRepo{s: s}, &closingRepoFake{s: s}, &closingTxRunner{s: s})
}

func storeWithItems() *closingStore {
	s := &closingStore{}
	for _, row := range []struct {
		id, code string
		closing  int64
		in, out  int64
		price    string
	}{
		{"item-1", "REL-001", 100, 50, 30, "18.50"},
		{"item-2", "FUS-102", 300, 0, 120, "1.20"},
	} {
		item := &entity.Item{
			ID:        row.id,
			Code:      row.code,
			Name:      "Artículo " + row.code,
			UnitPrice: decimal.RequireFromString(row.price),
		}
		item.SetCounters(ledger.Counters{Closing: row.closing, StockIn: row.in, StockOut: row.out})
		s.items = append(s.items, item)
	}
	return s
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
}

func TestPreview_CalculaSinPersistir(t *testing.T) {
	s := storeWithItems()
	uc := newClosingUseCase(s)

	resp, err := uc.Preview(context.Background(), yesterday())
	require.NoError(t, err)
	require.Len(t, resp.Rows, 2)

	// item-1: 100+50-30 = 120 × 18.50; item-2: 300-120 = 180 × 1.20
	assert.Equal(t, int64(120), resp.Rows[0].CurrentQuantity)
	assert.Equal(t, "2220", resp.Rows[0].TotalAmount.String())
	assert.Equal(t, int64(180), resp.Rows[1].CurrentQuantity)
	assert.Equal(t, "216", resp.Rows[1].TotalAmount.String())
	assert.Equal(t, "2436", resp.TotalAmount.String())

	assert.Empty(t, s.snapshots, "la previsualización no persiste nada")
	assert.Equal(t, int64(50), s.items[0].StockIn, "la previsualización no toca contadores")
}

func TestPreview_FechaFutura(t *testing.T) {
	uc := newClosingUseCase(storeWithItems())
	_, err := uc.Preview(context.Background(), time.Now().AddDate(0, 0, 2))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPreview_SinArticulos(t *testing.T) {
	uc := newClosingUseCase(&closingStore{})
	_, err := uc.Preview(context.Background(), yesterday())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El cierre pliega la cantidad actual como nueva base y deja los acumulados en
// cero, con un snapshot por artículo y una entrada de auditoría.
func TestCommit_CierraTodosLosArticulos(t *testing.T) {
	s := storeWithItems()
	uc := newClosingUseCase(s)
	date := yesterday()

	resp, err := uc.Commit(context.Background(), date, "supervisor-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ClosingStatusClosed, resp.Status)
	assert.Equal(t, 2, resp.ProcessedCount)
	assert.Zero(t, resp.FailedCount)

	require.Len(t, s.snapshots, 2)
	assert.Equal(t, int64(120), s.snapshots[0].ClosingQuantity)
	assert.Equal(t, "2220", s.snapshots[0].TotalAmount.String())

	// Contadores reiniciados: la cantidad actual no cambia
	assert.Equal(t, ledger.Counters{Closing: 120}, s.items[0].Counters())
	assert.Equal(t, ledger.Counters{Closing: 180}, s.items[1].Counters())
	assert.Equal(t, int64(120), s.items[0].CurrentQuantity)

	require.Len(t, s.audit, 1)
	assert.Equal(t, entity.AuditClosingCommit, s.audit[0].Action)
}

func TestCommit_FechaYaCerrada(t *testing.T) {
	s := storeWithItems()
	uc := newClosingUseCase(s)
	date := yesterday()

	_, err := uc.Commit(context.Background(), date, "supervisor-1")
	require.NoError(t, err)

	_, err = uc.Commit(context.Background(), date, "supervisor-1")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, s.snapshots, 2, "el segundo intento no debe añadir snapshots")
}

// Si un artículo falla a mitad del lote, la transacción revierte todo: ni
// snapshots parciales ni contadores a medio reiniciar.
func TestCommit_FalloRevierteTodo(t *testing.T) {
	s := storeWithItems()
	s.failOnCode = "FUS-102"
	uc := newClosingUseCase(s)

	resp, err := uc.Commit(context.Background(), yesterday(), "supervisor-1")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, entity.ClosingStatusFailed, resp.Status)
	assert.Equal(t, 1, resp.ProcessedCount, "el lote llegó hasta el primer artículo")
	assert.Equal(t, 1, resp.FailedCount)
	assert.Contains(t, resp.Reason, "FUS-102")

	assert.Empty(t, s.snapshots, "nada queda persistido tras el fallo")
	assert.Equal(t, ledger.Counters{Closing: 100, StockIn: 50, StockOut: 30}, s.items[0].Counters(),
		"los contadores del artículo ya procesado deben revertirse")
	assert.Empty(t, s.audit)
}

func TestListByDate_FechaSinCierre(t *testing.T) {
	uc := newClosingUseCase(storeWithItems())
	_, err := uc.ListByDate(context.Background(), yesterday())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDates_FormateaFechas(t *testing.T) {
	s := storeWithItems()
	uc := newClosingUseCase(s)
	date := yesterday()

	_, err := uc.Commit(context.Background(), date, "supervisor-1")
	require.NoError(t, err)

	dates, err := uc.ListDates(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, date.Format(closing.DateLayout), dates[0])
}
