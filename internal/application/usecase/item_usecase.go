package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/railparts-api/internal/application/dto"
	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/ledger"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
	"github.com/tu-usuario/railparts-api/pkg/textutil"
)

// ItemExcelExporter genera la planilla xlsx del catálogo.
type ItemExcelExporter interface {
	ExportItems(items []*entity.Item) ([]byte, error)
}

// ItemUseCase casos de uso CRUD para artículos. Los contadores solo se mutan
// vía movimientos y cierres; aquí únicamente se fija el stock inicial al crear.
type ItemUseCase struct {
	repo     repository.ItemRepository
	exporter ItemExcelExporter
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, exporter ItemExcelExporter) *ItemUseCase {
	return &ItemUseCase{repo: repo, exporter: exporter}
}

// Create registra un artículo nuevo. InitialStock entra como base de cierre
// para que la fórmula del ledger lo cubra desde el primer día.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	code := textutil.NormalizeStored(in.Code)
	existing, _ := uc.repo.GetByCode(code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.UnitPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Unit == "" {
		in.Unit = "EA"
	}
	now := time.Now()
	item := &entity.Item{
		ID:            uuid.New().String(),
		Code:          code,
		Name:          textutil.NormalizeStored(in.Name),
		Specification: in.Specification,
		Location:      in.Location,
		Unit:          in.Unit,
		UnitPrice:     in.UnitPrice,
		MinStock:      in.MinStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	item.SetCounters(ledger.Counters{Closing: in.InitialStock})
	if err := uc.repo.Create(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// GetByID obtiene un artículo por ID.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return toItemResponse(item), nil
}

// Update actualiza datos descriptivos. No toca contadores.
func (uc *ItemUseCase) Update(id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	if in.Name != nil {
		item.Name = textutil.NormalizeStored(*in.Name)
	}
	if in.Specification != nil {
		item.Specification = *in.Specification
	}
	if in.Location != nil {
		item.Location = *in.Location
	}
	if in.Unit != nil {
		item.Unit = *in.Unit
	}
	if in.UnitPrice != nil {
		if in.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item.UnitPrice = *in.UnitPrice
	}
	if in.MinStock != nil {
		item.MinStock = *in.MinStock
	}
	if in.Discontinued != nil {
		if *in.Discontinued {
			item.Status = entity.ItemStatusDiscontinued
		} else if item.Status == entity.ItemStatusDiscontinued {
			item.Status = ledger.StatusFor(item.CurrentQuantity, item.MinStock)
		}
	}
	// Rederiva el estado de stock si cambió el umbral
	if item.Status != entity.ItemStatusDiscontinued {
		item.Status = ledger.StatusFor(item.CurrentQuantity, item.MinStock)
	}
	item.UpdatedAt = time.Now()
	if err := uc.repo.Update(item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List busca artículos; q se normaliza (NFC, minúsculas) antes de consultar.
func (uc *ItemUseCase) List(q string, page dto.PageRequest) (*dto.ItemListResponse, error) {
	page.DefaultPage()
	items, err := uc.repo.List(textutil.NormalizeSearch(q), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, item := range items {
		resp.Items = append(resp.Items, *toItemResponse(item))
	}
	return resp, nil
}

// Export genera la planilla xlsx de todos los artículos activos.
func (uc *ItemUseCase) Export() (xlsxBytes []byte, filename string, err error) {
	items, err := uc.repo.ListActive()
	if err != nil {
		return nil, "", err
	}
	xlsxBytes, err = uc.exporter.ExportItems(items)
	if err != nil {
		return nil, "", err
	}
	return xlsxBytes, "articulos-" + time.Now().Format("2006-01-02") + ".xlsx", nil
}

func toItemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:              i.ID,
		Code:            i.Code,
		Name:            i.Name,
		Specification:   i.Specification,
		Location:        i.Location,
		Unit:            i.Unit,
		UnitPrice:       i.UnitPrice,
		MinStock:        i.MinStock,
		ClosingQuantity: i.ClosingQuantity,
		StockIn:         i.StockIn,
		StockOut:        i.StockOut,
		CurrentQuantity: i.CurrentQuantity,
		Status:          i.Status,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
