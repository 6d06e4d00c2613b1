package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/railparts-api/internal/application/usecase"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

var _ usecase.ItemExcelExporter = (*ItemExporter)(nil)

// ItemExporter genera la planilla xlsx del catálogo de artículos con sus
// contadores vigentes.
type ItemExporter struct{}

// NewItemExporter construye el exportador.
func NewItemExporter() *ItemExporter { return &ItemExporter{} }

// ExportItems genera la planilla del catálogo y devuelve sus bytes.
func (e *ItemExporter) ExportItems(items []*entity.Item) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"

	headers := []string{"Código", "Nombre", "Especificación", "Ubicación", "Unidad",
		"Precio unitario", "Stock mínimo", "Base de cierre", "Entradas", "Salidas", "Actual", "Estado"}
	cols := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L"}
	for i, h := range headers {
		f.SetCellValue(sheet, cols[i]+"1", h)
	}

	for i, item := range items {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+rowNo, item.Code)
		f.SetCellValue(sheet, "B"+rowNo, item.Name)
		f.SetCellValue(sheet, "C"+rowNo, item.Specification)
		f.SetCellValue(sheet, "D"+rowNo, item.Location)
		f.SetCellValue(sheet, "E"+rowNo, item.Unit)
		f.SetCellValue(sheet, "F"+rowNo, item.UnitPrice.InexactFloat64())
		f.SetCellValue(sheet, "G"+rowNo, item.MinStock)
		f.SetCellValue(sheet, "H"+rowNo, item.ClosingQuantity)
		f.SetCellValue(sheet, "I"+rowNo, item.StockIn)
		f.SetCellValue(sheet, "J"+rowNo, item.StockOut)
		f.SetCellValue(sheet, "K"+rowNo, item.CurrentQuantity)
		f.SetCellValue(sheet, "L"+rowNo, item.Status)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir catálogo: %w", err)
	}
	return buf.Bytes(), nil
}
