// Package excel implementa la planilla xlsx del cierre de inventario.
package excel

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	appclosing "github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

var _ appclosing.ReportExcelExporter = (*ClosingExporter)(nil)

// ClosingExporter implementa closing.ReportExcelExporter usando excelize.
type ClosingExporter struct{}

// NewClosingExporter construye el exportador.
func NewClosingExporter() *ClosingExporter { return &ClosingExporter{} }

// ExportClosing genera la planilla del cierre y devuelve sus bytes.
func (e *ClosingExporter) ExportClosing(date time.Time, snapshots []*entity.ClosingSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"

	f.SetCellValue(sheet, "A1", "Fecha de cierre")
	f.SetCellValue(sheet, "B1", date.Format("2006-01-02"))

	// Encabezados
	f.SetCellValue(sheet, "A3", "Código")
	f.SetCellValue(sheet, "B3", "Nombre")
	f.SetCellValue(sheet, "C3", "Especificación")
	f.SetCellValue(sheet, "D3", "Ubicación")
	f.SetCellValue(sheet, "E3", "Cantidad")
	f.SetCellValue(sheet, "F3", "Precio unitario")
	f.SetCellValue(sheet, "G3", "Importe")

	// Datos
	for i, s := range snapshots {
		rowNo := fmt.Sprint(i + 4)
		f.SetCellValue(sheet, "A"+rowNo, s.ItemCode)
		f.SetCellValue(sheet, "B"+rowNo, s.ItemName)
		f.SetCellValue(sheet, "C"+rowNo, s.Specification)
		f.SetCellValue(sheet, "D"+rowNo, s.Location)
		f.SetCellValue(sheet, "E"+rowNo, s.ClosingQuantity)
		f.SetCellValue(sheet, "F"+rowNo, s.UnitPrice.InexactFloat64())
		f.SetCellValue(sheet, "G"+rowNo, s.TotalAmount.InexactFloat64())
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir planilla: %w", err)
	}
	return buf.Bytes(), nil
}
