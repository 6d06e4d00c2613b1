// Package pdf implementa el reporte PDF del cierre de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: División + "Cierre de inventario" + Fecha           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Nombre | Ubicación | Cant | P.Unit | Total  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: artículos incluidos / importe valorizado           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appclosing "github.com/tu-usuario/railparts-api/internal/application/closing"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appclosing.ReportPDFGenerator = (*MarotoClosingGenerator)(nil)

// MarotoClosingGenerator implementa closing.ReportPDFGenerator usando Maroto v2.
type MarotoClosingGenerator struct{}

// NewMarotoClosingGenerator construye el generador.
func NewMarotoClosingGenerator() *MarotoClosingGenerator { return &MarotoClosingGenerator{} }

// GenerateClosingPDF genera el PDF del cierre y devuelve sus bytes.
func (g *MarotoClosingGenerator) GenerateClosingPDF(
	_ context.Context,
	division string,
	date time.Time,
	snapshots []*entity.ClosingSnapshot,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Cierre de inventario", true).
		WithAuthor(division, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(division, date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, s := range snapshots {
		m.AddRows(snapshotRow(s))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(snapshots))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: división (izq) y fecha de cierre (der).
func headerRow(division string, date time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(division, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Cierre de inventario", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FECHA DE CIERRE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(date.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := func(size int, label string, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: alignment, Color: colorPrimary,
		}))
	}
	return row.New(6).Add(
		header(2, "Código", align.Left),
		header(4, "Nombre", align.Left),
		header(2, "Ubicación", align.Left),
		header(1, "Cant.", align.Right),
		header(1, "P.Unit", align.Right),
		header(2, "Importe", align.Right),
	)
}

func snapshotRow(s *entity.ClosingSnapshot) core.Row {
	cell := func(size int, value string, alignment align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: alignment}))
	}
	return row.New(5).Add(
		cell(2, s.ItemCode, align.Left),
		cell(4, s.ItemName, align.Left),
		cell(2, s.Location, align.Left),
		cell(1, fmt.Sprintf("%d", s.ClosingQuantity), align.Right),
		cell(1, s.UnitPrice.StringFixed(2), align.Right),
		cell(2, s.TotalAmount.StringFixed(2), align.Right),
	)
}

// totalsRow: artículos incluidos e importe valorizado del cierre.
func totalsRow(snapshots []*entity.ClosingSnapshot) core.Row {
	total := decimal.Zero
	for _, s := range snapshots {
		total = total.Add(s.TotalAmount)
	}
	return row.New(10).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("%d artículos incluidos", len(snapshots)), props.Text{
				Size: 9, Color: colorGray, Top: 2,
			}),
		),
		col.New(5).Add(
			text.New("TOTAL VALORIZADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(total.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 5,
			}),
		),
	)
}
