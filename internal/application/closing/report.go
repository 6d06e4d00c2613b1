package closing

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/railparts-api/internal/domain"
	"github.com/tu-usuario/railparts-api/internal/domain/entity"
	"github.com/tu-usuario/railparts-api/internal/domain/repository"
)

// ReportPDFGenerator genera la representación en PDF de un cierre.
type ReportPDFGenerator interface {
	GenerateClosingPDF(ctx context.Context, division string, date time.Time, snapshots []*entity.ClosingSnapshot) ([]byte, error)
}

// ReportExcelExporter genera la planilla xlsx de un cierre.
type ReportExcelExporter interface {
	ExportClosing(date time.Time, snapshots []*entity.ClosingSnapshot) ([]byte, error)
}

// ReportUseCase produce los reportes descargables de un cierre registrado.
type ReportUseCase struct {
	closingRepo repository.ClosingRepository
	pdfGen      ReportPDFGenerator
	excel       ReportExcelExporter
	division    string
}

// NewReportUseCase construye el caso de uso de reportes de cierre.
func NewReportUseCase(closingRepo repository.ClosingRepository, pdfGen ReportPDFGenerator, excel ReportExcelExporter, division string) *ReportUseCase {
	return &ReportUseCase{closingRepo: closingRepo, pdfGen: pdfGen, excel: excel, division: division}
}

// DownloadPDF genera el PDF del cierre de la fecha dada.
func (uc *ReportUseCase) DownloadPDF(ctx context.Context, date time.Time) (pdfBytes []byte, filename string, err error) {
	snapshots, err := uc.snapshots(date)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err = uc.pdfGen.GenerateClosingPDF(ctx, uc.division, date, snapshots)
	if err != nil {
		return nil, "", fmt.Errorf("reporte de cierre: %w", err)
	}
	return pdfBytes, fmt.Sprintf("cierre-%s.pdf", date.Format(DateLayout)), nil
}

// DownloadExcel genera la planilla xlsx del cierre de la fecha dada.
func (uc *ReportUseCase) DownloadExcel(ctx context.Context, date time.Time) (xlsxBytes []byte, filename string, err error) {
	snapshots, err := uc.snapshots(date)
	if err != nil {
		return nil, "", err
	}
	xlsxBytes, err = uc.excel.ExportClosing(date, snapshots)
	if err != nil {
		return nil, "", fmt.Errorf("planilla de cierre: %w", err)
	}
	return xlsxBytes, fmt.Sprintf("cierre-%s.xlsx", date.Format(DateLayout)), nil
}

func (uc *ReportUseCase) snapshots(date time.Time) ([]*entity.ClosingSnapshot, error) {
	snapshots, err := uc.closingRepo.ListByDate(date)
	if err != nil {
		return nil, err
	}
	if len(snapshots) == 0 {
		return nil, domain.ErrNotFound
	}
	return snapshots, nil
}
