package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingPreviewRow lo que quedaría congelado para un artículo si se cierra.
type ClosingPreviewRow struct {
	ItemID          string          `json:"item_id"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	CurrentQuantity int64           `json:"current_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// ClosingPreviewResponse respuesta de GET /api/closings/preview.
type ClosingPreviewResponse struct {
	ClosingDate string              `json:"closing_date"`
	Rows        []ClosingPreviewRow `json:"rows"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

// CommitClosingRequest body para POST /api/closings.
type CommitClosingRequest struct {
	ClosingDate string `json:"closing_date" validate:"required,datetime=2006-01-02"`
}

// CommitClosingResponse resultado del cierre. Status es CLOSED o FAILED; en
// FAILED no queda ningún artículo cerrado (el lote es todo-o-nada) y
// ProcessedCount informa hasta dónde llegó el lote antes del error.
type CommitClosingResponse struct {
	Status         string `json:"status"`
	ClosingDate    string `json:"closing_date"`
	ProcessedCount int    `json:"processed_count"`
	FailedCount    int    `json:"failed_count"`
	Reason         string `json:"reason,omitempty"`
}

// ClosingSnapshotResponse fila de un cierre ya registrado.
type ClosingSnapshotResponse struct {
	ItemID          string          `json:"item_id"`
	ItemCode        string          `json:"item_code"`
	ItemName        string          `json:"item_name"`
	Specification   string          `json:"specification"`
	Location        string          `json:"location"`
	ClosingQuantity int64           `json:"closing_quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	ClosedBy        string          `json:"closed_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ClosingListResponse cierres de una fecha.
type ClosingListResponse struct {
	ClosingDate string                    `json:"closing_date"`
	Snapshots   []ClosingSnapshotResponse `json:"snapshots"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
}
