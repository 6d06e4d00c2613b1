package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Code          string          `json:"code" validate:"required,max=64"`
	Name          string          `json:"name" validate:"required,max=200"`
	Specification string          `json:"specification" validate:"max=500"`
	Location      string          `json:"location" validate:"max=100"`
	Unit          string          `json:"unit" validate:"max=16"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	MinStock      int64           `json:"min_stock" validate:"min=0"`
	InitialStock  int64           `json:"initial_stock" validate:"min=0"`
}

// UpdateItemRequest body para PUT /api/items/:id. Campos nil no se tocan.
// Los contadores no son editables por esta vía: solo movimientos y cierres los mutan.
type UpdateItemRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,max=200"`
	Specification *string          `json:"specification,omitempty" validate:"omitempty,max=500"`
	Location      *string          `json:"location,omitempty" validate:"omitempty,max=100"`
	Unit          *string          `json:"unit,omitempty" validate:"omitempty,max=16"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	MinStock      *int64           `json:"min_stock,omitempty" validate:"omitempty,min=0"`
	Discontinued  *bool            `json:"discontinued,omitempty"`
}

// ItemResponse representación HTTP de un artículo.
type ItemResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Specification   string          `json:"specification"`
	Location        string          `json:"location"`
	Unit            string          `json:"unit"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	MinStock        int64           `json:"min_stock"`
	ClosingQuantity int64           `json:"closing_quantity"`
	StockIn         int64           `json:"stock_in"`
	StockOut        int64           `json:"stock_out"`
	CurrentQuantity int64           `json:"current_quantity"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse listado paginado de artículos.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// ApplyMovementRequest body para POST /api/inventory/movements.
// IdempotencyKey la genera el cliente (UUID); un reintento con la misma clave
// devuelve el movimiento ya registrado sin aplicarlo dos veces.
type ApplyMovementRequest struct {
	IdempotencyKey string           `json:"idempotency_key" validate:"required,uuid4"`
	ItemID         string           `json:"item_id" validate:"required,uuid4"`
	Type           string           `json:"type" validate:"required,oneof=IN OUT ADJUSTMENT DISPOSAL"`
	Quantity       int64            `json:"quantity" validate:"required"`
	UnitPrice      *decimal.Decimal `json:"unit_price,omitempty"`
	Reason         string           `json:"reason" validate:"max=500"`
}

// MovementResponse representación HTTP de un movimiento.
type MovementResponse struct {
	ID               string          `json:"id"`
	ItemID           string          `json:"item_id"`
	Type             string          `json:"type"`
	Quantity         int64           `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	PreviousQuantity int64           `json:"previous_quantity"`
	NewQuantity      int64           `json:"new_quantity"`
	Reason           string          `json:"reason"`
	CreatedBy        string          `json:"created_by"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ApplyMovementResponse respuesta de la aplicación de un movimiento.
type ApplyMovementResponse struct {
	MovementID  string `json:"movement_id"`
	NewQuantity int64  `json:"new_quantity"`
	Duplicate   bool   `json:"duplicate,omitempty"` // true si la clave de idempotencia ya estaba registrada
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// RecheckResponse resultado del recheck/rebuild de consistencia de un artículo.
type RecheckResponse struct {
	ItemID          string `json:"item_id"`
	ClosingQuantity int64  `json:"closing_quantity"`
	StockIn         int64  `json:"stock_in"`
	StockOut        int64  `json:"stock_out"`
	CurrentQuantity int64  `json:"current_quantity"`
	Changed         bool   `json:"changed"` // true si la cantidad persistida difería de la derivada
}
