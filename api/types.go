package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/engine"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
)

// TowerRequest wraps a tower wire form. The payload is decoded through
// the quote boundary, so legacy role-less layers are accepted.
type TowerRequest struct {
	Tower json.RawMessage `json:"tower"`
}

// AddLayerRequest adds one layer to a tower.
type AddLayerRequest struct {
	Tower json.RawMessage `json:"tower"`

	Layer tower.Layer `json:"layer"`

	// InsertAt is the target slot; nil means the default slot
	// (immediately below the writing layer).
	InsertAt *int `json:"insert_at,omitempty"`
}

// RemoveLayerRequest removes one layer from a tower.
type RemoveLayerRequest struct {
	Tower json.RawMessage `json:"tower"`
	Index int             `json:"index"`
}

// EditLayerRequest applies a single-field edit to a tower.
type EditLayerRequest struct {
	Tower json.RawMessage `json:"tower"`
	Edit  engine.Edit     `json:"edit"`
}

// NormalizeRequest carries a raw association field in either of its
// store shapes.
type NormalizeRequest struct {
	Raw json.RawMessage `json:"raw"`
}

// NormalizeResponse is the normalized identifier list.
type NormalizeResponse struct {
	IDs []string `json:"ids"`
}

// LayerView is one layer of a response, with read-side derived rates.
type LayerView struct {
	Index      int                 `json:"index"`
	Carrier    string              `json:"carrier"`
	Role       tower.Role          `json:"role"`
	Limit      decimal.Decimal     `json:"limit"`
	Attachment decimal.Decimal     `json:"attachment"`
	Retention  decimal.NullDecimal `json:"retention,omitempty"`
	QuotaShare decimal.NullDecimal `json:"quota_share,omitempty"`
	Premium    decimal.NullDecimal `json:"premium,omitempty"`

	// RPM and ILF are derived on read and omitted when undefined.
	RPM *decimal.Decimal `json:"rpm,omitempty"`
	ILF *decimal.Decimal `json:"ilf,omitempty"`
}

// TowerResponse is the consistent tower produced by an operation.
type TowerResponse struct {
	// Tower is the wire form to persist verbatim.
	Tower tower.Tower `json:"tower"`

	// Name is the canonical option name (duplicated for convenience).
	Name string `json:"name"`

	// Layers is the derived display view.
	Layers []LayerView `json:"layers"`

	Metadata *ResponseMetadata `json:"metadata,omitempty"`
}

// ValidateResponse reports invariant-check results.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// ResponseMetadata carries request bookkeeping.
type ResponseMetadata struct {
	RequestID  string `json:"request_id"`
	DurationMs int64  `json:"duration_ms"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
