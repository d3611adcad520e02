package engine

import (
	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// Field names an editable layer field.
type Field string

const (
	FieldCarrier    Field = "carrier"
	FieldLimit      Field = "limit"
	FieldRetention  Field = "retention"
	FieldQuotaShare Field = "quota_share"
	FieldPremium    Field = "premium"
	FieldRPM        Field = "rpm"
	FieldILF        Field = "ilf"
)

// Edit is the wire form of a single-field layer edit, as submitted by
// the CLI and HTTP surfaces.
//
// Carrier carries the value for FieldCarrier; Amount carries it for
// every monetary field. An invalid (null) Amount clears retention,
// quota share or premium; the remaining fields require a value.
type Edit struct {
	Index   int                 `json:"index"`
	Field   Field               `json:"field"`
	Carrier string              `json:"carrier,omitempty"`
	Amount  decimal.NullDecimal `json:"amount,omitempty"`
}

// ApplyEdit routes an edit to the matching engine operation.
func ApplyEdit(t tower.Tower, e Edit) (tower.Tower, error) {
	switch e.Field {
	case FieldCarrier:
		return EditCarrier(t, e.Index, e.Carrier)
	case FieldLimit:
		if !e.Amount.Valid {
			return t, errors.Input("limit edit requires an amount", nil)
		}
		return EditLimit(t, e.Index, e.Amount.Decimal)
	case FieldRetention:
		return EditRetention(t, e.Index, e.Amount)
	case FieldQuotaShare:
		return EditQuotaShare(t, e.Index, e.Amount)
	case FieldPremium:
		if !e.Amount.Valid {
			return t, errors.Input("premium edit requires an amount", nil)
		}
		return EditPremium(t, e.Index, e.Amount.Decimal)
	case FieldRPM:
		if !e.Amount.Valid {
			return t, errors.Input("rpm edit requires an amount", nil)
		}
		return EditRPM(t, e.Index, e.Amount.Decimal)
	case FieldILF:
		if !e.Amount.Valid {
			return t, errors.Input("ilf edit requires an amount", nil)
		}
		return EditILF(t, e.Index, e.Amount.Decimal)
	default:
		return t, errors.Newf(errors.TypeInput, "unknown edit field %q", e.Field)
	}
}
