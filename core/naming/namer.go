// Package naming derives the canonical display name of a program tower.
//
// The name is a pure function of the stack and the tower position. It is
// recomputed by the engine after every mutation and never cached
// independently of the stack it describes.
package naming

import (
	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/attachment"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
)

// OptionName returns the canonical name of the tower as quoted from the
// writing layer's perspective.
//
// Excess towers read "{limit}[ po {slot}] xs {attachment}": the writing
// layer's limit, its quota-share participation if any ("po" =
// participation of), and its derived attachment point. Primary towers
// read "{limit} x {retention}", falling back to the tower-level default
// retention when layer 0 carries none.
func OptionName(t tower.Tower) string {
	if len(t.Layers) == 0 {
		return ""
	}

	wi := t.WritingIndex()
	if wi < 0 {
		// Validation enforces a writing layer on every well-formed
		// tower; a draft stack without one names from the bottom.
		wi = 0
	}
	writing := t.Layers[wi]

	if t.Position == tower.PositionExcess {
		att, _ := attachment.Compute(t.Layers, wi)
		var b []byte
		b = append(b, Compact(writing.Limit)...)
		if writing.HasQuotaShare() {
			b = append(b, " po "...)
			b = append(b, Compact(writing.QuotaShare.Decimal)...)
		}
		b = append(b, " xs "...)
		b = append(b, Compact(att)...)
		return string(b)
	}

	retention := decimal.Zero
	if bottom := t.Layers[0]; bottom.Retention.Valid {
		retention = bottom.Retention.Decimal
	} else if t.DefaultRetention.Valid {
		retention = t.DefaultRetention.Decimal
	}
	return Compact(writing.Limit) + " x " + Compact(retention)
}
