// Package attachment derives layer attachment points from the stack.
//
// The attachment of a layer is the cumulative size of everything below
// it, counted slot by slot: a quota-share run (consecutive layers that
// declare the same slot size) contributes its declared slot size once,
// regardless of how many carriers split it; a plain layer contributes
// its own limit. Attachment is pure derivation — the stored stack is
// the only input and nothing is mutated.
package attachment

import (
	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// Compute returns the attachment point of layers[index].
//
// Every member of a quota-share run attaches at the same point: the
// computation first rewinds to the start of the target's run, then
// accumulates the slots strictly below it. Index 0 always yields zero.
func Compute(layers []tower.Layer, index int) (decimal.Decimal, error) {
	if index < 0 || index >= len(layers) {
		return decimal.Zero, errors.InvalidLayerIndex(index, len(layers))
	}

	groupStart := index
	if layers[index].HasQuotaShare() {
		for groupStart > 0 && layers[groupStart-1].SharesSlotWith(layers[index]) {
			groupStart--
		}
	}

	total := decimal.Zero
	for i := 0; i < groupStart; {
		l := layers[i]
		if l.HasQuotaShare() {
			// The run's declared slot size counts once; co-participants
			// consume no additional attachment space.
			total = total.Add(l.QuotaShare.Decimal)
			i++
			for i < groupStart && layers[i].SharesSlotWith(l) {
				i++
			}
		} else {
			total = total.Add(l.Limit)
			i++
		}
	}
	return total, nil
}

// RecalculateAll returns a new stack with every layer's attachment
// replaced by its derived value. The input stack is not modified.
//
// It must run after any add, remove, reorder or quota-share edit before
// the stack is considered consistent, and it is idempotent: attachments
// are derived from stored fields only, so recomputing an already
// consistent stack reproduces it exactly.
func RecalculateAll(layers []tower.Layer) []tower.Layer {
	out := make([]tower.Layer, len(layers))
	copy(out, layers)
	for i := range out {
		// Index is always in range here; Compute cannot fail.
		att, _ := Compute(layers, i)
		out[i].Attachment = att
	}
	return out
}
