// Package engine provides the primary API for program tower operations.
// CLI and HTTP surfaces are thin wrappers around this engine.
//
// Every operation is pure: it takes a tower and returns a new,
// fully consistent one (attachments recomputed, name recomputed). The
// caller owns the notion of current vs. pending tower and discards
// stale copies after each edit.
package engine

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lcalmvr/sub-assistant-sub001/core/attachment"
	"github.com/lcalmvr/sub-assistant-sub001/core/naming"
	"github.com/lcalmvr/sub-assistant-sub001/core/rate"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
	"github.com/lcalmvr/sub-assistant-sub001/internal/logging"
)

// InsertDefault places a new layer immediately below the writing layer,
// or on top of the stack when no writing layer resolves.
const InsertDefault = -1

// Recalculate returns the tower with every derived quantity
// (attachments, canonical name) recomputed from stored fields.
func Recalculate(t tower.Tower) tower.Tower {
	t.Layers = attachment.RecalculateAll(t.Layers)
	t.Name = naming.OptionName(t)
	return t
}

// AddLayer inserts a layer at the given position and returns the
// recalculated tower. insertAt may be InsertDefault, any index in
// [0, len] (len appends on top); anything else is an InvalidLayerIndex.
func AddLayer(t tower.Tower, l tower.Layer, insertAt int) (tower.Tower, error) {
	// A stack carries exactly one writing layer; a second one would be
	// returned to the caller for verbatim persistence, so fail closed
	// before any mutation.
	if l.Role == tower.RoleWriting && t.WritingIndex() >= 0 {
		return t, errors.Validation("stack already carries a writing layer")
	}
	if insertAt == InsertDefault {
		if wi := t.WritingIndex(); wi >= 0 {
			insertAt = wi
		} else {
			insertAt = len(t.Layers)
		}
	}
	if insertAt < 0 || insertAt > len(t.Layers) {
		return t, errors.InvalidLayerIndex(insertAt, len(t.Layers)+1)
	}

	layers := make([]tower.Layer, 0, len(t.Layers)+1)
	layers = append(layers, t.Layers[:insertAt]...)
	layers = append(layers, l)
	layers = append(layers, t.Layers[insertAt:]...)
	t.Layers = layers
	return Recalculate(t), nil
}

// RemoveLayer removes the layer at index and returns the recalculated
// tower. Removing the writing layer is a usage error: the tower is
// returned unchanged with a WritingLayerRemoval error, before any
// mutation occurs.
func RemoveLayer(t tower.Tower, index int) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	if t.Layers[index].Role == tower.RoleWriting {
		return t, errors.WritingLayerRemoval(index)
	}

	layers := make([]tower.Layer, 0, len(t.Layers)-1)
	layers = append(layers, t.Layers[:index]...)
	layers = append(layers, t.Layers[index+1:]...)
	t.Layers = layers
	return Recalculate(t), nil
}

// EditCarrier replaces the carrier name on one layer.
func EditCarrier(t tower.Tower, index int, carrier string) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	layers := t.CloneLayers()
	layers[index].Carrier = carrier
	t.Layers = layers
	return Recalculate(t), nil
}

// EditLimit replaces a layer's limit. Attachments of every layer above
// shift, and the layer's RPM/ILF shift implicitly since premium is kept.
func EditLimit(t tower.Tower, index int, limit decimal.Decimal) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	layers := t.CloneLayers()
	layers[index].Limit = limit
	t.Layers = layers
	return Recalculate(t), nil
}

// EditRetention sets or clears (invalid NullDecimal) a layer's retention.
func EditRetention(t tower.Tower, index int, retention decimal.NullDecimal) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	layers := t.CloneLayers()
	layers[index].Retention = retention
	t.Layers = layers
	return Recalculate(t), nil
}

// EditQuotaShare sets or clears a layer's quota-share slot. Clearing the
// last member of a run degrades it to an ordinary layer; either way the
// whole stack above is re-attached.
func EditQuotaShare(t tower.Tower, index int, quotaShare decimal.NullDecimal) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	layers := t.CloneLayers()
	layers[index].QuotaShare = quotaShare
	t.Layers = layers
	return Recalculate(t), nil
}

// EditPremium sets the layer's premium directly.
func EditPremium(t tower.Tower, index int, premium decimal.Decimal) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	layers := t.CloneLayers()
	layers[index] = rate.ApplyPremiumEdit(layers[index], premium)
	t.Layers = layers
	return Recalculate(t), nil
}

// EditRPM back-derives the layer's premium from an edited rate per
// million. A degenerate edit (no usable limit) is recovered locally:
// the tower comes back unchanged and no error escapes the engine.
func EditRPM(t tower.Tower, index int, rpm decimal.Decimal) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	layers := t.CloneLayers()
	edited, err := rate.ApplyRPMEdit(layers[index], rpm)
	if err != nil {
		logging.Debug("rate edit dropped",
			zap.Int("layer", index),
			zap.String("field", "rpm"),
			zap.Error(err))
		return t, nil
	}
	layers[index] = edited
	t.Layers = layers
	return Recalculate(t), nil
}

// EditILF back-derives the layer's premium from an edited ILF
// percentage against the base layer's RPM. Degenerate edits (no usable
// limit, or no derivable base RPM) are recovered locally like EditRPM.
func EditILF(t tower.Tower, index int, ilfPercent decimal.Decimal) (tower.Tower, error) {
	if err := t.CheckIndex(index); err != nil {
		return t, err
	}
	baseRPM, ok := rate.BaseRPM(t.Layers)
	if !ok {
		logging.Debug("rate edit dropped",
			zap.Int("layer", index),
			zap.String("field", "ilf"),
			zap.String("reason", "base layer RPM undefined"))
		return t, nil
	}
	layers := t.CloneLayers()
	edited, err := rate.ApplyILFEdit(layers[index], ilfPercent, baseRPM)
	if err != nil {
		logging.Debug("rate edit dropped",
			zap.Int("layer", index),
			zap.String("field", "ilf"),
			zap.Error(err))
		return t, nil
	}
	layers[index] = edited
	t.Layers = layers
	return Recalculate(t), nil
}
