package tower

import (
	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// Tower is the aggregate consumed by the quote-editing surface: an
// ordered stack of layers (index 0 = bottom, closest to the insured)
// plus its position and derived display name.
type Tower struct {
	// Position distinguishes primary from excess programs.
	Position Position `json:"position"`

	// Layers is the ordered stack, bottom first.
	Layers []Layer `json:"layers"`

	// DefaultRetention is the tower-level fallback retention used for
	// naming a primary tower whose bottom layer carries none.
	DefaultRetention decimal.NullDecimal `json:"default_retention,omitempty"`

	// Name is the canonical display name. Derived; recomputed by the
	// engine after every mutation, never cached independently.
	Name string `json:"name"`
}

// WritingIndex returns the index of the writing layer, or -1 when the
// stack carries none.
func (t Tower) WritingIndex() int {
	for i, l := range t.Layers {
		if l.Role == RoleWriting {
			return i
		}
	}
	return -1
}

// CloneLayers returns a copy of the layer slice so operations can apply
// copy-on-write edits without aliasing the caller's stack.
func (t Tower) CloneLayers() []Layer {
	out := make([]Layer, len(t.Layers))
	copy(out, t.Layers)
	return out
}

// CheckIndex validates that i addresses an existing layer.
func (t Tower) CheckIndex(i int) error {
	if i < 0 || i >= len(t.Layers) {
		return errors.InvalidLayerIndex(i, len(t.Layers))
	}
	return nil
}

// Validate checks the stored (non-derived) fields of the tower.
//
// A non-empty stack must carry exactly one writing layer: zero or
// multiple matches would silently misname the option and misdirect
// removal protection, so both are rejected as data errors.
func (t Tower) Validate() error {
	writing := 0
	for i, l := range t.Layers {
		if l.Limit.IsNegative() {
			return errors.Validationf("layer %d has negative limit", i)
		}
		if l.QuotaShare.Valid && !l.QuotaShare.Decimal.IsPositive() {
			return errors.Validationf("layer %d declares a non-positive quota-share slot", i)
		}
		switch l.Role {
		case RoleWriting:
			writing++
		case RoleFollowing:
		default:
			return errors.Validationf("layer %d has unknown role %q", i, l.Role)
		}
	}
	if len(t.Layers) > 0 && writing != 1 {
		return errors.Validationf("tower must carry exactly one writing layer, found %d", writing)
	}
	switch t.Position {
	case PositionPrimary, PositionExcess:
	default:
		return errors.Validationf("unknown tower position %q", t.Position)
	}
	return nil
}
