// Package rate keeps premium, rate-per-million and increased-limit-factor
// consistent under edits to any one of them.
//
// Premium is the only stored field of the three. RPM and ILF are derived
// on read with full decimal precision; rounding happens only when an
// edit writes premium back, so repeated edits never compound rounding
// error.
package rate

import (
	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

var million = decimal.NewFromInt(1_000_000)

var hundred = decimal.NewFromInt(100)

// RPM returns the layer's rate per million of limit. The second return
// is false when RPM is undefined (no premium, or no usable limit).
func RPM(l tower.Layer) (decimal.Decimal, bool) {
	if !l.HasPremium() || !l.HasLimit() {
		return decimal.Zero, false
	}
	return l.Premium.Decimal.Div(l.Limit.Div(million)), true
}

// ILF returns the layer's increased-limit-factor as a percentage of the
// base layer's RPM. Undefined when either RPM is undefined or the base
// RPM is zero.
func ILF(l, base tower.Layer) (decimal.Decimal, bool) {
	baseRPM, ok := RPM(base)
	if !ok || baseRPM.IsZero() {
		return decimal.Zero, false
	}
	layerRPM, ok := RPM(l)
	if !ok {
		return decimal.Zero, false
	}
	return hundred.Mul(layerRPM).Div(baseRPM), true
}

// BaseRPM returns the derivable RPM of the stack's bottom layer, the
// pricing anchor for ILF across the whole stack.
func BaseRPM(layers []tower.Layer) (decimal.Decimal, bool) {
	if len(layers) == 0 {
		return decimal.Zero, false
	}
	return RPM(layers[0])
}

// ApplyPremiumEdit sets the layer's premium. RPM and ILF follow
// implicitly on the next read; nothing else is touched.
func ApplyPremiumEdit(l tower.Layer, premium decimal.Decimal) tower.Layer {
	l.Premium = decimal.NewNullDecimal(premium.Round(0))
	return l
}

// ApplyRPMEdit back-derives premium from an edited RPM, rounded to the
// nearest whole monetary unit. With no usable limit the edit is
// degenerate: the layer is returned unchanged alongside a
// DegenerateRateEdit error for the aggregate to recover.
func ApplyRPMEdit(l tower.Layer, rpm decimal.Decimal) (tower.Layer, error) {
	if !l.HasLimit() {
		return l, errors.DegenerateRateEdit("layer has no limit to rate against")
	}
	l.Premium = decimal.NewNullDecimal(rpm.Mul(l.Limit.Div(million)).Round(0))
	return l, nil
}

// ApplyILFEdit back-derives premium from an edited ILF percentage and
// the base layer's RPM. Degenerate when the layer has no usable limit
// or the base RPM is undefined or zero.
func ApplyILFEdit(l tower.Layer, ilfPercent, baseRPM decimal.Decimal) (tower.Layer, error) {
	if !l.HasLimit() {
		return l, errors.DegenerateRateEdit("layer has no limit to rate against")
	}
	if baseRPM.IsZero() {
		return l, errors.DegenerateRateEdit("base layer RPM is undefined")
	}
	premium := ilfPercent.Div(hundred).Mul(baseRPM).Mul(l.Limit.Div(million))
	l.Premium = decimal.NewNullDecimal(premium.Round(0))
	return l, nil
}
