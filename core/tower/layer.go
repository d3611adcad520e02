// Package tower defines the program tower data model: an ordered stack
// of risk-transfer layers owned by a quote option.
package tower

import (
	"github.com/shopspring/decimal"
)

// Role identifies whether a layer is the quoting entity's own paper or
// another carrier's participation in the same program.
type Role string

const (
	// RoleWriting marks the layer underwritten by the quoting entity.
	// A valid tower carries exactly one writing layer, and that layer
	// may never be removed through tower operations.
	RoleWriting Role = "writing"

	// RoleFollowing marks a layer written by another carrier.
	RoleFollowing Role = "following"
)

// Position identifies where a tower sits relative to the insured's risk.
type Position string

const (
	// PositionPrimary towers respond first; layer 0 carries a retention.
	PositionPrimary Position = "primary"

	// PositionExcess towers attach above an underlying program.
	PositionExcess Position = "excess"
)

// Layer is one band of coverage in the stack.
//
// Attachment is derived by the attachment calculator and is never edited
// directly; RPM and ILF are derived on read and never stored at all. The
// stored source of truth is carrier, role, limit, retention, quota share
// and premium.
type Layer struct {
	// Carrier is the free-text identifier of the risk-bearer. May be
	// empty while a layer is being drafted.
	Carrier string `json:"carrier"`

	// Role marks the writing layer vs. following layers.
	Role Role `json:"role"`

	// Limit is the size of coverage this layer provides.
	Limit decimal.Decimal `json:"limit"`

	// Attachment is the point at which this layer's coverage begins.
	// Derived from the stack; recomputed after every mutation.
	Attachment decimal.Decimal `json:"attachment"`

	// Retention is the insured's self-retained loss, meaningful only on
	// layer 0 of a primary tower.
	Retention decimal.NullDecimal `json:"retention,omitempty"`

	// QuotaShare, when set, names the total size of the shared slot this
	// layer participates in (not this layer's own limit). Consecutive
	// layers with the identical value co-occupy one slot.
	QuotaShare decimal.NullDecimal `json:"quota_share,omitempty"`

	// Premium is this layer's priced cost, if priced.
	Premium decimal.NullDecimal `json:"premium,omitempty"`
}

// HasQuotaShare reports whether the layer participates in a quota-share
// slot. A zero or negative declared slot size is treated as unset.
func (l Layer) HasQuotaShare() bool {
	return l.QuotaShare.Valid && l.QuotaShare.Decimal.IsPositive()
}

// SharesSlotWith reports whether two layers co-occupy the same
// quota-share slot, i.e. both declare the identical nonzero slot size.
func (l Layer) SharesSlotWith(other Layer) bool {
	return l.HasQuotaShare() && other.HasQuotaShare() &&
		l.QuotaShare.Decimal.Equal(other.QuotaShare.Decimal)
}

// HasPremium reports whether the layer has been priced.
func (l Layer) HasPremium() bool {
	return l.Premium.Valid
}

// HasLimit reports whether the layer has a usable (positive) limit.
func (l Layer) HasLimit() bool {
	return l.Limit.IsPositive()
}
