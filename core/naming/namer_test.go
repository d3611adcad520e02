package naming

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
)

func TestCompact(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{5_000_000, "$5M"},
		{10_000_000, "$10M"},
		{2_500_000, "$2.5M"},
		{25_000, "$25K"},
		{1_500, "$1.5K"},
		{750, "$750"},
		{0, "$0"},
		{-5_000_000, "-$5M"},
	}
	for _, tc := range cases {
		got := Compact(decimal.NewFromFloat(tc.in))
		assert.Equal(t, tc.want, got, "input %v", tc.in)
	}
}

func TestOptionNameEmptyTower(t *testing.T) {
	assert.Equal(t, "", OptionName(tower.Tower{Position: tower.PositionPrimary}))
}

func TestOptionNamePrimary(t *testing.T) {
	tw := tower.Tower{
		Position: tower.PositionPrimary,
		Layers: []tower.Layer{{
			Carrier:   "Sompo Intl",
			Role:      tower.RoleWriting,
			Limit:     decimal.NewFromInt(2_000_000),
			Retention: decimal.NewNullDecimal(decimal.NewFromInt(25_000)),
		}},
	}
	assert.Equal(t, "$2M x $25K", OptionName(tw))
}

func TestOptionNamePrimaryFallsBackToDefaultRetention(t *testing.T) {
	tw := tower.Tower{
		Position:         tower.PositionPrimary,
		DefaultRetention: decimal.NewNullDecimal(decimal.NewFromInt(50_000)),
		Layers: []tower.Layer{{
			Role:  tower.RoleWriting,
			Limit: decimal.NewFromInt(2_000_000),
		}},
	}
	assert.Equal(t, "$2M x $50K", OptionName(tw))
}

func TestOptionNameExcess(t *testing.T) {
	tw := tower.Tower{
		Position: tower.PositionExcess,
		Layers: []tower.Layer{
			{Role: tower.RoleFollowing, Limit: decimal.NewFromInt(10_000_000)},
			{Role: tower.RoleWriting, Limit: decimal.NewFromInt(5_000_000)},
		},
	}
	assert.Equal(t, "$5M xs $10M", OptionName(tw))
}

// Excess naming with a quota-share writing layer: participation is
// quoted against the shared slot, and the attachment is the slot
// group's, not the sum of member limits.
func TestOptionNameExcessWithQuotaShare(t *testing.T) {
	slot := decimal.NewNullDecimal(decimal.NewFromInt(10_000_000))
	tw := tower.Tower{
		Position: tower.PositionExcess,
		Layers: []tower.Layer{
			{Role: tower.RoleFollowing, Limit: decimal.NewFromInt(10_000_000)},
			{Role: tower.RoleWriting, Limit: decimal.NewFromInt(5_000_000), QuotaShare: slot},
			{Role: tower.RoleFollowing, Limit: decimal.NewFromInt(5_000_000), QuotaShare: slot},
		},
	}
	assert.Equal(t, "$5M po $10M xs $10M", OptionName(tw))
}

func TestOptionNameWithoutWritingLayerNamesFromBottom(t *testing.T) {
	tw := tower.Tower{
		Position: tower.PositionExcess,
		Layers: []tower.Layer{
			{Role: tower.RoleFollowing, Limit: decimal.NewFromInt(5_000_000)},
			{Role: tower.RoleFollowing, Limit: decimal.NewFromInt(5_000_000)},
		},
	}
	assert.Equal(t, "$5M xs $0", OptionName(tw))
}
