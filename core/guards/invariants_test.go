// Package guards - Invariant tests
// These tests prove the invariants are real by intentionally violating them.
package guards

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/engine"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
)

func consistentTower() tower.Tower {
	return engine.Recalculate(tower.Tower{
		Position: tower.PositionExcess,
		Layers: []tower.Layer{
			{Carrier: "Other Re", Role: tower.RoleFollowing, Limit: decimal.NewFromInt(10_000_000)},
			{Carrier: "Sompo Intl", Role: tower.RoleWriting, Limit: decimal.NewFromInt(5_000_000)},
		},
	})
}

func TestCheckPassesConsistentTower(t *testing.T) {
	if err := Check(consistentTower()); err != nil {
		t.Fatalf("consistent tower failed invariant check: %v", err)
	}
}

func TestCheckDetectsStaleAttachment(t *testing.T) {
	tw := consistentTower()
	tw.Layers[1].Attachment = decimal.NewFromInt(1)

	err := Check(tw)
	if err == nil {
		t.Fatal("expected stale attachment to fail invariant check")
	}
	if !strings.Contains(err.Error(), "attachment") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDetectsStaleName(t *testing.T) {
	tw := consistentTower()
	tw.Name = "$99M xs $0"

	err := Check(tw)
	if err == nil {
		t.Fatal("expected stale name to fail invariant check")
	}
	if !strings.Contains(err.Error(), "stale") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckDetectsSplitQuotaShareAttachments(t *testing.T) {
	slot := decimal.NewNullDecimal(decimal.NewFromInt(10_000_000))
	tw := engine.Recalculate(tower.Tower{
		Position: tower.PositionExcess,
		Layers: []tower.Layer{
			{Role: tower.RoleWriting, Limit: decimal.NewFromInt(6_000_000), QuotaShare: slot},
			{Role: tower.RoleFollowing, Limit: decimal.NewFromInt(4_000_000), QuotaShare: slot},
		},
	})
	if err := Check(tw); err != nil {
		t.Fatalf("consistent quota-share tower failed check: %v", err)
	}

	// Force the co-participants apart. The stale-attachment check
	// trips first, which is fine: any detection is a pass here.
	tw.Layers[1].Attachment = decimal.NewFromInt(6_000_000)
	if err := Check(tw); err == nil {
		t.Fatal("expected split quota-share attachments to fail invariant check")
	}
}

func TestCheckDetectsMissingWritingLayer(t *testing.T) {
	tw := consistentTower()
	tw.Layers[1].Role = tower.RoleFollowing

	if err := Check(tw); err == nil {
		t.Fatal("expected tower without a writing layer to fail invariant check")
	}
}

func TestMustConsistentPanicsOnViolation(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for inconsistent tower, but no panic occurred")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T: %v", r, r)
		}
		if !strings.HasPrefix(msg, "INVARIANT VIOLATED") {
			t.Fatalf("unexpected panic message: %s", msg)
		}
	}()

	tw := consistentTower()
	tw.Layers[0].Attachment = decimal.NewFromInt(123)
	MustConsistent(tw)
}

func TestMustConsistentAcceptsConsistentTower(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("unexpected panic for consistent tower: %v", r)
		}
	}()
	MustConsistent(consistentTower())
}
