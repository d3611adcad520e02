// Package guards verifies tower invariants.
//
// Check is the caller-facing verifier: it returns a typed validation
// error describing the first violated invariant. MustConsistent is the
// internal assertion form and panics, for places where a violated
// invariant can only mean a bug in the engine itself.
package guards

import (
	"github.com/lcalmvr/sub-assistant-sub001/core/attachment"
	"github.com/lcalmvr/sub-assistant-sub001/core/naming"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// Check verifies every tower invariant:
//
//   - stored-field validity and the exactly-one-writing-layer rule
//   - each attachment equals its derived value
//   - members of a quota-share run share one attachment
//   - attachments never decrease going up the stack
//   - the canonical name matches a fresh recompute
func Check(t tower.Tower) error {
	if err := t.Validate(); err != nil {
		return err
	}

	for i, l := range t.Layers {
		want, err := attachment.Compute(t.Layers, i)
		if err != nil {
			return err
		}
		if !l.Attachment.Equal(want) {
			return errors.Validationf(
				"layer %d attachment %s does not match derived value %s",
				i, l.Attachment.String(), want.String())
		}
		if i == 0 {
			continue
		}
		prev := t.Layers[i-1]
		if l.SharesSlotWith(prev) {
			if !l.Attachment.Equal(prev.Attachment) {
				return errors.Validationf(
					"quota-share co-participants at %d and %d attach at different points", i-1, i)
			}
		} else if l.Attachment.LessThan(prev.Attachment) {
			return errors.Validationf(
				"layer %d attaches below layer %d", i, i-1)
		}
	}

	if want := naming.OptionName(t); t.Name != want {
		return errors.Validationf("tower name %q is stale, derived name is %q", t.Name, want)
	}
	return nil
}

// MustConsistent panics if the tower violates any invariant. Reserved
// for engine-internal assertions where a violation is a bug, not input.
func MustConsistent(t tower.Tower) {
	if err := Check(t); err != nil {
		panic("INVARIANT VIOLATED: " + err.Error())
	}
}
