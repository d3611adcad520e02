// Package quote is the boundary between the tower engine and the
// external Quote aggregate. It owns the wire form of a program tower
// and the normalization quirks of the surrounding persistence layer;
// it performs no tower derivation of its own.
package quote

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lcalmvr/sub-assistant-sub001/core/engine"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// Status tracks a quote option through underwriting.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusQuoted   Status = "quoted"
	StatusBound    Status = "bound"
	StatusDeclined Status = "declined"
)

// Quote is one complete proposed program: a tower plus terms, owned by
// a submission. The tower has no lifecycle of its own beyond its quote.
type Quote struct {
	// ID identifies the quote option.
	ID uuid.UUID `json:"id"`

	// SubmissionID identifies the owning submission.
	SubmissionID uuid.UUID `json:"submission_id"`

	// Status is the underwriting status.
	Status Status `json:"status"`

	// Tower is the program structure, persisted verbatim including
	// engine-derived attachments.
	Tower tower.Tower `json:"tower"`

	// SubjectivityIDs links subjectivity records to this quote. The
	// store may hand these back as an array literal; see IDList.
	SubjectivityIDs IDList `json:"subjectivity_ids,omitempty"`

	// EndorsementIDs links endorsement records to this quote.
	EndorsementIDs IDList `json:"endorsement_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a draft quote for a submission with an empty tower in the
// given position.
func New(submissionID uuid.UUID, position tower.Position) Quote {
	now := time.Now().UTC()
	return Quote{
		ID:           uuid.New(),
		SubmissionID: submissionID,
		Status:       StatusDraft,
		Tower:        tower.Tower{Position: position},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Decoder carries the boundary configuration applied to incoming tower
// payloads.
type Decoder struct {
	// OwnMarker identifies the quoting entity's paper in legacy
	// role-less payloads.
	OwnMarker string

	// DefaultRetention is filled into towers whose payload carries no
	// tower-level default of its own.
	DefaultRetention decimal.NullDecimal
}

// NewDecoder builds a decoder from plain configuration values. A zero
// or negative retention means no default.
func NewDecoder(ownMarker string, defaultRetention float64) Decoder {
	d := Decoder{OwnMarker: ownMarker}
	if defaultRetention > 0 {
		d.DefaultRetention = decimal.NewNullDecimal(decimal.NewFromFloat(defaultRetention))
	}
	return d
}

// DecodeTower parses a tower wire form.
//
// Legacy payloads carry no role field; for those the writing layer is
// inferred once, at this boundary, by a case-insensitive substring
// match of OwnMarker against carrier names (first match, falling back
// to layer 0). The decoded tower is recalculated and validated, so
// callers only ever see a consistent stack.
func (d Decoder) DecodeTower(data []byte) (tower.Tower, error) {
	var t tower.Tower
	if err := json.Unmarshal(data, &t); err != nil {
		return tower.Tower{}, errors.Input("decoding tower payload", err)
	}
	if t.Position == "" {
		t.Position = tower.PositionPrimary
	}
	if !t.DefaultRetention.Valid {
		t.DefaultRetention = d.DefaultRetention
	}

	if legacyRoles(t.Layers) {
		assignRoles(t.Layers, d.OwnMarker)
	}

	t = engine.Recalculate(t)
	if err := t.Validate(); err != nil {
		return tower.Tower{}, err
	}
	return t, nil
}

// DecodeTower parses a tower wire form with no default retention.
func DecodeTower(data []byte, ownMarker string) (tower.Tower, error) {
	return Decoder{OwnMarker: ownMarker}.DecodeTower(data)
}

// EncodeTower renders the wire form handed back to the persistence
// collaborator, verbatim including recomputed attachments.
func EncodeTower(t tower.Tower) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, errors.Internal("encoding tower payload", err)
	}
	return data, nil
}

// legacyRoles reports whether the stack predates explicit roles.
func legacyRoles(layers []tower.Layer) bool {
	for _, l := range layers {
		if l.Role != "" {
			return false
		}
	}
	return len(layers) > 0
}

// assignRoles marks the first own-carrier match as writing and every
// other layer as following. No match marks layer 0.
func assignRoles(layers []tower.Layer, ownMarker string) {
	writing := 0
	if ownMarker != "" {
		for i, l := range layers {
			if strings.Contains(strings.ToLower(l.Carrier), strings.ToLower(ownMarker)) {
				writing = i
				break
			}
		}
	}
	for i := range layers {
		if i == writing {
			layers[i].Role = tower.RoleWriting
		} else {
			layers[i].Role = tower.RoleFollowing
		}
	}
}
