package api

import (
	"encoding/json"

	"github.com/lcalmvr/sub-assistant-sub001/core/engine"
	"github.com/lcalmvr/sub-assistant-sub001/core/guards"
	"github.com/lcalmvr/sub-assistant-sub001/core/quote"
	"github.com/lcalmvr/sub-assistant-sub001/core/rate"
	"github.com/lcalmvr/sub-assistant-sub001/core/tower"
	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
	"github.com/lcalmvr/sub-assistant-sub001/internal/errors"
)

// Handler orchestrates engine calls for the HTTP surface. It holds no
// state beyond configuration: every request carries its own tower.
type Handler struct {
	cfg     *config.Config
	decoder quote.Decoder
}

// NewHandler creates a handler bound to the given configuration.
func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg:     cfg,
		decoder: quote.NewDecoder(cfg.Carrier.OwnMarker, cfg.Tower.DefaultRetention),
	}
}

// decodeTower parses a tower payload through the quote boundary.
func (h *Handler) decodeTower(raw json.RawMessage) (tower.Tower, error) {
	if len(raw) == 0 {
		return tower.Tower{}, errors.Input("request carries no tower", nil)
	}
	return h.decoder.DecodeTower(raw)
}

// recalculate returns the tower with all derived quantities recomputed.
func (h *Handler) recalculate(raw json.RawMessage) (tower.Tower, error) {
	return h.decodeTower(raw)
}

// addLayer inserts a layer and returns the recalculated tower.
func (h *Handler) addLayer(req *AddLayerRequest) (tower.Tower, error) {
	t, err := h.decodeTower(req.Tower)
	if err != nil {
		return tower.Tower{}, err
	}
	insertAt := engine.InsertDefault
	if req.InsertAt != nil {
		insertAt = *req.InsertAt
	}
	if req.Layer.Role == "" {
		req.Layer.Role = tower.RoleFollowing
	}
	return engine.AddLayer(t, req.Layer, insertAt)
}

// removeLayer removes a layer and returns the recalculated tower.
func (h *Handler) removeLayer(req *RemoveLayerRequest) (tower.Tower, error) {
	t, err := h.decodeTower(req.Tower)
	if err != nil {
		return tower.Tower{}, err
	}
	return engine.RemoveLayer(t, req.Index)
}

// editLayer applies a single-field edit and returns the result.
func (h *Handler) editLayer(req *EditLayerRequest) (tower.Tower, error) {
	t, err := h.decodeTower(req.Tower)
	if err != nil {
		return tower.Tower{}, err
	}
	return engine.ApplyEdit(t, req.Edit)
}

// validate runs the invariant checker against a raw payload without
// recomputing it first, so persisted drift is actually visible.
func (h *Handler) validate(raw json.RawMessage) ValidateResponse {
	var t tower.Tower
	if err := json.Unmarshal(raw, &t); err != nil {
		return ValidateResponse{Valid: false, Error: "malformed tower payload: " + err.Error()}
	}
	if err := guards.Check(t); err != nil {
		return ValidateResponse{Valid: false, Error: err.Error()}
	}
	return ValidateResponse{Valid: true}
}

// towerResponse renders the uniform response for a consistent tower.
func (h *Handler) towerResponse(t tower.Tower) *TowerResponse {
	views := make([]LayerView, len(t.Layers))
	for i, l := range t.Layers {
		v := LayerView{
			Index:      i,
			Carrier:    l.Carrier,
			Role:       l.Role,
			Limit:      l.Limit,
			Attachment: l.Attachment,
			Retention:  l.Retention,
			QuotaShare: l.QuotaShare,
			Premium:    l.Premium,
		}
		if h.cfg.Output.ShowDerived {
			if rpm, ok := rate.RPM(l); ok {
				v.RPM = &rpm
			}
			if ilf, ok := rate.ILF(l, t.Layers[0]); ok {
				v.ILF = &ilf
			}
		}
		views[i] = v
	}
	return &TowerResponse{
		Tower:  t,
		Name:   t.Name,
		Layers: views,
	}
}

// statusFor maps the engine error taxonomy onto HTTP statuses.
func statusFor(err error) (code string, status int) {
	e, ok := err.(*errors.Error)
	if !ok {
		return "INTERNAL_ERROR", 500
	}
	switch e.Type {
	case errors.TypeInvalidLayerIndex, errors.TypeInput, errors.TypeValidation:
		return string(e.Type), 400
	case errors.TypeWritingLayerRemoval:
		return string(e.Type), 409
	default:
		return string(e.Type), 500
	}
}
