package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
)

func newTestServer() *Server {
	cfg := config.Default()
	cfg.Carrier.OwnMarker = "sompo"
	return NewServer("test", cfg)
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

var excessTowerPayload = json.RawMessage(`{
	"position": "excess",
	"layers": [
		{"carrier": "Other Re", "role": "following", "limit": 10000000, "premium": 600000},
		{"carrier": "Sompo Intl", "role": "writing", "limit": 5000000, "premium": 150000}
	]
}`)

func TestHealthAndVersion(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, s, http.MethodGet, "/version", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	var v map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "test", v["version"])
}

func TestRecalculateEndpoint(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/v1/tower/recalculate", TowerRequest{Tower: excessTowerPayload})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TowerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "$5M xs $10M", resp.Name)
	require.Len(t, resp.Layers, 2)
	assert.Equal(t, "10000000", resp.Layers[1].Attachment.String())
	// Derived rates: base RPM 60,000; writing layer RPM 30,000 -> ILF 50.
	require.NotNil(t, resp.Layers[1].RPM)
	assert.Equal(t, "30000", resp.Layers[1].RPM.String())
	require.NotNil(t, resp.Layers[1].ILF)
	assert.Equal(t, "50", resp.Layers[1].ILF.String())
	require.NotNil(t, resp.Metadata)
	assert.NotEmpty(t, resp.Metadata.RequestID)
}

func TestNameEndpoint(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/v1/tower/name", TowerRequest{Tower: excessTowerPayload})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "$5M xs $10M", resp["name"])
}

func TestNameEndpointUsesConfiguredDefaultRetention(t *testing.T) {
	s := newTestServer()
	primary := json.RawMessage(`{
		"position": "primary",
		"layers": [
			{"carrier": "Sompo Intl", "role": "writing", "limit": 2000000}
		]
	}`)

	rec := doJSON(t, s, http.MethodPost, "/v1/tower/name", TowerRequest{Tower: primary})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// No retention anywhere in the payload: the configured default fills in.
	assert.Equal(t, "$2M x $25K", resp["name"])
}

func TestValidateEndpointFlagsStaleAttachment(t *testing.T) {
	s := newTestServer()
	stale := json.RawMessage(`{
		"position": "excess",
		"layers": [
			{"carrier": "Other Re", "role": "following", "limit": 10000000},
			{"carrier": "Sompo Intl", "role": "writing", "limit": 5000000, "attachment": 123}
		],
		"name": "$5M xs $10M"
	}`)
	rec := doJSON(t, s, http.MethodPost, "/v1/tower/validate", TowerRequest{Tower: stale})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Contains(t, resp.Error, "attachment")
}

func TestAddLayerEndpoint(t *testing.T) {
	s := newTestServer()
	var layer map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"carrier":"Third Re","limit":5000000}`), &layer))

	rec := doJSON(t, s, http.MethodPost, "/v1/tower/layers/add", map[string]any{
		"tower": json.RawMessage(excessTowerPayload),
		"layer": layer,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TowerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Layers, 3)
	// Default slot: below the writing layer, pushing it up.
	assert.Equal(t, "Third Re", resp.Layers[1].Carrier)
	assert.Equal(t, "$5M xs $15M", resp.Name)
}

func TestAddSecondWritingLayerEndpointIsBadRequest(t *testing.T) {
	s := newTestServer()
	var layer map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"carrier":"Sompo Intl","role":"writing","limit":5000000}`), &layer))

	rec := doJSON(t, s, http.MethodPost, "/v1/tower/layers/add", map[string]any{
		"tower": json.RawMessage(excessTowerPayload),
		"layer": layer,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VALIDATION_ERROR", resp.Code)
}

func TestRemoveWritingLayerEndpointConflicts(t *testing.T) {
	s := newTestServer()
	rec := doJSON(t, s, http.MethodPost, "/v1/tower/layers/remove", RemoveLayerRequest{
		Tower: excessTowerPayload,
		Index: 1,
	})
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "WRITING_LAYER_REMOVAL", resp.Code)
}

func TestEditEndpointBadIndexIsBadRequest(t *testing.T) {
	s := newTestServer()
	body := map[string]any{
		"tower": json.RawMessage(excessTowerPayload),
		"edit":  map[string]any{"index": 9, "field": "premium", "amount": 500000},
	}
	rec := doJSON(t, s, http.MethodPost, "/v1/tower/edit", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_LAYER_INDEX", resp.Code)
}

func TestEditEndpointAppliesRPMEdit(t *testing.T) {
	s := newTestServer()
	body := map[string]any{
		"tower": json.RawMessage(excessTowerPayload),
		"edit":  map[string]any{"index": 1, "field": "rpm", "amount": 100000},
	}
	rec := doJSON(t, s, http.MethodPost, "/v1/tower/edit", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TowerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "500000", resp.Layers[1].Premium.Decimal.String())
}

func TestNormalizeEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doJSON(t, s, http.MethodPost, "/v1/associations/normalize", map[string]any{
		"raw": "{subj-1,subj-2}",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp NormalizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"subj-1", "subj-2"}, resp.IDs)

	rec = doJSON(t, s, http.MethodPost, "/v1/associations/normalize", map[string]any{
		"raw": []string{"end-1"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"end-1"}, resp.IDs)
}

func TestMalformedBodyIsBadRequest(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/tower/recalculate", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
