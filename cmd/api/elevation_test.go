package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"medi-elevation/internal/config"
	"medi-elevation/internal/edit"
	"medi-elevation/internal/types"
)

// mockProvider answers from a table of response bodies keyed by latitude.
type mockProvider struct {
	bodies map[float64]string
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) FetchElevation(ctx context.Context, coords types.Coords) ([]byte, error) {
	body, ok := m.bodies[coords.Latitude]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return []byte(body), nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	batches []*edit.EditBatch
	diags   [][]edit.Diagnostic
}

func (p *recordingPublisher) PublishBatch(ctx context.Context, batch *edit.EditBatch, diagnostics []edit.Diagnostic) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.batches = append(p.batches, batch)
	p.diags = append(p.diags, diagnostics)
	return nil
}

func (p *recordingPublisher) Close() {}

func newTestApp(t *testing.T, bodies map[float64]string) (*App, *recordingPublisher) {
	t.Helper()
	cfg := &config.Config{
		Server:    config.ServerConfig{Port: 8080, GinMode: "test"},
		Elevation: config.ElevationConfig{MaxConcurrency: 4},
	}
	publisher := &recordingPublisher{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAppWithProvider(cfg, logger, &mockProvider{bodies: bodies}, publisher), publisher
}

func TestHandlePing(t *testing.T) {
	app, _ := newTestApp(t, nil)

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got PingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := PingResponse{Message: "pong", Provider: "mock"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ping mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleGetPointElevation(t *testing.T) {
	app, _ := newTestApp(t, map[float64]string{
		39.11539: `{"value":"2743.51"}`,
		10:       `{"value":null}`,
		20:       `{"unexpected":true}`,
	})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantMeters float64
	}{
		{"success", "latitude=39.11539&longitude=-107.6584", http.StatusOK, 2743.51},
		{"zero longitude is valid", "latitude=10&longitude=0", http.StatusNotFound, 0},
		{"schema mismatch", "latitude=20&longitude=1", http.StatusBadGateway, 0},
		{"transport failure", "latitude=30&longitude=1", http.StatusBadGateway, 0},
		{"missing longitude", "latitude=39", http.StatusBadRequest, 0},
		{"latitude out of range", "latitude=91&longitude=0", http.StatusBadRequest, 0},
		{"not a number", "latitude=abc&longitude=0", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/elevation/point?"+tt.query, nil))

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				return
			}

			var resp PointElevationResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if resp.Elevation.Meters != tt.wantMeters || resp.Provider != "mock" {
				t.Errorf("response = %+v, want %v meters from mock", resp, tt.wantMeters)
			}
		})
	}
}

func TestHandleBuildEditBatch(t *testing.T) {
	app, publisher := newTestApp(t, map[float64]string{
		1: `{"USGS_Elevation_Point_Query_Service":{"Elevation_Query":[{"Elevation":100.5}]}}`,
		2: `{"value":null}`,
		3: `{"value":"123.4"}`,
	})

	body := `{"points":[
		{"id":"a","latitude":1,"longitude":0},
		{"id":"b","latitude":2,"longitude":0},
		{"id":"c","latitude":3,"longitude":0}
	]}`

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/elevation/batch", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var resp BuildEditBatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Batch == nil || len(resp.Batch.Edits) != 2 {
		t.Fatalf("batch = %+v, want 2 edits", resp.Batch)
	}
	if resp.Batch.Edits[0].Value != "100.5" || resp.Batch.Edits[1].Value != "123.4" {
		t.Errorf("edits = %+v", resp.Batch.Edits)
	}
	if len(resp.Diagnostics) != 1 || resp.Diagnostics[0].PointID != "b" {
		t.Errorf("diagnostics = %+v, want one for b", resp.Diagnostics)
	}
	if resp.Message != "" {
		t.Errorf("message = %q, want empty", resp.Message)
	}

	if len(publisher.batches) != 1 || publisher.batches[0].Len() != 2 {
		t.Errorf("published %d batches, want 1 with 2 edits", len(publisher.batches))
	}
}

func TestHandleBuildEditBatch_NothingResolved(t *testing.T) {
	app, publisher := newTestApp(t, nil)

	w := httptest.NewRecorder()
	body := `{"points":[{"id":"a","latitude":1,"longitude":0}]}`
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/elevation/batch", strings.NewReader(body)))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if string(raw["batch"]) != "null" {
		t.Errorf("batch = %s, want null", raw["batch"])
	}
	if !strings.Contains(string(raw["diagnostics"]), `"kind":"transport"`) {
		t.Errorf("diagnostics = %s, want a transport failure", raw["diagnostics"])
	}
	if !strings.Contains(string(raw["message"]), "no elevation data") {
		t.Errorf("message = %s, want informational notice", raw["message"])
	}
	if len(publisher.batches) != 1 || publisher.batches[0] != nil {
		t.Errorf("published %v, want one empty batch event", publisher.batches)
	}
}

func TestHandleBuildEditBatch_EmptyAndInvalid(t *testing.T) {
	app, publisher := newTestApp(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"empty points", `{"points":[]}`, http.StatusOK},
		{"malformed json", `{"points":`, http.StatusBadRequest},
		{"missing id", `{"points":[{"latitude":1,"longitude":1}]}`, http.StatusBadRequest},
		{"longitude out of range", `{"points":[{"id":"a","latitude":1,"longitude":181}]}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/elevation/batch", strings.NewReader(tt.body)))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}

	if len(publisher.batches) != 0 {
		t.Errorf("published %d batches, want none", len(publisher.batches))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := newTestApp(t, map[float64]string{1: `{"value":1}`})

	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/elevation/point?latitude=1&longitude=1", nil))

	w = httptest.NewRecorder()
	app.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `medi_elevation_lookup_requests_total{outcome="success",provider="mock"} 1`) {
		t.Errorf("metrics output missing lookup counter:\n%s", w.Body.String())
	}
}
