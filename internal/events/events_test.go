package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"medi-elevation/internal/edit"
	"medi-elevation/internal/elevation"
	"medi-elevation/internal/types"
)

func TestBuildMessages(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	diags := []edit.Diagnostic{
		{PointID: "b", Coordinates: types.NewCoords(1, 2), Kind: elevation.KindNoData, Detail: "none"},
		{PointID: "c", Coordinates: types.NewCoords(3, 4), Kind: elevation.KindTransport, Detail: "timeout"},
	}

	tests := []struct {
		name         string
		batch        *edit.EditBatch
		diagnostics  []edit.Diagnostic
		wantSubjects []string
		wantEdits    int
	}{
		{
			name: "built batch with failures",
			batch: &edit.EditBatch{
				Description: edit.BatchDescription,
				Edits:       []edit.PropertyEdit{{PointID: "a", Key: "ele", Value: "1"}},
			},
			diagnostics:  diags,
			wantSubjects: []string{"elevation.batch.built", "elevation.diagnostic.no_data", "elevation.diagnostic.transport"},
			wantEdits:    1,
		},
		{
			name:         "nothing resolved",
			diagnostics:  diags[:1],
			wantSubjects: []string{"elevation.batch.empty", "elevation.diagnostic.no_data"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := buildMessages(tt.batch, tt.diagnostics, now)
			if err != nil {
				t.Fatalf("buildMessages() error = %v", err)
			}

			var subjects []string
			for _, m := range msgs {
				subjects = append(subjects, m.subject)
			}
			if diff := cmp.Diff(tt.wantSubjects, subjects); diff != "" {
				t.Errorf("subjects mismatch (-want +got):\n%s", diff)
			}

			var event BatchEvent
			if err := json.Unmarshal(msgs[0].data, &event); err != nil {
				t.Fatalf("unmarshal batch event: %v", err)
			}
			if len(event.Edits) != tt.wantEdits || event.Failed != len(tt.diagnostics) {
				t.Errorf("batch event = %+v, want %d edits and %d failed", event, tt.wantEdits, len(tt.diagnostics))
			}
			if !event.Timestamp.Equal(now) {
				t.Errorf("timestamp = %v, want %v", event.Timestamp, now)
			}
		})
	}
}

func TestDiagnosticEventJSON(t *testing.T) {
	msgs, err := buildMessages(nil, []edit.Diagnostic{{PointID: "x", Kind: elevation.KindSchemaMismatch, Detail: "d", Payload: "<html>"}}, time.Unix(0, 0).UTC())
	if err != nil {
		t.Fatalf("buildMessages() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(msgs[1].data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["kind"] != "schema_mismatch" || got["point_id"] != "x" || got["payload"] != "<html>" {
		t.Errorf("diagnostic event = %v", got)
	}
}

func TestNew_NoURL(t *testing.T) {
	p := New("", slog.New(slog.NewTextHandler(io.Discard, nil)))
	if _, ok := p.(Noop); !ok {
		t.Fatalf("New(\"\") = %T, want Noop", p)
	}
	if err := p.PublishBatch(context.Background(), nil, nil); err != nil {
		t.Errorf("Noop.PublishBatch() error = %v", err)
	}
	p.Close()
}
