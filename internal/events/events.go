// Package events publishes the outcome of elevation batches so other services
// can follow what was resolved and what failed.
package events

import (
	"context"
	"encoding/json"
	"time"

	"medi-elevation/internal/edit"
)

const (
	SubjectBatchBuilt = "elevation.batch.built"
	SubjectBatchEmpty = "elevation.batch.empty"
	// SubjectDiagnosticPrefix is followed by the error kind, e.g. elevation.diagnostic.no_data.
	SubjectDiagnosticPrefix = "elevation.diagnostic."
)

// Publisher receives the result of every BuildEditBatch call.
type Publisher interface {
	PublishBatch(ctx context.Context, batch *edit.EditBatch, diagnostics []edit.Diagnostic) error
	Close()
}

// BatchEvent is the payload of the batch subjects.
type BatchEvent struct {
	Description string              `json:"description,omitempty"`
	Edits       []edit.PropertyEdit `json:"edits"`
	Failed      int                 `json:"failed"`
	Timestamp   time.Time           `json:"timestamp"`
}

// DiagnosticEvent is the payload of the diagnostic subjects.
type DiagnosticEvent struct {
	edit.Diagnostic
	Timestamp time.Time `json:"timestamp"`
}

type message struct {
	subject string
	data    []byte
}

// buildMessages lays out one batch message followed by one message per diagnostic.
func buildMessages(batch *edit.EditBatch, diagnostics []edit.Diagnostic, now time.Time) ([]message, error) {
	event := BatchEvent{
		Edits:     []edit.PropertyEdit{},
		Failed:    len(diagnostics),
		Timestamp: now,
	}
	subject := SubjectBatchEmpty
	if batch != nil {
		event.Description = batch.Description
		event.Edits = batch.Edits
		subject = SubjectBatchBuilt
	}

	data, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	msgs := []message{{subject: subject, data: data}}

	for _, d := range diagnostics {
		data, err := json.Marshal(DiagnosticEvent{Diagnostic: d, Timestamp: now})
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, message{subject: SubjectDiagnosticPrefix + d.Kind.String(), data: data})
	}
	return msgs, nil
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) PublishBatch(context.Context, *edit.EditBatch, []edit.Diagnostic) error { return nil }
func (Noop) Close()                                                                 {}
