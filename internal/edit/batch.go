package edit

import (
	"medi-elevation/internal/elevation"
	"medi-elevation/internal/types"
)

const (
	// ElevationKey is the property that carries the elevation in meters.
	ElevationKey = "ele"
	// BatchDescription names the command in the host's undo history.
	BatchDescription = "Add elevation data"
)

// PropertyEdit sets Key to Value on one point.
type PropertyEdit struct {
	PointID types.PointID `json:"point_id" example:"node/1234"`
	Key     string        `json:"key" example:"ele"`
	Value   string        `json:"value" example:"2743.51"`
}

// EditBatch is one indivisible set of property edits. It must be applied, and
// undone, as a single command.
type EditBatch struct {
	Description string         `json:"description" example:"Add elevation data"`
	Edits       []PropertyEdit `json:"edits"`
}

func (b *EditBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Edits)
}

// Result is the outcome of one point's lookup. Exactly one of Err and
// Elevation is meaningful.
type Result struct {
	Point     types.Point
	Elevation float64
	Err       *elevation.LookupError
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Diagnostic reports a point that was left out of the batch.
type Diagnostic struct {
	PointID     types.PointID       `json:"point_id" example:"node/1234"`
	Coordinates types.Coords        `json:"coordinates"`
	Kind        elevation.ErrorKind `json:"kind" swaggertype:"string" example:"no_data"`
	Detail      string              `json:"detail"`
	Payload     string              `json:"payload,omitempty"`
}

func newDiagnostic(r Result) Diagnostic {
	return Diagnostic{
		PointID:     r.Point.ID,
		Coordinates: r.Point.Coordinates,
		Kind:        r.Err.Kind,
		Detail:      r.Err.Detail,
		Payload:     r.Err.Payload,
	}
}
