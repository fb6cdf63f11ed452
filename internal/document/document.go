// Package document holds the host side of an elevation edit: the document
// model the points come from, reversible commands, undo history, and the
// single goroutine that is allowed to mutate a document.
package document

import (
	"errors"

	"medi-elevation/internal/types"
)

var ErrPointNotFound = errors.New("point not found")

// Document is a set of points with string properties. Implementations are not
// safe for concurrent use; mutate them only through a Dispatcher.
type Document interface {
	// Points returns every point in document order.
	Points() []types.Point
	Point(id types.PointID) (types.Point, error)
	// Property reports the value of key on a point and whether it is set.
	Property(id types.PointID, key string) (string, bool, error)
	SetProperty(id types.PointID, key, value string) error
	RemoveProperty(id types.PointID, key string) error
}

// RawPropertyDocument is implemented by documents whose stored values are not
// always strings. Commands use it to put a replaced value back unchanged.
type RawPropertyDocument interface {
	RawProperty(id types.PointID, key string) (any, bool, error)
	SetRawProperty(id types.PointID, key string, value any) error
}
