package document

import (
	"fmt"

	"medi-elevation/internal/edit"
	"medi-elevation/internal/types"
)

// SelectOptions narrows the points handed to the elevation lookup.
type SelectOptions struct {
	// IDs limits the selection to these points. Empty means every point.
	IDs []types.PointID
	// SkipExisting leaves out points that already have an elevation.
	SkipExisting bool
}

// Select returns the chosen points in document order. An ID that is not in
// the document is an error.
func Select(doc Document, opts SelectOptions) ([]types.Point, error) {
	var wanted map[types.PointID]bool
	if len(opts.IDs) > 0 {
		wanted = make(map[types.PointID]bool, len(opts.IDs))
		for _, id := range opts.IDs {
			if _, err := doc.Point(id); err != nil {
				return nil, fmt.Errorf("select %s: %w", id, err)
			}
			wanted[id] = true
		}
	}

	var selected []types.Point
	for _, p := range doc.Points() {
		if wanted != nil && !wanted[p.ID] {
			continue
		}
		if opts.SkipExisting {
			_, ok, err := doc.Property(p.ID, edit.ElevationKey)
			if err != nil {
				return nil, err
			}
			if ok {
				continue
			}
		}
		selected = append(selected, p)
	}
	return selected, nil
}
