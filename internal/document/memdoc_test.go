package document

import (
	"errors"
	"fmt"

	"medi-elevation/internal/types"
)

// memDoc is a minimal in-memory Document for tests.
type memDoc struct {
	order []types.PointID
	pts   map[types.PointID]types.Point
	props map[types.PointID]map[string]string
	// failOn makes SetProperty fail for one point.
	failOn types.PointID
}

func newMemDoc(points ...types.Point) *memDoc {
	d := &memDoc{
		pts:   make(map[types.PointID]types.Point),
		props: make(map[types.PointID]map[string]string),
	}
	for _, p := range points {
		d.order = append(d.order, p.ID)
		d.pts[p.ID] = p
		d.props[p.ID] = make(map[string]string)
	}
	return d
}

func (d *memDoc) Points() []types.Point {
	out := make([]types.Point, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.pts[id])
	}
	return out
}

func (d *memDoc) Point(id types.PointID) (types.Point, error) {
	p, ok := d.pts[id]
	if !ok {
		return types.Point{}, ErrPointNotFound
	}
	return p, nil
}

func (d *memDoc) Property(id types.PointID, key string) (string, bool, error) {
	props, ok := d.props[id]
	if !ok {
		return "", false, ErrPointNotFound
	}
	v, ok := props[key]
	return v, ok, nil
}

func (d *memDoc) SetProperty(id types.PointID, key, value string) error {
	if id == d.failOn {
		return errors.New("read-only point")
	}
	props, ok := d.props[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrPointNotFound)
	}
	props[key] = value
	return nil
}

func (d *memDoc) RemoveProperty(id types.PointID, key string) error {
	props, ok := d.props[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrPointNotFound)
	}
	delete(props, key)
	return nil
}

func (d *memDoc) get(id types.PointID, key string) (string, bool) {
	v, ok := d.props[id][key]
	return v, ok
}
