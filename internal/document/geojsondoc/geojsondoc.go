// Package geojsondoc adapts a GeoJSON FeatureCollection to document.Document.
// Only Point features are points. A point's ID is its feature id, or
// "#<index>" when the feature has none or its id is already taken. A
// "-<n>" suffix is added until the ID is unique.
package geojsondoc

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"medi-elevation/internal/document"
	"medi-elevation/internal/types"
)

type Document struct {
	fc      *geojson.FeatureCollection
	order   []types.PointID
	feature map[types.PointID]*geojson.Feature
}

var (
	_ document.Document            = (*Document)(nil)
	_ document.RawPropertyDocument = (*Document)(nil)
)

func New(fc *geojson.FeatureCollection) *Document {
	d := &Document{
		fc:      fc,
		feature: make(map[types.PointID]*geojson.Feature),
	}
	for i, f := range fc.Features {
		if _, ok := f.Geometry.(orb.Point); !ok {
			continue
		}
		id := d.uniqueID(featureID(f.ID, i), i)
		if f.Properties == nil {
			f.Properties = geojson.Properties{}
		}
		d.order = append(d.order, id)
		d.feature[id] = f
	}
	return d
}

func Decode(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode geojson: %w", err)
	}
	return New(fc), nil
}

func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Decode(f)
}

func (d *Document) Encode(w io.Writer) error {
	data, err := d.fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := d.Encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func (d *Document) Points() []types.Point {
	points := make([]types.Point, 0, len(d.order))
	for _, id := range d.order {
		points = append(points, toPoint(id, d.feature[id]))
	}
	return points
}

func (d *Document) Point(id types.PointID) (types.Point, error) {
	f, err := d.lookup(id)
	if err != nil {
		return types.Point{}, err
	}
	return toPoint(id, f), nil
}

func (d *Document) Property(id types.PointID, key string) (string, bool, error) {
	f, err := d.lookup(id)
	if err != nil {
		return "", false, err
	}
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return "", false, nil
	}
	switch x := v.(type) {
	case string:
		return x, true, nil
	case float64:
		return types.FormatMeters(x), true, nil
	default:
		return fmt.Sprint(x), true, nil
	}
}

func (d *Document) SetProperty(id types.PointID, key, value string) error {
	f, err := d.lookup(id)
	if err != nil {
		return err
	}
	f.Properties[key] = value
	return nil
}

// RawProperty returns the decoded JSON value, so numbers stay float64.
func (d *Document) RawProperty(id types.PointID, key string) (any, bool, error) {
	f, err := d.lookup(id)
	if err != nil {
		return nil, false, err
	}
	v, ok := f.Properties[key]
	return v, ok, nil
}

func (d *Document) SetRawProperty(id types.PointID, key string, value any) error {
	f, err := d.lookup(id)
	if err != nil {
		return err
	}
	f.Properties[key] = value
	return nil
}

func (d *Document) RemoveProperty(id types.PointID, key string) error {
	f, err := d.lookup(id)
	if err != nil {
		return err
	}
	delete(f.Properties, key)
	return nil
}

func (d *Document) lookup(id types.PointID) (*geojson.Feature, error) {
	f, ok := d.feature[id]
	if !ok {
		return nil, fmt.Errorf("feature %s: %w", id, document.ErrPointNotFound)
	}
	return f, nil
}

func toPoint(id types.PointID, f *geojson.Feature) types.Point {
	p := f.Geometry.(orb.Point)
	return types.NewPoint(id, p.Lat(), p.Lon())
}

func (d *Document) uniqueID(id types.PointID, index int) types.PointID {
	if _, taken := d.feature[id]; !taken {
		return id
	}
	base := indexID(index)
	id = base
	for n := 1; ; n++ {
		if _, taken := d.feature[id]; !taken {
			return id
		}
		id = types.PointID(fmt.Sprintf("%s-%d", base, n))
	}
}

func featureID(raw any, index int) types.PointID {
	switch id := raw.(type) {
	case string:
		if id != "" {
			return types.PointID(id)
		}
	case float64:
		return types.PointID(strconv.FormatFloat(id, 'f', -1, 64))
	}
	return indexID(index)
}

func indexID(index int) types.PointID {
	return types.PointID("#" + strconv.Itoa(index))
}
