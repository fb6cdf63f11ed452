// Package osmdoc adapts an OpenStreetMap XML file to document.Document. Every
// node is a point; its ID is the node ID in decimal.
package osmdoc

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/paulmach/osm"

	"medi-elevation/internal/document"
	"medi-elevation/internal/types"
)

type Document struct {
	data  *osm.OSM
	nodes map[types.PointID]*osm.Node
}

var _ document.Document = (*Document)(nil)

func New(data *osm.OSM) *Document {
	d := &Document{
		data:  data,
		nodes: make(map[types.PointID]*osm.Node, len(data.Nodes)),
	}
	for _, n := range data.Nodes {
		d.nodes[nodeID(n.ID)] = n
	}
	return d
}

func Decode(r io.Reader) (*Document, error) {
	var data osm.OSM
	if err := xml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode osm xml: %w", err)
	}
	return New(&data), nil
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
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", " ")
	if err := enc.Encode(d.data); err != nil {
		return fmt.Errorf("failed to encode osm xml: %w", err)
	}
	_, err := io.WriteString(w, "\n")
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

// OSM exposes the underlying data.
func (d *Document) OSM() *osm.OSM {
	return d.data
}

func (d *Document) Points() []types.Point {
	points := make([]types.Point, 0, len(d.data.Nodes))
	for _, n := range d.data.Nodes {
		points = append(points, types.NewPoint(nodeID(n.ID), n.Lat, n.Lon))
	}
	return points
}

func (d *Document) Point(id types.PointID) (types.Point, error) {
	n, err := d.node(id)
	if err != nil {
		return types.Point{}, err
	}
	return types.NewPoint(id, n.Lat, n.Lon), nil
}

func (d *Document) Property(id types.PointID, key string) (string, bool, error) {
	n, err := d.node(id)
	if err != nil {
		return "", false, err
	}
	for _, tag := range n.Tags {
		if tag.Key == key {
			return tag.Value, true, nil
		}
	}
	return "", false, nil
}

func (d *Document) SetProperty(id types.PointID, key, value string) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	for i := range n.Tags {
		if n.Tags[i].Key == key {
			n.Tags[i].Value = value
			return nil
		}
	}
	n.Tags = append(n.Tags, osm.Tag{Key: key, Value: value})
	return nil
}

func (d *Document) RemoveProperty(id types.PointID, key string) error {
	n, err := d.node(id)
	if err != nil {
		return err
	}
	tags := n.Tags[:0]
	for _, tag := range n.Tags {
		if tag.Key != key {
			tags = append(tags, tag)
		}
	}
	n.Tags = tags
	return nil
}

func (d *Document) node(id types.PointID) (*osm.Node, error) {
	n, ok := d.nodes[id]
	if !ok {
		return nil, fmt.Errorf("node %s: %w", id, document.ErrPointNotFound)
	}
	return n, nil
}

func nodeID(id osm.NodeID) types.PointID {
	return types.PointID(strconv.FormatInt(int64(id), 10))
}
