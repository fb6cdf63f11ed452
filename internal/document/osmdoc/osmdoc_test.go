package osmdoc

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medi-elevation/internal/document"
	"medi-elevation/internal/types"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<osm version="0.6" generator="test">
 <node id="101" lat="39.11539" lon="-107.6584" version="1">
  <tag k="name" v="Summit"/>
 </node>
 <node id="102" lat="39.2" lon="-107.7" version="1">
  <tag k="ele" v="3000"/>
 </node>
 <node id="-1" lat="39.3" lon="-107.8"/>
</osm>`

func TestDecode(t *testing.T) {
	doc, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []types.Point{
		types.NewPoint("101", 39.11539, -107.6584),
		types.NewPoint("102", 39.2, -107.7),
		types.NewPoint("-1", 39.3, -107.8),
	}, doc.Points())

	p, err := doc.Point("102")
	require.NoError(t, err)
	assert.Equal(t, 39.2, p.Coordinates.Latitude)

	_, err = doc.Point("999")
	assert.ErrorIs(t, err, document.ErrPointNotFound)
}

func TestProperties(t *testing.T) {
	doc, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	v, ok, err := doc.Property("102", "ele")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3000", v)

	require.NoError(t, doc.SetProperty("102", "ele", "3001.5"))
	require.NoError(t, doc.SetProperty("101", "ele", "2743.51"))

	v, _, _ = doc.Property("102", "ele")
	assert.Equal(t, "3001.5", v)
	v, _, _ = doc.Property("101", "ele")
	assert.Equal(t, "2743.51", v)

	require.NoError(t, doc.RemoveProperty("101", "ele"))
	_, ok, _ = doc.Property("101", "ele")
	assert.False(t, ok)
	name, ok, _ := doc.Property("101", "name")
	assert.True(t, ok)
	assert.Equal(t, "Summit", name)

	assert.ErrorIs(t, doc.SetProperty("999", "ele", "1"), document.ErrPointNotFound)
}

func TestEncodeRoundTrip(t *testing.T) {
	doc, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.NoError(t, doc.SetProperty("-1", "ele", "12.25"))

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))

	again, err := Decode(&buf)
	require.NoError(t, err)

	v, ok, err := again.Property("-1", "ele")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "12.25", v)
	assert.Len(t, again.Points(), 3)
}

func TestSelectSkipsTaggedNodes(t *testing.T) {
	doc, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	pts, err := document.Select(doc, document.SelectOptions{SkipExisting: true})
	require.NoError(t, err)

	var ids []types.PointID
	for _, p := range pts {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []types.PointID{"101", "-1"}, ids)
}
