package types

// PointID identifies a point inside the document that owns it. It is opaque
// to everything except the document implementation.
type PointID string

// Point is a selected geographic entity as seen by the elevation lookup:
// an identity and a read-only coordinate.
type Point struct {
	ID          PointID `json:"id"`
	Coordinates Coords  `json:"coordinates"`
}

func NewPoint(id PointID, latitude, longitude float64) Point {
	return Point{
		ID:          id,
		Coordinates: NewCoords(latitude, longitude),
	}
}
