package types

import "fmt"

// Coords is a WGS84 latitude/longitude pair in decimal degrees.
// No range validation is done here; out-of-range values are passed on as-is.
type Coords struct {
	Latitude  float64 `json:"latitude" example:"39.11539"`
	Longitude float64 `json:"longitude" example:"-107.6584"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

func (c Coords) String() string {
	return fmt.Sprintf("(%f, %f)", c.Latitude, c.Longitude)
}
