package openmeteo

import "encoding/json"

// ElevationAPIResponse holds one elevation per requested coordinate.
type ElevationAPIResponse struct {
	Elevation []json.RawMessage `json:"elevation"`
}
