package usgs

import "encoding/json"

// NoDataValue is what EPQS reports for points outside its coverage.
const NoDataValue = -1000000

// PointQueryServiceResponse is the nested envelope returned by the older
// Elevation Point Query Service. Exactly one query result is expected.
type PointQueryServiceResponse struct {
	Service *struct {
		ElevationQuery []ElevationQuery `json:"Elevation_Query"`
	} `json:"USGS_Elevation_Point_Query_Service"`
}

type ElevationQuery struct {
	Elevation json.RawMessage `json:"Elevation"`
}

// ElevationPointAPIResponse is the flat v1 response. Value is kept raw because
// the service has returned it both as a number and as a string. The location
// echo and raster metadata are not needed and are not decoded.
type ElevationPointAPIResponse struct {
	Value json.RawMessage `json:"value"`
}
