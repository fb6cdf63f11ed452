package types

import "strconv"

const FeetToMeters = 0.3048

type Elevation struct {
	Feet   float64 `json:"feet" example:"9000.98"`
	Meters float64 `json:"meters" example:"2743.5"`
}

func NewElevationFromFeet(feet float64) Elevation {
	return Elevation{
		Meters: feet * FeetToMeters,
		Feet:   feet,
	}
}

func NewElevationFromMeters(meters float64) Elevation {
	return Elevation{
		Meters: meters,
		Feet:   meters / FeetToMeters,
	}
}

// FormatMeters renders an elevation as a plain decimal string: the shortest
// representation that round-trips, with no exponent and no locale separators.
func FormatMeters(meters float64) string {
	return strconv.FormatFloat(meters, 'f', -1, 64)
}
