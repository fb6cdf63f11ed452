package elevation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"medi-elevation/internal/providers/openmeteo"
	"medi-elevation/internal/providers/usgs"
)

var (
	// ErrNoMatch means the body is not in the parser's shape; the next parser is tried.
	ErrNoMatch = errors.New("response shape not recognised")
	// ErrInvalidValue means the shape matched but its value is not a finite number.
	ErrInvalidValue = errors.New("elevation value is not a finite number")
)

// ResponseParser turns a raw response body into an elevation in meters.
// Parse returns ErrNoMatch when the body is not in its shape, ErrNoData when the
// shape matched but carries no value, and ErrInvalidValue when the value is
// present but unusable.
type ResponseParser interface {
	Name() string
	Parse(body []byte) (float64, error)
}

type parserFunc struct {
	name string
	fn   func([]byte) (float64, error)
}

func (p parserFunc) Name() string                       { return p.name }
func (p parserFunc) Parse(body []byte) (float64, error) { return p.fn(body) }

// NewParser wraps a function as a ResponseParser.
func NewParser(name string, fn func(body []byte) (float64, error)) ResponseParser {
	return parserFunc{name: name, fn: fn}
}

var (
	PointQueryServiceParser = NewParser("usgs_point_query", parsePointQueryService)
	ValueParser             = NewParser("usgs_value", parseValue)
	ElevationArrayParser    = NewParser("openmeteo_elevation", parseElevationArray)
)

// DefaultParsers lists the known response shapes in priority order.
func DefaultParsers() []ResponseParser {
	return []ResponseParser{
		PointQueryServiceParser,
		ValueParser,
		ElevationArrayParser,
	}
}

// Normalize runs parsers in order; the first one that recognises the body decides
// the outcome. The returned name identifies that parser, empty if none matched.
func Normalize(body []byte, parsers []ResponseParser) (float64, string, error) {
	for _, p := range parsers {
		value, err := p.Parse(body)
		if errors.Is(err, ErrNoMatch) {
			continue
		}
		return value, p.Name(), err
	}
	return 0, "", ErrNoMatch
}

// {"USGS_Elevation_Point_Query_Service": {"Elevation_Query": [{"Elevation": 123.4}]}}
func parsePointQueryService(body []byte) (float64, error) {
	var resp usgs.PointQueryServiceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, ErrNoMatch
	}
	if resp.Service == nil || len(resp.Service.ElevationQuery) != 1 {
		return 0, ErrNoMatch
	}
	return usgsValue(resp.Service.ElevationQuery[0].Elevation)
}

// {"value": 123.4} or {"value": "123.4"}
func parseValue(body []byte) (float64, error) {
	var resp usgs.ElevationPointAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, ErrNoMatch
	}
	if len(resp.Value) == 0 {
		return 0, ErrNoMatch
	}
	return usgsValue(resp.Value)
}

// {"elevation": [123.4]}
func parseElevationArray(body []byte) (float64, error) {
	var resp openmeteo.ElevationAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, ErrNoMatch
	}
	if len(resp.Elevation) != 1 {
		return 0, ErrNoMatch
	}
	return parseNumber(resp.Elevation[0])
}

func usgsValue(raw json.RawMessage) (float64, error) {
	value, err := parseNumber(raw)
	if err != nil {
		return 0, err
	}
	if value == usgs.NoDataValue {
		return 0, ErrNoData
	}
	return value, nil
}

// parseNumber accepts a JSON number or a string holding one.
func parseNumber(raw json.RawMessage) (float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, ErrNoData
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidValue, trimmed)
	}

	var text string
	switch x := v.(type) {
	case json.Number:
		text = x.String()
	case string:
		text = strings.TrimSpace(x)
		if !isDecimal(text) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidValue, text)
		}
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidValue, trimmed)
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	return value, nil
}

// isDecimal reports whether text is a JSON number literal. ParseFloat on its
// own also takes hex floats, underscores, "Inf" and "NaN".
func isDecimal(text string) bool {
	if text == "" || (text[0] != '-' && (text[0] < '0' || text[0] > '9')) {
		return false
	}
	return json.Valid([]byte(text))
}
