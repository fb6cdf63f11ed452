package usgs

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"medi-elevation/internal/providers"
	"medi-elevation/internal/types"
)

// API Docs: https://epqs.nationalmap.gov/v1/docs
// Sample request: https://epqs.nationalmap.gov/v1/json?x=-107.65840&y=39.0639&units=Meters&wkid=4326&includeDate=True
const (
	baseElevationURL = "https://epqs.nationalmap.gov/v1/json"

	ProviderName = "usgs"
)

// Query holds the EPQS parameters that do not depend on the point.
type Query struct {
	Units       string
	WKID        int
	IncludeDate bool
}

// DefaultQuery asks for meters in WGS84.
func DefaultQuery() Query {
	return Query{
		Units:       "Meters",
		WKID:        4326,
		IncludeDate: true,
	}
}

// Values encodes the query for one coordinate. EPQS takes x as longitude and
// y as latitude.
func (q Query) Values(coords types.Coords) url.Values {
	v := url.Values{}
	v.Set("x", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	v.Set("y", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	v.Set("units", q.Units)
	v.Set("wkid", strconv.Itoa(q.WKID))
	if q.IncludeDate {
		v.Set("includeDate", "True")
	}
	return v
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	query      Query
	logger     *slog.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

func WithQuery(q Query) Option {
	return func(c *Client) {
		c.query = q
	}
}

func NewClient(httpClient *http.Client, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: httpClient,
		baseURL:    baseElevationURL,
		userAgent:  providers.DefaultUserAgent,
		query:      DefaultQuery(),
		logger:     logger.With("component", "usgs-client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string {
	return ProviderName
}

// FetchElevation queries EPQS for one coordinate and returns the raw JSON body.
// The response shape has changed between service revisions, so decoding is left
// to the caller.
func (c *Client) FetchElevation(ctx context.Context, coords types.Coords) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.RawQuery = c.query.Values(coords).Encode()

	c.logger.Debug("fetching USGS elevation data",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	body, err := providers.Get(ctx, c.httpClient, u, c.userAgent, c.logger)
	if err != nil {
		return nil, err
	}

	return body, nil
}
