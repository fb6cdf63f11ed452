package openmeteo

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

// API Docs: https://open-meteo.com/en/docs/elevation-api
// Sample request: https://api.open-meteo.com/v1/elevation?latitude=39.1178&longitude=-106.4452
const (
	baseElevationURL = "https://api.open-meteo.com/v1/elevation"

	ProviderName = "openmeteo"
)

type ElevationClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	logger     *slog.Logger
}

func NewElevationClient(httpClient *http.Client, baseURL, userAgent string, logger *slog.Logger) *ElevationClient {
	if baseURL == "" {
		baseURL = baseElevationURL
	}
	return &ElevationClient{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		logger:     logger.With("component", "openmeteo-elevation-client"),
	}
}

func (c *ElevationClient) Name() string {
	return ProviderName
}

// FetchElevation returns the raw Open-Meteo body for one coordinate. The
// elevation model is Copernicus DEM at 90m and is always in meters.
func (c *ElevationClient) FetchElevation(ctx context.Context, coords types.Coords) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching Open-Meteo elevation data",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
	)

	return providers.Get(ctx, c.httpClient, u, c.userAgent, c.logger)
}
