package elevation

import (
	"fmt"
	"log/slog"

	"medi-elevation/internal/config"
	"medi-elevation/internal/providers"
	"medi-elevation/internal/providers/openmeteo"
	"medi-elevation/internal/providers/usgs"
)

// NewProvider builds the provider named in cfg with its own HTTP client.
func NewProvider(cfg config.ElevationConfig, logger *slog.Logger) (Provider, error) {
	httpClient := providers.NewHTTPClient(cfg.ConnectTimeout, cfg.Timeout)

	switch cfg.Provider {
	case usgs.ProviderName, "":
		return usgs.NewClient(httpClient, logger,
			usgs.WithBaseURL(cfg.BaseURL),
			usgs.WithUserAgent(cfg.UserAgent),
		), nil
	case openmeteo.ProviderName:
		return openmeteo.NewElevationClient(httpClient, cfg.BaseURL, cfg.UserAgent, logger), nil
	default:
		return nil, fmt.Errorf("unknown elevation provider %q", cfg.Provider)
	}
}
