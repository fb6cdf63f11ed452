// Command elevate adds "ele" tags to the points of an OSM XML or GeoJSON file.
//
//	elevate -i peaks.osm -o peaks-ele.osm --skip-existing
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"

	"medi-elevation/internal/config"
	"medi-elevation/internal/telemetry"
)

func main() {
	flags := pflag.NewFlagSet("elevate", pflag.ExitOnError)
	input := flags.StringP("input", "i", "", "input document (.osm, .geojson or .json)")
	output := flags.StringP("output", "o", "", "output path (default: overwrite input)")
	ids := flags.StringSlice("ids", nil, "only these point IDs (comma separated)")
	skipExisting := flags.Bool("skip-existing", false, "leave points that already have an ele tag")
	flags.String("config", "", "config file (default: ./config.yaml)")
	flags.String("provider", "usgs", "elevation provider: usgs or openmeteo")
	flags.Int("concurrency", 8, "maximum lookups in flight")
	flags.Duration("timeout", 0, "per-request timeout (default from config)")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "text", "log format: text or json")
	noProgress := flags.Bool("no-progress", false, "disable the progress bar")
	_ = flags.Parse(os.Args[1:])

	if *input == "" {
		fmt.Fprintln(os.Stderr, "elevate: --input is required")
		flags.Usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "elevate: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.NewStderrLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			logger.Warn("tracing disabled", "error", err)
		} else {
			defer shutdown()
		}
	}

	opts := runOptions{
		input:        *input,
		output:       *output,
		ids:          splitIDs(*ids),
		skipExisting: *skipExisting,
		progress:     !*noProgress,
	}
	if opts.output == "" {
		opts.output = opts.input
	}

	if err := run(ctx, cfg, logger, opts, os.Stdout); err != nil {
		logger.Error("elevate failed", "error", err)
		os.Exit(1)
	}
}

func splitIDs(raw []string) []string {
	var out []string
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
