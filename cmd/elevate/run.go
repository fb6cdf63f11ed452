package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"

	"medi-elevation/internal/config"
	"medi-elevation/internal/document"
	"medi-elevation/internal/document/geojsondoc"
	"medi-elevation/internal/document/osmdoc"
	"medi-elevation/internal/edit"
	"medi-elevation/internal/elevation"
	"medi-elevation/internal/types"
)

type runOptions struct {
	input        string
	output       string
	ids          []string
	skipExisting bool
	progress     bool
}

// fileDocument is a document that can be written back to disk.
type fileDocument interface {
	document.Document
	Save(path string) error
}

func loadDocument(path string) (fileDocument, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osm", ".xml":
		doc, err := osmdoc.Load(path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	case ".geojson", ".json":
		doc, err := geojsondoc.Load(path)
		if err != nil {
			return nil, err
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

type lookupOutcome struct {
	batch       *edit.EditBatch
	diagnostics []edit.Diagnostic
	err         error
}

// run loads the document, resolves the selected points on a worker goroutine
// and applies the resulting batch through the dispatcher, which is the only
// goroutine that touches the document.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts runOptions, out io.Writer) error {
	doc, err := loadDocument(opts.input)
	if err != nil {
		return fmt.Errorf("load %s: %w", opts.input, err)
	}

	provider, err := elevation.NewProvider(cfg.Elevation, logger)
	if err != nil {
		return err
	}

	return process(ctx, doc, provider, cfg, logger, opts, out)
}

func process(ctx context.Context, doc fileDocument, provider elevation.Provider, cfg *config.Config, logger *slog.Logger, opts runOptions, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dispatcher := document.NewDispatcher(doc, logger)
	dispatcherDone := make(chan struct{})
	go func() {
		defer close(dispatcherDone)
		_ = dispatcher.Run(ctx)
	}()
	defer func() {
		cancel()
		<-dispatcherDone
	}()

	selectOpts := document.SelectOptions{SkipExisting: opts.skipExisting}
	for _, id := range opts.ids {
		selectOpts.IDs = append(selectOpts.IDs, types.PointID(id))
	}

	var points []types.Point
	err := dispatcher.Read(ctx, func(d document.Document) error {
		var err error
		points, err = document.Select(d, selectOpts)
		return err
	})
	if err != nil {
		return err
	}

	if len(points) == 0 {
		fmt.Fprintln(out, "No points selected, nothing to do.")
		return nil
	}

	coordinatorOpts := []edit.Option{edit.WithMaxConcurrency(cfg.Elevation.MaxConcurrency)}
	if opts.progress {
		bar := newProgressBar(len(points))
		defer func() { _ = bar.Finish() }()
		coordinatorOpts = append(coordinatorOpts, edit.WithResultHook(func(edit.Result) {
			_ = bar.Add(1)
		}))
	}

	resolver := elevation.NewResolver(provider, logger)
	coordinator := edit.NewCoordinator(resolver, logger, coordinatorOpts...)

	// Lookups block on the network, so they run away from the dispatcher.
	outcome := make(chan lookupOutcome, 1)
	go func() {
		batch, diagnostics, err := coordinator.BuildEditBatch(ctx, points)
		outcome <- lookupOutcome{batch: batch, diagnostics: diagnostics, err: err}
	}()
	result := <-outcome
	if result.err != nil {
		return fmt.Errorf("elevation lookup: %w", result.err)
	}

	for _, d := range result.diagnostics {
		fmt.Fprintf(out, "skipped %s %s: %s: %s\n", d.PointID, d.Coordinates, d.Kind, d.Detail)
	}

	if result.batch == nil {
		fmt.Fprintf(out, "No elevation data could be resolved for %d point(s); %s left unchanged.\n", len(points), opts.input)
		return nil
	}

	if err := dispatcher.Apply(ctx, document.NewBatchCommand(result.batch)); err != nil {
		return fmt.Errorf("apply batch: %w", err)
	}

	err = dispatcher.Read(ctx, func(document.Document) error {
		return doc.Save(opts.output)
	})
	if err != nil {
		return fmt.Errorf("save %s: %w", opts.output, err)
	}

	fmt.Fprintf(out, "%s: %d of %d point(s) updated, written to %s\n",
		result.batch.Description, result.batch.Len(), len(points), opts.output)
	return nil
}

func newProgressBar(n int) *progressbar.ProgressBar {
	return progressbar.NewOptions(n,
		progressbar.OptionSetWriter(ansi.NewAnsiStderr()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription("[cyan]resolving elevations...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
