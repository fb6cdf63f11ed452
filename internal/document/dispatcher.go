package document

import (
	"context"
	"errors"
	"log/slog"
)

var ErrDispatcherStopped = errors.New("dispatcher stopped")

type op struct {
	fn   func() error
	done chan error
}

// Dispatcher owns a document and its history. Every read and mutation runs on
// the goroutine that called Run, one at a time, so lookups can run elsewhere
// while the document is only ever touched from one place.
type Dispatcher struct {
	doc     Document
	history *History
	ops     chan op
	stopped chan struct{}
	logger  *slog.Logger
}

func NewDispatcher(doc Document, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		doc:     doc,
		history: NewHistory(),
		ops:     make(chan op),
		stopped: make(chan struct{}),
		logger:  logger.With("component", "document-dispatcher"),
	}
}

// Run processes operations until ctx is done. It must be called exactly once.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer close(d.stopped)
	d.logger.Debug("dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Debug("dispatcher stopped")
			return ctx.Err()
		case o := <-d.ops:
			o.done <- o.fn()
		}
	}
}

func (d *Dispatcher) do(ctx context.Context, fn func() error) error {
	o := op{fn: fn, done: make(chan error, 1)}

	select {
	case d.ops <- o:
	case <-d.stopped:
		return ErrDispatcherStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	// Once accepted the operation always completes; waiting for it keeps the
	// caller from observing a half-applied command.
	return <-o.done
}

// Apply executes cmd and records it for undo.
func (d *Dispatcher) Apply(ctx context.Context, cmd Command) error {
	return d.do(ctx, func() error {
		if err := d.history.Execute(d.doc, cmd); err != nil {
			d.logger.Error("command failed", "command", cmd.Description(), "error", err)
			return err
		}
		d.logger.Info("command applied", "command", cmd.Description())
		return nil
	})
}

func (d *Dispatcher) Undo(ctx context.Context) error {
	return d.do(ctx, func() error {
		cmd, err := d.history.Undo(d.doc)
		if err != nil {
			return err
		}
		d.logger.Info("command undone", "command", cmd.Description())
		return nil
	})
}

func (d *Dispatcher) Redo(ctx context.Context) error {
	return d.do(ctx, func() error {
		cmd, err := d.history.Redo(d.doc)
		if err != nil {
			return err
		}
		d.logger.Info("command redone", "command", cmd.Description())
		return nil
	})
}

// Read runs fn against the document on the dispatcher goroutine. fn must not
// keep the document after it returns.
func (d *Dispatcher) Read(ctx context.Context, fn func(doc Document) error) error {
	return d.do(ctx, func() error {
		return fn(d.doc)
	})
}
