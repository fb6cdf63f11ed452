package document

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medi-elevation/internal/edit"
	"medi-elevation/internal/types"
)

func startDispatcher(t *testing.T, doc Document) *Dispatcher {
	t.Helper()

	d := NewDispatcher(doc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = d.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return d
}

func TestDispatcher_ApplyUndoRedo(t *testing.T) {
	doc := newMemDoc(types.NewPoint("1", 0, 0), types.NewPoint("2", 0, 0))
	d := startDispatcher(t, doc)
	ctx := context.Background()

	batch := &edit.EditBatch{
		Description: edit.BatchDescription,
		Edits: []edit.PropertyEdit{
			{PointID: "1", Key: "ele", Value: "1.5"},
			{PointID: "2", Key: "ele", Value: "2.5"},
		},
	}
	require.NoError(t, d.Apply(ctx, NewBatchCommand(batch)))

	countEle := func() int {
		n := 0
		require.NoError(t, d.Read(ctx, func(doc Document) error {
			for _, p := range doc.Points() {
				if _, ok, _ := doc.Property(p.ID, "ele"); ok {
					n++
				}
			}
			return nil
		}))
		return n
	}

	assert.Equal(t, 2, countEle())

	require.NoError(t, d.Undo(ctx))
	assert.Equal(t, 0, countEle(), "one undo reverts the whole batch")

	require.NoError(t, d.Redo(ctx))
	assert.Equal(t, 2, countEle())

	assert.ErrorIs(t, d.Redo(ctx), ErrNothingToRedo)
}

func TestDispatcher_ConcurrentCallers(t *testing.T) {
	doc := newMemDoc(types.NewPoint("1", 0, 0))
	d := startDispatcher(t, doc)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, d.Apply(ctx, NewChangePropertyCommand("1", "ele", types.FormatMeters(float64(i)))))
		}(i)
	}
	wg.Wait()

	undone := 0
	for d.Undo(ctx) == nil {
		undone++
	}
	assert.Equal(t, 20, undone)

	_, ok := doc.get("1", "ele")
	assert.False(t, ok)
}

func TestDispatcher_Stopped(t *testing.T) {
	d := NewDispatcher(newMemDoc(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, d.Run(ctx), context.Canceled)

	err := d.Apply(context.Background(), NewChangePropertyCommand("1", "ele", "1"))
	assert.ErrorIs(t, err, ErrDispatcherStopped)
}

func TestDispatcher_CallerContext(t *testing.T) {
	d := NewDispatcher(newMemDoc(), slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := d.Read(ctx, func(Document) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
